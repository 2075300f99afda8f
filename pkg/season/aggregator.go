package season

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"lazyf1/pkg/helper"
	"lazyf1/pkg/model"
	"lazyf1/pkg/pubsub"
)

// PubSubStatusTopic carries the loading-state broadcast. The running
// aggregation call is the only writer; panels and the status line read it.
const PubSubStatusTopic = "loading-status"

type Status struct {
	Busy    bool
	Message string
}

// Source is the external statistics provider: a season schedule and the
// classification rows for a single round.
type Source interface {
	Schedule(ctx context.Context, year int) ([]model.Event, error)
	RaceResults(ctx context.Context, year, round int) ([]model.RaceResult, error)
}

// Aggregator folds per-race results into season standings. Standings are
// recomputed from scratch on every call; nothing is retained between calls.
// No operation returns an error: failures surface as sentinel rows.
type Aggregator struct {
	source    Source
	statusPub *pubsub.PubSub[Status]

	// test seam
	now func() time.Time
}

func NewAggregator(source Source, statusPub *pubsub.PubSub[Status]) *Aggregator {
	return &Aggregator{
		source:    source,
		statusPub: statusPub,
		now:       time.Now,
	}
}

// CompletedEvents returns the season's rounds dated strictly before now, in
// schedule order. A schedule fetch failure reads as "no completed events".
func (a *Aggregator) CompletedEvents(ctx context.Context, year int) []model.Event {
	events, err := a.completedEvents(ctx, year)
	if err != nil {
		log.Printf("Error fetching schedule for %d: %s", year, err.Error())
		return nil
	}
	return events
}

func (a *Aggregator) completedEvents(ctx context.Context, year int) ([]model.Event, error) {
	events, err := a.source.Schedule(ctx, year)
	if err != nil {
		return nil, err
	}
	now := a.now()
	completed := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.CompletedBy(now) {
			completed = append(completed, ev)
		}
	}
	return completed, nil
}

// DriverStandings accumulates points, wins and the most recently seen team
// per driver over all completed races, ranked by points descending.
func (a *Aggregator) DriverStandings(ctx context.Context, year int) []model.Standing {
	a.publish(true, fmt.Sprintf("Fetching driver standings %d...", year))
	defer a.publish(false, "Ready")

	return a.accumulate(ctx, year, func(row model.RaceResult) (key, detail string) {
		return row.Driver, row.Team
	})
}

// ConstructorStandings accumulates per team; the detail column is the
// team's nationality from the static lookup table.
func (a *Aggregator) ConstructorStandings(ctx context.Context, year int) []model.Standing {
	a.publish(true, fmt.Sprintf("Fetching constructor standings %d...", year))
	defer a.publish(false, "Ready")

	return a.accumulate(ctx, year, func(row model.RaceResult) (key, detail string) {
		return row.Team, teamNationality(row.Team)
	})
}

// accumulate keeps a schedule failure and a genuinely empty season apart:
// the former surfaces as the Error row, the latter as the N/A row.
func (a *Aggregator) accumulate(ctx context.Context, year int, keyOf func(model.RaceResult) (string, string)) []model.Standing {
	events, err := a.completedEvents(ctx, year)
	if err != nil {
		log.Printf("Error fetching schedule for %d: %s", year, err.Error())
		return []model.Standing{model.ErrorStanding("Standings unavailable")}
	}
	if len(events) == 0 {
		return []model.Standing{model.NoRacesStanding()}
	}

	type tally struct {
		name   string
		detail string
		points float64
		wins   int
	}

	totals := map[string]*tally{}
	order := []string{}
	skipped := 0

	for _, ev := range events {
		rows, err := a.source.RaceResults(ctx, year, ev.Round)
		if err != nil {
			// skip the race, the season total will under-count
			skipped++
			log.Printf("Error fetching results for %q: %s", ev.Name, err.Error())
			continue
		}
		for _, row := range rows {
			key, detail := keyOf(row)
			t, ok := totals[key]
			if !ok {
				t = &tally{name: key}
				totals[key] = t
				order = append(order, key)
			}
			t.points += row.Points
			if row.Position == "1" {
				t.wins++
			}
			t.detail = detail
		}
	}

	if skipped > 0 {
		log.Printf("Standings for %d computed with %d of %d races skipped", year, skipped, len(events))
	}

	standings := make([]model.Standing, 0, len(totals))
	for _, key := range order {
		t := totals[key]
		standings = append(standings, model.Standing{
			Name:   t.name,
			Detail: t.detail,
			Points: t.points,
			Wins:   t.wins,
		})
	}
	// stable keeps first-seen order for equal points, no secondary tiebreak
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	for i := range standings {
		standings[i].Position = strconv.Itoa(i + 1)
	}
	return standings
}

// RaceResults returns the classification of one completed race. index -1
// means the most recent; anything else is clamped into the completed range.
func (a *Aggregator) RaceResults(ctx context.Context, year, index int) []model.RaceResult {
	a.publish(true, fmt.Sprintf("Fetching race results %d...", year))
	defer a.publish(false, "Ready")

	events := a.CompletedEvents(ctx, year)
	if len(events) == 0 {
		return []model.RaceResult{model.NoRacesResult()}
	}

	idx := len(events) - 1
	if index != -1 {
		idx = helper.Clamp(index, 0, len(events)-1)
	}
	ev := events[idx]

	rows, err := a.source.RaceResults(ctx, year, ev.Round)
	if err != nil {
		log.Printf("Error fetching results for %q: %s", ev.Name, err.Error())
		return []model.RaceResult{model.ErrorResult("Results unavailable")}
	}
	for i := range rows {
		rows[i].RaceName = ev.Name
	}
	return rows
}

// ScheduleRows returns the full season schedule with derived status, as the
// schedule panel displays it.
func (a *Aggregator) ScheduleRows(ctx context.Context, year int) []model.ScheduleRow {
	a.publish(true, fmt.Sprintf("Fetching schedule %d...", year))
	defer a.publish(false, "Ready")

	events, err := a.source.Schedule(ctx, year)
	if err != nil {
		log.Printf("Error fetching schedule for %d: %s", year, err.Error())
		return []model.ScheduleRow{model.ErrorScheduleRow("Schedule unavailable")}
	}
	now := a.now()
	rows := make([]model.ScheduleRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, model.ScheduleRow{
			Round:   strconv.Itoa(ev.Round),
			Name:    ev.Name,
			Circuit: ev.Circuit,
			Date:    helper.FormatDate(ev.Date),
			Status:  ev.Status(now),
		})
	}
	return rows
}

func (a *Aggregator) publish(busy bool, message string) {
	if a.statusPub == nil {
		return
	}
	a.statusPub.Publish(PubSubStatusTopic, Status{Busy: busy, Message: message})
}

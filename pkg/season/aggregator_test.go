package season

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lazyf1/pkg/model"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	events      []model.Event
	results     map[int][]model.RaceResult
	failRounds  map[int]bool
	scheduleErr error

	scheduleCalls int
	resultsCalls  int
}

func (f *fakeSource) Schedule(_ context.Context, _ int) ([]model.Event, error) {
	f.scheduleCalls++
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.events, nil
}

func (f *fakeSource) RaceResults(_ context.Context, _, round int) ([]model.RaceResult, error) {
	f.resultsCalls++
	if f.failRounds[round] {
		return nil, errors.New("fetch failed")
	}
	rows, ok := f.results[round]
	if !ok {
		return nil, errors.New("no such round")
	}
	return rows, nil
}

func event(round int, name string, daysFromNow int) model.Event {
	return model.Event{
		Round:   round,
		Name:    name,
		Circuit: name + " Circuit",
		Date:    testNow.AddDate(0, 0, daysFromNow),
	}
}

func row(driver, team, pos string, points float64) model.RaceResult {
	return model.RaceResult{Position: pos, Driver: driver, Team: team, Time: "1:30:00.000", Points: points}
}

func newTestAggregator(src Source) *Aggregator {
	agg := NewAggregator(src, nil)
	agg.now = func() time.Time { return testNow }
	return agg
}

func TestCompletedEvents_FiltersToPast(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{
			event(1, "Bahrain Grand Prix", -90),
			event(2, "Monaco Grand Prix", -7),
			event(3, "British Grand Prix", 30),
		},
	}
	agg := newTestAggregator(src)

	completed := agg.CompletedEvents(context.Background(), 2026)

	require.Len(t, completed, 2)
	assert.Equal(t, 1, completed[0].Round)
	assert.Equal(t, 2, completed[1].Round)
}

func TestCompletedEvents_ScheduleErrorMeansNone(t *testing.T) {
	src := &fakeSource{scheduleErr: errors.New("boom")}
	agg := newTestAggregator(src)

	completed := agg.CompletedEvents(context.Background(), 2026)

	assert.Empty(t, completed)
}

func TestDriverStandings_PointsAndWins(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{
			event(1, "Bahrain Grand Prix", -90),
			event(2, "Monaco Grand Prix", -30),
			event(3, "Spanish Grand Prix", -7),
		},
		results: map[int][]model.RaceResult{
			1: {row("Max Verstappen", "Red Bull", "1", 25), row("Lando Norris", "McLaren", "2", 18)},
			2: {row("Max Verstappen", "Red Bull", "1", 25), row("Lando Norris", "McLaren", "2", 18)},
			3: {row("Lando Norris", "McLaren", "1", 25), row("Max Verstappen", "Red Bull", "3", 15)},
		},
	}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.Len(t, standings, 2)
	assert.Equal(t, "1", standings[0].Position)
	assert.Equal(t, "Max Verstappen", standings[0].Name)
	assert.Equal(t, 65.0, standings[0].Points)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, "2", standings[1].Position)
	assert.Equal(t, "Lando Norris", standings[1].Name)
	assert.Equal(t, 61.0, standings[1].Points)
	assert.Equal(t, 1, standings[1].Wins)
}

func TestDriverStandings_SortedNonIncreasing(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -30), event(2, "Monaco Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {row("A Driver", "T1", "1", 10), row("B Driver", "T2", "2", 8), row("C Driver", "T3", "3", 6)},
			2: {row("C Driver", "T3", "1", 10), row("B Driver", "T2", "2", 8), row("A Driver", "T1", "3", 6)},
		},
	}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.NotEmpty(t, standings)
	for i := 1; i < len(standings); i++ {
		assert.GreaterOrEqual(t, standings[i-1].Points, standings[i].Points)
	}
}

func TestDriverStandings_TiesKeepFirstSeenOrder(t *testing.T) {
	// equal totals: the driver first seen in schedule order stays ahead
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -30), event(2, "Monaco Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {row("A Driver", "T1", "1", 10), row("B Driver", "T2", "2", 8)},
			2: {row("B Driver", "T2", "1", 10), row("A Driver", "T1", "2", 8)},
		},
	}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.Len(t, standings, 2)
	assert.Equal(t, "A Driver", standings[0].Name)
	assert.Equal(t, "B Driver", standings[1].Name)
}

func TestDriverStandings_RemembersMostRecentTeam(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -30), event(2, "Monaco Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {row("Carlos Sainz", "Ferrari", "1", 25)},
			2: {row("Carlos Sainz", "Williams", "2", 18)},
		},
	}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.Len(t, standings, 1)
	assert.Equal(t, "Williams", standings[0].Detail)
}

func TestDriverStandings_NoCompletedRacesSentinel(t *testing.T) {
	src := &fakeSource{events: []model.Event{event(1, "Bahrain Grand Prix", 30)}}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.Len(t, standings, 1)
	assert.Equal(t, model.PositionNone, standings[0].Position)
	assert.True(t, standings[0].IsSentinel())
}

func TestDriverStandings_FailedEventIsSkipped(t *testing.T) {
	events := []model.Event{
		event(1, "R1", -50), event(2, "R2", -40), event(3, "R3", -30),
		event(4, "R4", -20), event(5, "R5", -10),
	}
	results := map[int][]model.RaceResult{}
	for round := 1; round <= 5; round++ {
		results[round] = []model.RaceResult{row("Max Verstappen", "Red Bull", "1", 25)}
	}
	src := &fakeSource{events: events, results: results, failRounds: map[int]bool{3: true}}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.Len(t, standings, 1)
	assert.Equal(t, 100.0, standings[0].Points)
	assert.Equal(t, 4, standings[0].Wins)
}

func TestDriverStandings_Deterministic(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -30), event(2, "Monaco Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {row("A Driver", "T1", "1", 25), row("B Driver", "T2", "2", 18)},
			2: {row("B Driver", "T2", "1", 25), row("A Driver", "T1", "2", 18)},
		},
	}
	agg := newTestAggregator(src)

	first := agg.DriverStandings(context.Background(), 2026)
	second := agg.DriverStandings(context.Background(), 2026)

	assert.Equal(t, first, second)
}

func TestConstructorStandings_KeyedByTeam(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {
				row("Charles Leclerc", "Ferrari", "1", 25),
				row("Lewis Hamilton", "Ferrari", "2", 18),
				row("Alex Albon", "Monza Garage", "3", 15),
			},
		},
	}
	agg := newTestAggregator(src)

	standings := agg.ConstructorStandings(context.Background(), 2026)

	require.Len(t, standings, 2)
	assert.Equal(t, "Ferrari", standings[0].Name)
	assert.Equal(t, "Italian", standings[0].Detail)
	assert.Equal(t, 43.0, standings[0].Points)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, "Monza Garage", standings[1].Name)
	assert.Equal(t, "Unknown", standings[1].Detail)
}

func TestConstructorStandings_NoCompletedRacesSentinel(t *testing.T) {
	src := &fakeSource{events: []model.Event{event(1, "Bahrain Grand Prix", 30)}}
	agg := newTestAggregator(src)

	standings := agg.ConstructorStandings(context.Background(), 2026)

	require.Len(t, standings, 1)
	assert.Equal(t, model.PositionNone, standings[0].Position)
}

func TestDriverStandings_ScheduleErrorSentinel(t *testing.T) {
	// a failed schedule fetch is not an empty season: the Error row shows
	src := &fakeSource{scheduleErr: errors.New("boom")}
	agg := newTestAggregator(src)

	standings := agg.DriverStandings(context.Background(), 2026)

	require.Len(t, standings, 1)
	assert.Equal(t, model.PositionError, standings[0].Position)
	assert.Equal(t, "Standings unavailable", standings[0].Name)
}

func TestConstructorStandings_ScheduleErrorSentinel(t *testing.T) {
	src := &fakeSource{scheduleErr: errors.New("boom")}
	agg := newTestAggregator(src)

	standings := agg.ConstructorStandings(context.Background(), 2026)

	require.Len(t, standings, 1)
	assert.Equal(t, model.PositionError, standings[0].Position)
}

func TestRaceResults_LatestByDefault(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -30), event(2, "Monaco Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {row("A Driver", "T1", "1", 25)},
			2: {row("B Driver", "T2", "1", 25)},
		},
	}
	agg := newTestAggregator(src)

	results := agg.RaceResults(context.Background(), 2026, -1)

	require.Len(t, results, 1)
	assert.Equal(t, "B Driver", results[0].Driver)
	assert.Equal(t, "Monaco Grand Prix", results[0].RaceName)
}

func TestRaceResults_ClampsIndex(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{event(1, "Bahrain Grand Prix", -30), event(2, "Monaco Grand Prix", -7)},
		results: map[int][]model.RaceResult{
			1: {row("A Driver", "T1", "1", 25)},
			2: {row("B Driver", "T2", "1", 25)},
		},
	}
	agg := newTestAggregator(src)

	assert.Equal(t, "Monaco Grand Prix", agg.RaceResults(context.Background(), 2026, 99)[0].RaceName)
	assert.Equal(t, "Bahrain Grand Prix", agg.RaceResults(context.Background(), 2026, 0)[0].RaceName)
}

func TestRaceResults_NoCompletedRacesSentinel(t *testing.T) {
	src := &fakeSource{events: []model.Event{event(1, "Bahrain Grand Prix", 30)}}
	agg := newTestAggregator(src)

	results := agg.RaceResults(context.Background(), 2026, -1)

	require.Len(t, results, 1)
	assert.Equal(t, model.PositionNone, results[0].Position)
}

func TestRaceResults_FetchFailureSentinel(t *testing.T) {
	src := &fakeSource{
		events:     []model.Event{event(1, "Bahrain Grand Prix", -7)},
		failRounds: map[int]bool{1: true},
	}
	agg := newTestAggregator(src)

	results := agg.RaceResults(context.Background(), 2026, -1)

	require.Len(t, results, 1)
	assert.Equal(t, model.PositionError, results[0].Position)
}

func TestScheduleRows_StatusAndSentinel(t *testing.T) {
	src := &fakeSource{
		events: []model.Event{
			event(1, "Bahrain Grand Prix", -30),
			event(2, "British Grand Prix", 30),
		},
	}
	agg := newTestAggregator(src)

	rows := agg.ScheduleRows(context.Background(), 2026)
	require.Len(t, rows, 2)
	assert.Equal(t, model.StatusCompleted, rows[0].Status)
	assert.Equal(t, model.StatusUpcoming, rows[1].Status)

	src.scheduleErr = errors.New("boom")
	rows = agg.ScheduleRows(context.Background(), 2026)
	require.Len(t, rows, 1)
	assert.Equal(t, model.PositionError, rows[0].Round)
}

func TestNationalityLookup(t *testing.T) {
	assert.Equal(t, "Italian", teamNationality("Ferrari"))
	assert.Equal(t, "Unknown", teamNationality("Midfield Motorsport"))
}

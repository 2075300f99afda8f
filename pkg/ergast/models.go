package ergast

import (
	"strconv"
	"strings"
	"time"

	"lazyf1/pkg/model"
)

// payload shapes for the Ergast-compatible API (jolpica). Only the fields
// the dashboard reads are declared.

type scheduleResponse struct {
	MRData struct {
		RaceTable struct {
			Season string         `json:"season"`
			Races  []scheduleRace `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type scheduleRace struct {
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	Circuit  struct {
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
	Date string `json:"date"`
	Time string `json:"time"`
}

type resultsResponse struct {
	MRData struct {
		RaceTable struct {
			Races []resultsRace `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type resultsRace struct {
	RaceName string           `json:"raceName"`
	Results  []classification `json:"Results"`
}

type classification struct {
	Position     string `json:"position"`
	PositionText string `json:"positionText"`
	Points       string `json:"points"`
	Status       string `json:"status"`
	Driver       struct {
		GivenName  string `json:"givenName"`
		FamilyName string `json:"familyName"`
	} `json:"Driver"`
	Constructor struct {
		Name string `json:"name"`
	} `json:"Constructor"`
	Time struct {
		Time string `json:"time"`
	} `json:"Time"`
}

func (r scheduleRace) toEvent() model.Event {
	round, _ := strconv.Atoi(r.Round)
	return model.Event{
		Round:   round,
		Name:    r.RaceName,
		Circuit: r.Circuit.Location.Locality,
		Date:    r.eventDate(),
	}
}

// eventDate combines the date and, when present, the session start time.
// Date-only rounds resolve to midnight UTC like the provider documents.
func (r scheduleRace) eventDate() time.Time {
	if r.Time != "" {
		if t, err := time.Parse(time.RFC3339, r.Date+"T"+r.Time); err == nil {
			return t
		}
	}
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c classification) toResult() model.RaceResult {
	points, _ := strconv.ParseFloat(c.Points, 64)
	return model.RaceResult{
		Position: c.displayPosition(),
		Driver:   c.Driver.GivenName + " " + c.Driver.FamilyName,
		Team:     c.Constructor.Name,
		Time:     c.displayTime(),
		Points:   points,
	}
}

// the provider keeps a numeric position for every entry; positionText is
// numeric only for classified finishers ("R", "D", "W", ... otherwise)
func (c classification) displayPosition() string {
	if _, err := strconv.Atoi(c.PositionText); err == nil {
		return c.PositionText
	}
	return "DNF"
}

func (c classification) displayTime() string {
	if c.Time.Time != "" {
		return c.Time.Time
	}
	// lapped cars carry no race time, their status is the "+N Laps" gap
	if strings.HasPrefix(c.Status, "+") {
		return c.Status
	}
	return "DNF"
}

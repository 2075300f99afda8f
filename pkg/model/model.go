package model

import "time"

const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusUpcoming   = "Upcoming"

	// PositionNone marks a sentinel row substituted when no data exists yet.
	// PositionError marks a sentinel row substituted when fetching failed.
	PositionNone  = "N/A"
	PositionError = "Error"

	noRacesMessage = "No completed races"
)

// Event is one scheduled round of a season.
type Event struct {
	Round   int
	Name    string
	Circuit string
	Date    time.Time
}

// CompletedBy reports whether the event is strictly in the past.
func (e Event) CompletedBy(now time.Time) bool {
	return e.Date.Before(now)
}

// Status derives the display status from the schedule date. An event dated
// today (UTC) that has not started yet counts as In Progress.
func (e Event) Status(now time.Time) string {
	if e.Date.Before(now) {
		return StatusCompleted
	}
	ey, em, ed := e.Date.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	if ey == ny && em == nm && ed == nd {
		return StatusInProgress
	}
	return StatusUpcoming
}

// RaceResult is one driver's outcome in a single event. Position and Time
// hold "DNF" when the driver did not finish; sentinel rows carry
// PositionNone or PositionError instead of a classification.
type RaceResult struct {
	Position string
	Driver   string
	Team     string
	Time     string
	Points   float64
	RaceName string
}

func (r RaceResult) IsSentinel() bool {
	return r.Position == PositionNone || r.Position == PositionError
}

// Standing is the accumulated season state for one driver or team. Detail
// holds the team name for drivers and the nationality for teams.
type Standing struct {
	Position string
	Name     string
	Detail   string
	Points   float64
	Wins     int
}

func (s Standing) IsSentinel() bool {
	return s.Position == PositionNone || s.Position == PositionError
}

// ScheduleRow is the schedule panel's display row.
type ScheduleRow struct {
	Round   string
	Name    string
	Circuit string
	Date    string
	Status  string
}

func NoRacesStanding() Standing {
	return Standing{Position: PositionNone, Name: noRacesMessage}
}

func NoRacesResult() RaceResult {
	return RaceResult{Position: PositionNone, Driver: noRacesMessage}
}

func ErrorStanding(message string) Standing {
	return Standing{Position: PositionError, Name: message}
}

func ErrorResult(message string) RaceResult {
	return RaceResult{Position: PositionError, Driver: message, RaceName: PositionError}
}

func ErrorScheduleRow(message string) ScheduleRow {
	return ScheduleRow{Round: PositionError, Name: message}
}

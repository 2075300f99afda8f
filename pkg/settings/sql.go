package settings

import (
	"database/sql"
)

func buildCreatePrefsTable() string {
	return `CREATE TABLE IF NOT EXISTS prefs (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		season INTEGER NOT NULL,
		raceindex INTEGER NOT NULL);`
}

func buildSelectPrefsCommand() (string, func(*sql.Rows, Prefs) (Prefs, error)) {
	return `SELECT season, raceindex FROM prefs WHERE id = 1`, processSelectPrefsRows
}

func processSelectPrefsRows(rows *sql.Rows, defaults Prefs) (Prefs, error) {
	defer rows.Close()

	p := defaults
	// only can be one row
	if rows.Next() {
		var season int
		var raceindex int
		err := rows.Scan(&season, &raceindex)
		if err != nil {
			return p, err
		}
		p.Season = season
		p.RaceIndex = raceindex
		return p, nil
	}
	err := rows.Err()
	if err != nil {
		return p, err
	}
	return p, err
}

func buildUpsertPrefsCommand() string {
	return `INSERT INTO prefs (id, season, raceindex) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET season = excluded.season, raceindex = excluded.raceindex`
}

package settings

import (
	"database/sql"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lazyf1/pkg/cursor"
)

const DefaultDbName = "./lazyf1.db"

// Prefs is the state the dashboard restores on the next launch.
type Prefs struct {
	Season    int
	RaceIndex int
}

func DefaultPrefs() Prefs {
	return Prefs{
		Season:    time.Now().Year(),
		RaceIndex: cursor.Latest,
	}
}

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager(dbName string) (*Manager, error) {
	if dbName == "" {
		dbName = DefaultDbName
	}
	db, err := sql.Open("sqlite3", dbName)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, err
	}

	initTableStmt := buildCreatePrefsTable()

	_, err = db.Exec(initTableStmt)
	if err != nil {
		log.Printf("error init database: %s\n", err)
		return nil, err
	}

	return &Manager{
		db: db,
		mu: sync.Mutex{},
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// Load returns the stored prefs, seeded from defaults when nothing was
// stored yet. Callers pass their configured values so a fresh database does
// not override them.
func (m *Manager) Load(defaults Prefs) (Prefs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sql, read := buildSelectPrefsCommand()
	rows, err := m.db.Query(sql)
	if err != nil {
		return defaults, err
	}
	return read(rows, defaults)
}

func (m *Manager) Store(p Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.db.Exec(buildUpsertPrefsCommand(), p.Season, p.RaceIndex)
	if err != nil {
		log.Printf("error updating database: %s\n", err)
		return err
	}
	return nil
}

package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tightlines/riverlog/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "riverlog.db"

// Store is the versioned local store holding all RiverLog collections. It is
// opened once per process; repository accessors hang off it.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	trips     *TripsTable
	catches   *CatchesTable
	flyboxes  *FlyBoxesTable
	flies     *FliesTable
	flyevents *FlyEventsTable
}

// NewStore creates a new store instance. The store is not attached; call
// Attach with a Config to initialize.
func NewStore() *Store {
	return &Store{}
}

// Open is a convenience constructor: NewStore followed by Attach on dataDir.
func Open(dataDir string) (*Store, error) {
	s := NewStore()
	if err := s.Attach(types.Config{DataDir: dataDir}); err != nil {
		return nil, err
	}
	return s, nil
}

// Attach opens (creating if necessary) the database in the configured data
// directory and applies the schema. Schema creation is idempotent: tables and
// indexes are created only if absent, gated by PRAGMA user_version, and
// attaching to an existing database at the same or a higher schema version
// never destroys data.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true

	s.trips = &TripsTable{store: s}
	s.catches = &CatchesTable{store: s}
	s.flyboxes = &FlyBoxesTable{store: s}
	s.flies = &FliesTable{store: s}
	s.flyevents = &FlyEventsTable{store: s}

	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil // idempotent
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		s.db = nil
	}

	s.attached = false
	s.trips = nil
	s.catches = nil
	s.flyboxes = nil
	s.flies = nil
	s.flyevents = nil

	return nil
}

// Trips returns the trip repository.
func (s *Store) Trips() *TripsTable { return s.trips }

// Catches returns the catch repository.
func (s *Store) Catches() *CatchesTable { return s.catches }

// FlyBoxes returns the fly box repository.
func (s *Store) FlyBoxes() *FlyBoxesTable { return s.flyboxes }

// Flies returns the fly repository.
func (s *Store) Flies() *FliesTable { return s.flies }

// FlyEvents returns the fly event repository.
func (s *Store) FlyEvents() *FlyEventsTable { return s.flyevents }

// conn returns the live database handle, or ErrStoreDetached.
func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return s.db, nil
}

// initSchema applies table and index DDL when the recorded user_version is
// below the current schema version. Every statement is IF NOT EXISTS, so a
// version bump only adds what is missing.
func initSchema(db *sql.DB) error {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// NewID generates a new entity id, UUID v7 with a v4 fallback.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// nowMillis returns the current time in Unix milliseconds, the timestamp
// unit used on every row.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so each entity
// needs only one hydrate function.
type rowScanner interface {
	Scan(dest ...any) error
}

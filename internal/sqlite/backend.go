// Package sqlite persists the hiring store. JSONL files, one per table, are
// the source of truth; a SQLite database in the same directory is rebuilt
// from them on every Attach and serves as the query engine for Load.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "hrm.db"

// Backend loads a store from, and saves it to, a data directory.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

// Attach initializes the backend with the given configuration. It creates
// DataDir if needed, creates missing JSONL files, recreates the SQLite
// database and loads every JSONL file into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
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
		return err
	}

	// The database is derived state; start from a fresh schema.
	dbPath := filepath.Join(dataDir, DatabaseFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range slices.Concat(schemaDDL, indexDDL) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir, b.logger); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug("backend attached", "data_dir", dataDir)
	return nil
}

// Detach closes the SQLite connection. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// DataDir returns the attached data directory.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// Load replaces the contents of s with the persisted data. Link problems in
// the stored data are logged, not rejected, so that they can be inspected
// and repaired.
func (b *Backend) Load(s *store.Store) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrBackendDetached
	}
	snap, err := readSnapshot(b.db)
	if err != nil {
		return err
	}
	if err := s.ImportState(snap); err != nil {
		return fmt.Errorf("importing stored data: %w", err)
	}
	if issues := s.CheckLinks(); len(issues) > 0 {
		b.logger.Warn("stored data has inconsistent links", "issues", len(issues))
	}
	b.logger.Debug("store loaded",
		"candidates", len(snap.Candidates),
		"positions", len(snap.Positions),
		"interviews", len(snap.Interviews))
	return nil
}

// Save writes the full contents of s. The SQLite tables are rewritten in one
// transaction, and each JSONL file is replaced atomically before the
// transaction commits.
func (b *Backend) Save(s *store.Store) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}
	records, err := encodeSnapshot(s.ExportState())
	if err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range tableColumns {
		if _, err := tx.Exec("DELETE FROM " + mapping.table); err != nil {
			return fmt.Errorf("clearing %s: %w", mapping.table, err)
		}
	}
	for _, mapping := range tableColumns {
		rejected, err := insertRecords(tx, mapping.table, mapping.columns, records[mapping.table])
		if err != nil {
			return err
		}
		if rejected > 0 {
			return fmt.Errorf("saving %s: %d records rejected", mapping.table, rejected)
		}
	}
	for _, mapping := range tableColumns {
		path := filepath.Join(b.config.DataDir, jsonlFile(mapping.table))
		if err := writeJSONL(path, records[mapping.table]); err != nil {
			return fmt.Errorf("persisting %s: %w", mapping.table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}

	b.logger.Debug("store saved", "data_dir", b.config.DataDir)
	return nil
}

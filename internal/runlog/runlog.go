// Package runlog keeps the SQLite ledger of evaluation runs: one row
// per scenario per run, so batch outcomes stay independent and
// inspectable after the fact.
package runlog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the ledger database handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the ledger at path and applies any
// pending schema migrations.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open runlog %s: %w", path, err)
	}
	db := &DB{sqldb}
	if err := db.migrateUp(); err != nil {
		sqldb.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	// Note: not closed here because that would close the underlying
	// DB connection.
	m.Log = &migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger implements migrate.Logger interface
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }

// Entry is one recorded run outcome.
type Entry struct {
	RunID                 string
	ScenarioID            string
	Method                string
	Frames                int
	CollidesWithObstacles bool
	CollidesWithBoundary  bool
	Feasible              bool
	Exported              bool
	Failure               string // empty on success
	WallTime              time.Duration
	CreatedAt             time.Time
}

// RecordRun inserts one run outcome. A missing RunID is assigned.
func (db *DB) RecordRun(e Entry) (string, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, scenario_id, method, frames,
			collides_with_obstacles, collides_with_boundary,
			feasible, exported, failure, wall_time_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.ScenarioID, e.Method, e.Frames,
		e.CollidesWithObstacles, e.CollidesWithBoundary,
		e.Feasible, e.Exported, e.Failure, e.WallTime.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("record run for %s: %w", e.ScenarioID, err)
	}
	return e.RunID, nil
}

// RunsForScenario returns the recorded runs for one scenario, newest
// first.
func (db *DB) RunsForScenario(scenarioID string) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT run_id, scenario_id, method, frames,
		       collides_with_obstacles, collides_with_boundary,
		       feasible, exported, failure, wall_time_ms, created_at
		FROM runs WHERE scenario_id = ?
		ORDER BY created_at DESC, run_id`,
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs for %s: %w", scenarioID, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var wallMS int64
		if err := rows.Scan(
			&e.RunID, &e.ScenarioID, &e.Method, &e.Frames,
			&e.CollidesWithObstacles, &e.CollidesWithBoundary,
			&e.Feasible, &e.Exported, &e.Failure, &wallMS, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		e.WallTime = time.Duration(wallMS) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}

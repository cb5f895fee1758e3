// Package persistence keeps a SQLite catalog of generation runs and the
// path queries made against them. Maps are not stored; a run is replayed
// by regenerating from its seed and parameters.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/cellmap/internal/world"
)

// ErrRunNotFound is returned by Run when no run has the given ID.
var ErrRunNotFound = errors.New("run not found")

// DB wraps a SQLite connection for the run catalog.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		counts_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS paths (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		from_x INTEGER NOT NULL,
		from_y INTEGER NOT NULL,
		to_x INTEGER NOT NULL,
		to_y INTEGER NOT NULL,
		found INTEGER NOT NULL,
		cost INTEGER NOT NULL,
		real_cost INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_paths_run ON paths(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run describes one generated map. Params.Seed always holds the resolved
// seed, so regenerating with Params reproduces the map.
type Run struct {
	ID        string
	CreatedAt time.Time
	Width     int
	Height    int
	Seed      int64
	Params    world.GenParams
	Counts    map[string]int // terrain name -> cells
}

// NewRun builds a catalog entry for a generated grid.
func NewRun(g *world.Grid, p world.GenParams) Run {
	p.Seed = g.Seed()
	counts := make(map[string]int)
	for t, n := range world.TerrainCounts(g) {
		counts[world.TerrainName(t)] = n
	}
	return Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Width:     g.Width(),
		Height:    g.Height(),
		Seed:      g.Seed(),
		Params:    p,
		Counts:    counts,
	}
}

// Replay regenerates the run's map.
func (r *Run) Replay() *world.Grid {
	return world.Generate(r.Width, r.Height, r.Params)
}

type runRow struct {
	ID         string `db:"id"`
	CreatedAt  int64  `db:"created_at"`
	Width      int    `db:"width"`
	Height     int    `db:"height"`
	Seed       int64  `db:"seed"`
	ParamsJSON string `db:"params_json"`
	CountsJSON string `db:"counts_json"`
}

func (row runRow) run() (Run, error) {
	r := Run{
		ID:        row.ID,
		CreatedAt: time.Unix(0, row.CreatedAt),
		Width:     row.Width,
		Height:    row.Height,
		Seed:      row.Seed,
	}
	if err := json.Unmarshal([]byte(row.ParamsJSON), &r.Params); err != nil {
		return r, fmt.Errorf("decode params of run %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.CountsJSON), &r.Counts); err != nil {
		return r, fmt.Errorf("decode counts of run %s: %w", row.ID, err)
	}
	return r, nil
}

// SaveRun records a run. An empty ID is filled with a new UUID.
func (db *DB) SaveRun(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	paramsJSON, err := json.Marshal(r.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	countsJSON, err := json.Marshal(r.Counts)
	if err != nil {
		return fmt.Errorf("encode counts: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created_at, width, height, seed, params_json, counts_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(), r.Width, r.Height, r.Seed,
		string(paramsJSON), string(countsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO catalog_meta (key, value) VALUES ('last_run', ?)", r.ID,
	); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run saved", "id", r.ID, "width", r.Width, "height", r.Height, "seed", r.Seed)
	return nil
}

// Run loads a run by ID.
func (db *DB) Run(id string) (*Run, error) {
	var row runRow
	err := db.conn.Get(&row, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	r, err := row.run()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var rows []runRow
	err := db.conn.Select(&rows,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		r, err := row.run()
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// PathQuery records one pathfinding request against a run.
type PathQuery struct {
	RunID    string `db:"run_id"`
	FromX    int    `db:"from_x"`
	FromY    int    `db:"from_y"`
	ToX      int    `db:"to_x"`
	ToY      int    `db:"to_y"`
	Found    bool   `db:"found"`
	Cost     int    `db:"cost"`
	RealCost int    `db:"real_cost"`
}

// SavePath appends a path query.
func (db *DB) SavePath(q PathQuery) error {
	_, err := db.conn.NamedExec(`INSERT INTO paths
		(run_id, from_x, from_y, to_x, to_y, found, cost, real_cost)
		VALUES (:run_id, :from_x, :from_y, :to_x, :to_y, :found, :cost, :real_cost)`, q)
	if err != nil {
		return fmt.Errorf("insert path for run %s: %w", q.RunID, err)
	}
	return nil
}

// Paths returns the path queries of a run in insertion order.
func (db *DB) Paths(runID string) ([]PathQuery, error) {
	var paths []PathQuery
	err := db.conn.Select(&paths,
		`SELECT run_id, from_x, from_y, to_x, to_y, found, cost, real_cost
		FROM paths WHERE run_id = ? ORDER BY id`,
		runID,
	)
	return paths, err
}

// SaveMeta stores a key-value pair in catalog metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO catalog_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM catalog_meta WHERE key = ?", key)
	return value, err
}

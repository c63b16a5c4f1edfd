package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB holding imported election results.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the database location.
func (d *DB) Path() string { return d.path }

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema contains the full database schema. Positions keep the order of
// the source documents, which matters for first-match joins and charts.
const schema = `
CREATE TABLE IF NOT EXISTS elections (
    year TEXT PRIMARY KEY,
    source TEXT NOT NULL DEFAULT '',
    imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS constituency_results (
    year TEXT NOT NULL REFERENCES elections(year) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    constituency TEXT NOT NULL DEFAULT '',
    winning_candidate TEXT NOT NULL DEFAULT '',
    winning_party TEXT NOT NULL DEFAULT '',
    party_colour TEXT NOT NULL DEFAULT '',
    electorate INTEGER NOT NULL DEFAULT 0,
    valid_votes INTEGER NOT NULL DEFAULT 0,
    winning_vote_count INTEGER NOT NULL DEFAULT 0,
    valid_vote_percent REAL NOT NULL DEFAULT 0,
    profile_link TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(year, position)
);

CREATE INDEX IF NOT EXISTS idx_results_id ON constituency_results(year, id);

CREATE TABLE IF NOT EXISTS candidate_votes (
    year TEXT NOT NULL,
    result_position INTEGER NOT NULL,
    position INTEGER NOT NULL,
    party_abbrev TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0,
    party_colour TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(year, result_position, position),
    FOREIGN KEY(year, result_position) REFERENCES constituency_results(year, position) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS import_log (
    id TEXT PRIMARY KEY,
    timestamp DATETIME NOT NULL DEFAULT (datetime('now')),
    actor TEXT NOT NULL DEFAULT '',
    action TEXT NOT NULL,
    year TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    records INTEGER NOT NULL DEFAULT 0,
    detail TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_import_log_year ON import_log(year, timestamp);
`

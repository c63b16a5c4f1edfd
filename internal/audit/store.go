package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/robinmackenzie/uk-election-map/internal/db"
)

// Store reads and writes the import history.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	query, args, err := sq.Insert("import_log").
		Columns("id", "timestamp", "actor", "action", "year", "source", "records", "detail").
		Values(entry.ID, entry.Timestamp.UTC().Format(time.DateTime), entry.Actor, string(entry.Action),
			entry.Year, entry.Source, entry.Records, entry.Detail).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting import log entry: %w", err)
	}
	return nil
}

// QueryFilter controls which entries Query returns.
type QueryFilter struct {
	Year   string
	Action Action
	Since  time.Time
	Limit  int
}

// Query returns matching entries, newest first.
func (s *Store) Query(ctx context.Context, f QueryFilter) ([]Entry, error) {
	b := sq.Select("id", "timestamp", "actor", "action", "year", "source", "records", "detail").
		From("import_log").
		OrderBy("timestamp DESC", "rowid DESC")
	if f.Year != "" {
		b = b.Where(sq.Eq{"year": f.Year})
	}
	if f.Action != "" {
		b = b.Where(sq.Eq{"action": string(f.Action)})
	}
	if !f.Since.IsZero() {
		b = b.Where(sq.GtOrEq{"timestamp": f.Since.UTC().Format(time.DateTime)})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying import log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes entries older than before and returns how many
// were deleted.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM import_log WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old import log entries: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var (
		e      Entry
		ts     string
		action string
	)
	if err := rows.Scan(&e.ID, &ts, &e.Actor, &action, &e.Year, &e.Source, &e.Records, &e.Detail); err != nil {
		return nil, err
	}
	e.Action = Action(action)
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		e.Timestamp = t
	} else if t, err := time.Parse(time.RFC3339, ts); err == nil {
		e.Timestamp = t
	}
	return &e, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/robinmackenzie/uk-election-map/internal/results"
)

// ErrNotFound is returned when no election has been imported for a year.
var ErrNotFound = errors.New("not found")

// ResultStore reads and writes election datasets.
type ResultStore struct {
	db *DB
}

// NewResultStore creates a ResultStore backed by the given database.
func NewResultStore(database *DB) *ResultStore {
	return &ResultStore{db: database}
}

// ImportDataset replaces any stored dataset for ds.Year. progress, when
// non-nil, is called after each record is written.
func (s *ResultStore) ImportDataset(ctx context.Context, ds *results.Dataset, source string, progress func(done int)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"candidate_votes", "constituency_results", "elections"} {
		if err := execBuilder(ctx, tx, sq.Delete(table).Where(sq.Eq{"year": ds.Year})); err != nil {
			return fmt.Errorf("clearing %s for %s: %w", table, ds.Year, err)
		}
	}

	if err := execBuilder(ctx, tx, sq.Insert("elections").
		Columns("year", "source").
		Values(ds.Year, source)); err != nil {
		return fmt.Errorf("inserting election %s: %w", ds.Year, err)
	}

	for i, rec := range ds.Records {
		sm := rec.Summary
		if err := execBuilder(ctx, tx, sq.Insert("constituency_results").
			Columns("year", "position", "id", "constituency", "winning_candidate", "winning_party",
				"party_colour", "electorate", "valid_votes", "winning_vote_count", "valid_vote_percent", "profile_link").
			Values(ds.Year, i, rec.ID, sm.Constituency, sm.WinningCandidate, sm.WinningPartyName,
				sm.PartyColour, sm.Electorate, sm.ValidVotes, sm.WinningVoteCount, sm.ValidVotePercent, sm.TheyWorkForYouLink)); err != nil {
			return fmt.Errorf("inserting result %s: %w", rec.ID, err)
		}

		if len(rec.CandidateVoteInfo) > 0 {
			ins := sq.Insert("candidate_votes").
				Columns("year", "result_position", "position", "party_abbrev", "votes", "party_colour")
			for j, v := range rec.CandidateVoteInfo {
				ins = ins.Values(ds.Year, i, j, v.PartyAbbrevTransformed, v.Votes, v.PartyColour)
			}
			if err := execBuilder(ctx, tx, ins); err != nil {
				return fmt.Errorf("inserting votes for %s: %w", rec.ID, err)
			}
		}

		if progress != nil {
			progress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import of %s: %w", ds.Year, err)
	}
	return nil
}

// Years returns the imported election years in ascending order.
func (s *ResultStore) Years(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("year").From("elections").OrderBy("year").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing elections: %w", err)
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// LoadDataset reads the dataset for year in its original record and
// candidate order.
func (s *ResultStore) LoadDataset(ctx context.Context, year string) (*results.Dataset, error) {
	var exists int
	query, args, err := sq.Select("COUNT(*)").From("elections").Where(sq.Eq{"year": year}).ToSql()
	if err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking election %s: %w", year, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("election %s: %w", year, ErrNotFound)
	}

	query, args, err = sq.Select("id", "constituency", "winning_candidate", "winning_party", "party_colour",
		"electorate", "valid_votes", "winning_vote_count", "valid_vote_percent", "profile_link").
		From("constituency_results").
		Where(sq.Eq{"year": year}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results for %s: %w", year, err)
	}
	ds := &results.Dataset{Year: year}
	for rows.Next() {
		var r results.Record
		sm := &r.Summary
		if err := rows.Scan(&r.ID, &sm.Constituency, &sm.WinningCandidate, &sm.WinningPartyName, &sm.PartyColour,
			&sm.Electorate, &sm.ValidVotes, &sm.WinningVoteCount, &sm.ValidVotePercent, &sm.TheyWorkForYouLink); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		ds.Records = append(ds.Records, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query, args, err = sq.Select("result_position", "party_abbrev", "votes", "party_colour").
		From("candidate_votes").
		Where(sq.Eq{"year": year}).
		OrderBy("result_position", "position").
		ToSql()
	if err != nil {
		return nil, err
	}
	vrows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying votes for %s: %w", year, err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var (
			pos int
			v   results.CandidateVote
		)
		if err := vrows.Scan(&pos, &v.PartyAbbrevTransformed, &v.Votes, &v.PartyColour); err != nil {
			return nil, fmt.Errorf("scanning vote: %w", err)
		}
		if pos < 0 || pos >= len(ds.Records) {
			return nil, fmt.Errorf("vote row references missing result %d", pos)
		}
		ds.Records[pos].CandidateVoteInfo = append(ds.Records[pos].CandidateVoteInfo, v)
	}
	return ds, vrows.Err()
}

func execBuilder(ctx context.Context, tx *sql.Tx, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

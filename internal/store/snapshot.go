package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avelichko/jobsift/internal/model"
)

// Store keeps a SQLite copy of the last shipped batch. It is an output
// artifact: collect rewrites it whole each run, review and resolve only
// read it. It is never consulted during collection itself.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging snapshot db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS postings (
		position  INTEGER PRIMARY KEY,
		id        TEXT NOT NULL,
		source    TEXT NOT NULL,
		company   TEXT NOT NULL,
		title     TEXT NOT NULL,
		url       TEXT NOT NULL,
		location  TEXT NOT NULL,
		fit_score INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS runs (
		ran_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot schema: %w", err)
	}

	return &Store{db: db}, nil
}

// WriteSnapshot replaces the stored batch with rows, preserving their order,
// and records when the run happened.
func (s *Store) WriteSnapshot(rows []model.Posting, ranAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting snapshot write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM postings"); err != nil {
		return fmt.Errorf("clearing previous snapshot: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("clearing previous run info: %w", err)
	}

	insert, err := tx.Prepare(`INSERT INTO postings
		(position, id, source, company, title, url, location, fit_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer insert.Close()

	for i, p := range rows {
		if _, err := insert.Exec(i, p.ID, p.Source, p.Company, p.Title, p.URL, p.Location, p.FitScore); err != nil {
			return fmt.Errorf("writing snapshot row %s: %w", p.ID, err)
		}
	}

	if _, err := tx.Exec("INSERT INTO runs (ran_at) VALUES (?)", ranAt); err != nil {
		return fmt.Errorf("writing run info: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot returns the stored batch in its original order, along with
// when it was collected. An empty database yields no rows and a zero time.
func (s *Store) ReadSnapshot() ([]model.Posting, time.Time, error) {
	var ranAt time.Time
	err := s.db.QueryRow("SELECT ran_at FROM runs LIMIT 1").Scan(&ranAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, time.Time{}, fmt.Errorf("reading run info: %w", err)
	}

	rows, err := s.db.Query(`SELECT id, source, company, title, url, location, fit_score
		FROM postings ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading snapshot: %w", err)
	}
	defer rows.Close()

	var batch []model.Posting
	for rows.Next() {
		var p model.Posting
		if err := rows.Scan(&p.ID, &p.Source, &p.Company, &p.Title, &p.URL, &p.Location, &p.FitScore); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning snapshot row: %w", err)
		}
		batch = append(batch, p)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating snapshot rows: %w", err)
	}
	return batch, ranAt, nil
}

// ReadTargets adapts the stored batch into resolution targets, so a
// collect run can feed resolve directly without the external sheet.
func (s *Store) ReadTargets() ([]model.Target, error) {
	batch, _, err := s.ReadSnapshot()
	if err != nil {
		return nil, err
	}

	targets := make([]model.Target, 0, len(batch))
	for _, p := range batch {
		targets = append(targets, model.Target{
			ID:       p.ID,
			Source:   p.Source,
			Company:  p.Company,
			Title:    p.Title,
			URL:      p.URL,
			Location: p.Location,
			FitScore: strconv.Itoa(p.FitScore),
		})
	}
	return targets, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

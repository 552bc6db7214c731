// Package archive keeps a local history of computed charts in SQLite.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/bazi/internal/chart"
)

// ErrNotFound is returned when no record matches an ID.
var ErrNotFound = errors.New("record not found")

// ErrAmbiguousID is returned when an ID prefix matches more than one record.
var ErrAmbiguousID = errors.New("ambiguous record id")

// ErrDisabled is returned by Open when no database path is configured.
var ErrDisabled = errors.New("chart history is disabled (archive_path is empty)")

const schema = `
CREATE TABLE IF NOT EXISTS charts (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    calendar   TEXT NOT NULL,
    year       INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    day        INTEGER NOT NULL,
    hour       INTEGER NOT NULL,
    minute     INTEGER NOT NULL,
    second     INTEGER NOT NULL,
    leap       BOOLEAN NOT NULL DEFAULT FALSE,
    gender     TEXT NOT NULL,
    pillars    TEXT NOT NULL,
    payload    BLOB NOT NULL, -- zstd frame
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS charts_created_at ON charts(created_at);
`

// Entry is a chart to be saved.
type Entry struct {
	Name    string
	Moment  chart.Moment
	Gender  chart.Gender
	Pillars string
	// Payload is the rendered chart, usually JSON. It is stored zstd
	// compressed and returned decompressed.
	Payload []byte
}

// Record is a saved chart.
type Record struct {
	ID        string
	CreatedAt time.Time
	Entry
}

// Store is a chart history backed by a SQLite database in WAL mode.
type Store struct {
	db  *sql.DB
	now func() time.Time
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (or creates) the history database at path, creating parent
// directories as needed. An empty path yields ErrDisabled.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrDisabled
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("archive: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: create schema: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: payload encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("archive: payload decoder: %w", err)
	}

	s := &Store{db: db, now: time.Now, enc: enc, dec: dec}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save stores e under a new random ID.
func (s *Store) Save(ctx context.Context, e Entry) (Record, error) {
	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Entry:     e,
	}
	const q = `
		INSERT INTO charts (id, name, calendar, year, month, day, hour, minute, second, leap, gender, pillars, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	m := e.Moment
	_, err := s.db.ExecContext(ctx, q,
		rec.ID, e.Name, m.Calendar.String(), m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second, m.Leap,
		e.Gender.String(), e.Pillars, s.enc.EncodeAll(e.Payload, nil), rec.CreatedAt.UnixNano())
	if err != nil {
		return Record{}, fmt.Errorf("archive: save %s: %w", m, err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	q := selectRecord + ` ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: iterate records: %w", err)
	}
	return out, nil
}

// Get returns the record whose ID equals or starts with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx, selectRecord+` WHERE id LIKE ? || '%' ORDER BY id LIMIT 2`, id)
	if err != nil {
		return Record{}, fmt.Errorf("archive: get %q: %w", id, err)
	}
	defer rows.Close()

	var found []Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("archive: get %q: %w", id, err)
	}
	switch len(found) {
	case 0:
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	case 1:
		return found[0], nil
	}
	return Record{}, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
}

// Delete removes the record with exactly the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM charts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("archive: delete %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive: delete %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// Close releases the payload codecs and closes the underlying database.
func (s *Store) Close() error {
	s.dec.Close()
	return errors.Join(s.enc.Close(), s.db.Close())
}

const selectRecord = `SELECT id, name, calendar, year, month, day, hour, minute, second, leap, gender, pillars, payload, created_at FROM charts`

func (s *Store) scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec              Record
		calendar, gender string
		payload          []byte
		created          int64
	)
	m := &rec.Moment
	err := rows.Scan(&rec.ID, &rec.Name, &calendar, &m.Year, &m.Month, &m.Day, &m.Hour, &m.Minute, &m.Second, &m.Leap,
		&gender, &rec.Pillars, &payload, &created)
	if err != nil {
		return Record{}, fmt.Errorf("archive: scan record: %w", err)
	}
	if rec.Payload, err = s.dec.DecodeAll(payload, nil); err != nil {
		return Record{}, fmt.Errorf("archive: record %s: decompress payload: %w", rec.ID, err)
	}
	if m.Calendar, err = chart.ParseCalendarKind(calendar); err != nil {
		return Record{}, fmt.Errorf("archive: record %s: %w", rec.ID, err)
	}
	if rec.Gender, err = chart.ParseGender(gender); err != nil {
		return Record{}, fmt.Errorf("archive: record %s: %w", rec.ID, err)
	}
	rec.CreatedAt = time.Unix(0, created).UTC()
	return rec, nil
}

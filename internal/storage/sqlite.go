package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/temporal"

	_ "github.com/mattn/go-sqlite3"
)

// Storage is the local mirror of server-confirmed events. It backs the
// committed snapshot that the optimistic queue replays over.
type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			start_kind TEXT NOT NULL,
			start_value TEXT NOT NULL,
			start_zone TEXT NOT NULL DEFAULT '',
			end_kind TEXT NOT NULL,
			end_value TEXT NOT NULL,
			end_zone TEXT NOT NULL DEFAULT '',
			all_day INTEGER NOT NULL DEFAULT 0,
			read_only INTEGER NOT NULL DEFAULT 0,
			provider TEXT NOT NULL DEFAULT '',
			account_id TEXT NOT NULL DEFAULT '',
			calendar_id TEXT NOT NULL DEFAULT '',
			conference TEXT NOT NULL DEFAULT '',
			attendees TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_start_value ON events(start_value)`,
		`CREATE INDEX IF NOT EXISTS idx_events_calendar_id ON events(calendar_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// UpsertEvent inserts or replaces an event by id. The operation is
// idempotent per id, matching the commit contract of the optimistic
// queue.
func (s *Storage) UpsertEvent(ev *domain.Event) error {
	startKind, startValue, startZone := ev.Start.Parts()
	endKind, endValue, endZone := ev.End.Parts()

	_, err := s.db.Exec(`
		INSERT INTO events (
			id, title, description, location,
			start_kind, start_value, start_zone,
			end_kind, end_value, end_zone,
			all_day, read_only, provider, account_id, calendar_id,
			conference, attendees, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			location = excluded.location,
			start_kind = excluded.start_kind,
			start_value = excluded.start_value,
			start_zone = excluded.start_zone,
			end_kind = excluded.end_kind,
			end_value = excluded.end_value,
			end_zone = excluded.end_zone,
			all_day = excluded.all_day,
			read_only = excluded.read_only,
			provider = excluded.provider,
			account_id = excluded.account_id,
			calendar_id = excluded.calendar_id,
			conference = excluded.conference,
			attendees = excluded.attendees,
			updated_at = CURRENT_TIMESTAMP`,
		ev.ID, ev.Title, ev.Description, ev.Location,
		startKind, startValue, startZone,
		endKind, endValue, endZone,
		ev.AllDay, ev.ReadOnly, ev.Provider, ev.AccountID, ev.CalendarID,
		ev.Conference, strings.Join(ev.Attendees, ","),
	)
	if err != nil {
		return fmt.Errorf("upsert event %s: %w", ev.ID, err)
	}
	return nil
}

// DeleteEvent removes an event by id. Deleting an absent id is not an
// error.
func (s *Storage) DeleteEvent(id string) error {
	if _, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

// GetEvent returns one event or sql.ErrNoRows.
func (s *Storage) GetEvent(id string) (*domain.Event, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, location,
			start_kind, start_value, start_zone,
			end_kind, end_value, end_zone,
			all_day, read_only, provider, account_id, calendar_id,
			conference, attendees, created_at, updated_at
		FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// ListAllEvents returns every stored event, ordered by start value so
// repeated loads hand the service a stable base.
func (s *Storage) ListAllEvents() ([]*domain.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, location,
			start_kind, start_value, start_zone,
			end_kind, end_value, end_zone,
			all_day, read_only, provider, account_id, calendar_id,
			conference, attendees, created_at, updated_at
		FROM events ORDER BY start_value, id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		ev                               domain.Event
		startKind, startValue, startZone string
		endKind, endValue, endZone       string
		attendees                        string
		createdAt, updatedAt             sql.NullTime
	)

	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Location,
		&startKind, &startValue, &startZone,
		&endKind, &endValue, &endZone,
		&ev.AllDay, &ev.ReadOnly, &ev.Provider, &ev.AccountID, &ev.CalendarID,
		&ev.Conference, &attendees, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	ev.Start, err = temporal.FromParts(startKind, startValue, startZone)
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", ev.ID, err)
	}
	ev.End, err = temporal.FromParts(endKind, endValue, endZone)
	if err != nil {
		return nil, fmt.Errorf("event %s end: %w", ev.ID, err)
	}

	if attendees != "" {
		ev.Attendees = strings.Split(attendees, ",")
	}
	if createdAt.Valid {
		ev.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		ev.UpdatedAt = updatedAt.Time
	}

	return &ev, nil
}

package main

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is an in-memory SQLite mirror of the current document's events,
// rebuilt wholesale on every successful load. It exists so that the HTTP
// layer can answer day-bucketed queries over very large raw-locations
// documents with indexed SQL instead of rescanning the event slice per
// request. Nothing ever touches disk.
type Store struct {
	*sql.DB
	loc *time.Location
}

// OpenStore opens the in-memory database and applies migrations.
func OpenStore(loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	// Each pooled connection gets its own private :memory: database, so
	// the pool must stay at exactly one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	return &Store{DB: db, loc: loc}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// ReplaceEvents clears the store and inserts the given document's events
// in one transaction. Readers never observe a partially rebuilt store.
func (s *Store) ReplaceEvents(docID string, events []Event) (err error) {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM events`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO events (doc_id, kind, start_ts, end_ts, day, title, subtitle, icon, lat, lon, distance_m, movement_type, path_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		var endTS *int64
		if ev.End != nil {
			v := ev.End.UnixMilli()
			endTS = &v
		}
		var lat, lon *float64
		if ev.Point != nil {
			lat, lon = &ev.Point.Lat, &ev.Point.Lon
		}
		var pathJSON *string
		if len(ev.Path) > 0 {
			data, merr := json.Marshal(ev.Path)
			if merr != nil {
				return merr
			}
			v := string(data)
			pathJSON = &v
		}

		day := ev.Start.In(s.loc).Format("2006-01-02")

		if _, err = stmt.Exec(
			docID, string(ev.Kind), ev.Start.UnixMilli(), endTS, day,
			ev.Title, ev.Subtitle, ev.Icon, lat, lon, ev.DistanceMeters,
			ev.MovementType, pathJSON,
		); err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

// EventsForDay returns the stored events for a calendar day (YYYY-MM-DD in
// the store's timezone), ordered by start.
func (s *Store) EventsForDay(day string) ([]Event, error) {
	rows, err := s.Query(
		`SELECT kind, start_ts, end_ts, title, subtitle, icon, lat, lon, distance_m, movement_type, path_json
		 FROM events WHERE day = ? ORDER BY start_ts`, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			kind, title, subtitle, icon, movementType string
			startTS                                   int64
			endTS                                     sql.NullInt64
			lat, lon, distance                        sql.NullFloat64
			pathJSON                                  sql.NullString
		)
		if err := rows.Scan(&kind, &startTS, &endTS, &title, &subtitle, &icon,
			&lat, &lon, &distance, &movementType, &pathJSON); err != nil {
			return nil, err
		}

		ev := Event{
			Kind:         EventKind(kind),
			Start:        time.UnixMilli(startTS).In(s.loc),
			Title:        title,
			Subtitle:     subtitle,
			Icon:         icon,
			MovementType: movementType,
		}
		if endTS.Valid {
			t := time.UnixMilli(endTS.Int64).In(s.loc)
			ev.End = &t
		}
		if lat.Valid && lon.Valid {
			ev.Point = &LatLng{Lat: lat.Float64, Lon: lon.Float64}
		}
		if distance.Valid {
			d := distance.Float64
			ev.DistanceMeters = &d
		}
		if pathJSON.Valid && pathJSON.String != "" {
			// A stored path always round-trips; a decode failure would
			// mean the row was corrupted, so drop just the path.
			_ = json.Unmarshal([]byte(pathJSON.String), &ev.Path)
		}

		events = append(events, ev)
	}
	return events, rows.Err()
}

// Days returns the distinct days with data, ascending.
func (s *Store) Days() ([]string, error) {
	rows, err := s.Query(`SELECT DISTINCT day FROM events ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// CountsByKind returns how many stored events each kind has.
func (s *Store) CountsByKind() (map[string]int, error) {
	rows, err := s.Query(`SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

// CurrentDocID returns the document ID the store currently holds, or ""
// when empty.
func (s *Store) CurrentDocID() (string, error) {
	row := s.QueryRow(`SELECT doc_id FROM events LIMIT 1`)
	var docID string
	err := row.Scan(&docID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return docID, nil
}

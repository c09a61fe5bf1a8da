// Package persistence provides SQLite-based storage of empire memory and the
// event log.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-empire/internal/empire"
)

// Site kinds stored in ally_sites.
const (
	KindFort = "fort"
	KindSwap = "swap"
)

// DB wraps a SQLite connection for empire state persistence.
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
	CREATE TABLE IF NOT EXISTS ally_sites (
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (name, kind)
	);

	CREATE TABLE IF NOT EXISTS strikes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		site TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS empire_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMemory writes the empire memory (full replace).
func (db *DB) SaveMemory(mem *empire.Memory) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ally_sites"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM strikes"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO ally_sites (name, kind, position) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range mem.AllyForts {
		if _, err := stmt.Exec(name, KindFort, i); err != nil {
			return fmt.Errorf("insert ally fort %s: %w", name, err)
		}
	}
	for i, name := range mem.AllySwaps {
		if _, err := stmt.Exec(name, KindSwap, i); err != nil {
			return fmt.Errorf("insert ally swap %s: %w", name, err)
		}
	}

	for _, s := range mem.ActiveStrikes {
		if _, err := tx.Exec("INSERT INTO strikes (tick, site) VALUES (?, ?)", int64(s.Tick), s.Site); err != nil {
			return fmt.Errorf("insert strike on %s: %w", s.Site, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO empire_meta (key, value) VALUES ('trade_index', ?)",
		strconv.Itoa(mem.TradeIndex),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadMemory reads the empire memory. An empty database yields fresh memory.
func (db *DB) LoadMemory() (*empire.Memory, error) {
	mem := empire.NewMemory()

	idx, err := db.GetMeta("trade_index")
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("load trade index: %w", err)
	default:
		if mem.TradeIndex, err = strconv.Atoi(idx); err != nil {
			return nil, fmt.Errorf("parse trade index %q: %w", idx, err)
		}
	}

	if err := db.conn.Select(&mem.AllyForts,
		"SELECT name FROM ally_sites WHERE kind = ? ORDER BY position", KindFort); err != nil {
		return nil, fmt.Errorf("load ally forts: %w", err)
	}
	if err := db.conn.Select(&mem.AllySwaps,
		"SELECT name FROM ally_sites WHERE kind = ? ORDER BY position", KindSwap); err != nil {
		return nil, fmt.Errorf("load ally swaps: %w", err)
	}
	if err := db.conn.Select(&mem.ActiveStrikes,
		"SELECT tick, site FROM strikes ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load strikes: %w", err)
	}

	return mem, nil
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(events []empire.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			int64(e.Tick), e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in empire metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO empire_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM empire_meta WHERE key = ?", key)
	return value, err
}

// LastTick returns the tick of the last full save, zero if there was none.
func (db *DB) LastTick() (uint64, error) {
	v, err := db.GetMeta("last_tick")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(v, 10, 64)
}

// SaveEmpireState performs a full save: memory, buffered events and the tick.
// Events stay buffered on the empire until they are written.
func (db *DB) SaveEmpireState(emp *empire.Empire, tick uint64) error {
	slog.Info("saving empire state", "tick", tick, "strikes", len(emp.Memory.ActiveStrikes), "events", len(emp.Events))

	if err := db.SaveMemory(emp.Memory); err != nil {
		return fmt.Errorf("save memory: %w", err)
	}
	events := emp.DrainEvents()
	if err := db.SaveEvents(events); err != nil {
		emp.Events = append(events, emp.Events...)
		return fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveMeta("last_tick", strconv.FormatUint(tick, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("empire state saved")
	return nil
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]empire.Event, error) {
	var events []empire.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

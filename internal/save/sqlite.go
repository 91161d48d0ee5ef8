package save

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/game"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every save as a row and the chronicle beside it.
// Only the newest Backups+1 saves are retained.
type SQLiteStore struct {
	db      *sql.DB
	backups int
	now     func() time.Time
}

func OpenSQLite(path string, backups int) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if backups < 0 {
		backups = 0
	}
	return &SQLiteStore{db: db, backups: backups, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			saved_at TEXT NOT NULL,
			format_version INTEGER NOT NULL,
			name TEXT NOT NULL,
			world TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chronicle (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			action INTEGER NOT NULL,
			day INTEGER NOT NULL,
			command TEXT NOT NULL,
			message TEXT NOT NULL,
			power INTEGER NOT NULL,
			scrap INTEGER NOT NULL,
			water INTEGER NOT NULL,
			seeds INTEGER NOT NULL,
			mycelium INTEGER NOT NULL,
			residents INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS chronicle_action ON chronicle(action);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Load() (*game.World, error) {
	var data string
	err := s.db.QueryRow(`SELECT world FROM saves ORDER BY id DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	return decode([]byte(data))
}

func (s *SQLiteStore) Save(w *game.World) error {
	now := s.now()
	data, err := encode(w, now)
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO saves(saved_at, format_version, name, world) VALUES(?, ?, ?, ?)`,
		now.UTC().Format(time.RFC3339), FormatVersion, w.Name, string(data),
	); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM saves WHERE id NOT IN (SELECT id FROM saves ORDER BY id DESC LIMIT ?)`,
		s.backups+1,
	); err != nil {
		return fmt.Errorf("pruning saves: %w", err)
	}
	return tx.Commit()
}

// SaveCount reports how many save rows are retained.
func (s *SQLiteStore) SaveCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM saves`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) AppendChronicle(entries ...chronicle.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO chronicle(seed, action, day, command, message, power, scrap, water, seeds, mycelium, residents)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Seed, e.Action, e.Day, e.Command, e.Message, e.Power, e.Scrap, e.Water, e.Seeds, e.Mycelium, e.Residents); err != nil {
			return fmt.Errorf("writing chronicle: %w", err)
		}
	}
	return tx.Commit()
}

// RecentChronicle returns up to limit entries, oldest first.
func (s *SQLiteStore) RecentChronicle(limit int) ([]chronicle.Entry, error) {
	rows, err := s.db.Query(`SELECT seed, action, day, command, message, power, scrap, water, seeds, mycelium, residents
		FROM (SELECT * FROM chronicle ORDER BY id DESC LIMIT ?) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chronicle.Entry
	for rows.Next() {
		var e chronicle.Entry
		if err := rows.Scan(&e.Seed, &e.Action, &e.Day, &e.Command, &e.Message, &e.Power, &e.Scrap, &e.Water, &e.Seeds, &e.Mycelium, &e.Residents); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gamevault/internal/repository"

	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)
)

const (
	busyTimeout  = 5 * time.Second
	maxOpenConns = 25
)

// Store is the local file-backed record store. WAL mode and busy_timeout
// are set through DSN pragmas so they apply to every pooled connection.
type Store struct {
	db       *sql.DB
	users    *UserRepository
	games    *GameRepository
	consoles *ConsoleRepository
}

// New opens (or creates) the SQLite database at dbPath and bootstraps the
// schema.
func New(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate failed: %w", err)
	}

	s.users = &UserRepository{db: db}
	s.games = &GameRepository{db: db}
	s.consoles = &ConsoleRepository{db: db}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	);

	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		release_date TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL,
		platform_normalized TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		complete_in_box INTEGER NOT NULL DEFAULT 0,
		condition TEXT NOT NULL DEFAULT '',
		inventory INTEGER NOT NULL DEFAULT 0,
		sealed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	);

	CREATE TABLE IF NOT EXISTS consoles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		model TEXT NOT NULL,
		model_normalized TEXT NOT NULL,
		release_date TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		serial_number_box TEXT NOT NULL DEFAULT '',
		serial_number_console TEXT NOT NULL UNIQUE,
		complete_in_box INTEGER NOT NULL DEFAULT 0,
		condition TEXT NOT NULL DEFAULT '',
		inventory INTEGER NOT NULL DEFAULT 0,
		sealed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_games_platform ON games(platform_normalized);
	CREATE INDEX IF NOT EXISTS idx_consoles_model ON consoles(model_normalized);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Games() repository.GameRepository       { return s.games }
func (s *Store) Consoles() repository.ConsoleRepository { return s.consoles }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

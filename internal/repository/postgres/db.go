package postgres

import (
	"context"

	"gamevault/internal/config"
	"gamevault/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the remote managed record store backed by PostgreSQL.
type Store struct {
	pool     *pgxpool.Pool
	users    *UserRepository
	games    *GameRepository
	consoles *ConsoleRepository
}

func New(cfg *config.DatabaseConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errFailedParseDatabaseConfig(err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.HealthCheckPeriod = poolHealthCheckPeriod
	poolConfig.MaxConnLifetime = poolMaxConnLifetime
	poolConfig.MaxConnIdleTime = poolMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, errFailedCreateConnectionPool(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errFailedPingDatabase(err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(context.Background()); err != nil {
		pool.Close()
		return nil, errFailedMigrate(err)
	}

	s.users = &UserRepository{pool: pool}
	s.games = &GameRepository{pool: pool}
	s.consoles = &ConsoleRepository{pool: pool}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS games (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		release_date TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL,
		platform_normalized TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		complete_in_box BOOLEAN NOT NULL DEFAULT FALSE,
		condition TEXT NOT NULL DEFAULT '',
		inventory INTEGER NOT NULL DEFAULT 0,
		sealed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS consoles (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		model TEXT NOT NULL,
		model_normalized TEXT NOT NULL,
		release_date TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		serial_number_box TEXT NOT NULL DEFAULT '',
		serial_number_console TEXT NOT NULL UNIQUE,
		complete_in_box BOOLEAN NOT NULL DEFAULT FALSE,
		condition TEXT NOT NULL DEFAULT '',
		inventory INTEGER NOT NULL DEFAULT 0,
		sealed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_games_platform ON games(platform_normalized);
	CREATE INDEX IF NOT EXISTS idx_consoles_model ON consoles(model_normalized);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Games() repository.GameRepository       { return s.games }
func (s *Store) Consoles() repository.ConsoleRepository { return s.consoles }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

package app

import (
	"fmt"

	"gamevault/internal/config"
	"gamevault/internal/repository"
	"gamevault/internal/repository/postgres"
	"gamevault/internal/repository/sqlite"
)

// OpenStore opens the record store selected by configuration. Both backends
// run their schema migration before returning.
func OpenStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Database.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.Database.SQLitePath)
	case config.BackendPostgres:
		return postgres.New(&cfg.Database)
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}

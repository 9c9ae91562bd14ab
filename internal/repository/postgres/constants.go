package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = 1 * time.Minute
	poolMaxConnLifetime   = 1 * time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second
)

const (
	errUserExists   = "user with this username already exists"
	errUserNotFound = "user not found"
	errSerialExists = "console with this serial number already exists"

	errFailedCreateUser = "failed to create user"
	errFailedGetUser    = "failed to get user"
	errFailedListUsers  = "failed to list users"
	errFailedUpdateUser = "failed to update user"
	errFailedDeleteUser = "failed to delete user"

	errGameNotFound     = "game not found"
	errFailedCreateGame = "failed to create game"
	errFailedGetGame    = "failed to get game"
	errFailedListGames  = "failed to list games"
	errFailedCountGames = "failed to count games"
	errFailedUpdateGame = "failed to update game"
	errFailedDeleteGame = "failed to delete game"

	errConsoleNotFound     = "console not found"
	errFailedCreateConsole = "failed to create console"
	errFailedGetConsole    = "failed to get console"
	errFailedListConsoles  = "failed to list consoles"
	errFailedCountConsoles = "failed to count consoles"
	errFailedUpdateConsole = "failed to update console"
	errFailedDeleteConsole = "failed to delete console"
)

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf("failed to parse database config: %w", err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf("failed to create connection pool: %w", err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf("failed to ping database: %w", err)
}

func errFailedMigrate(err error) error {
	return fmt.Errorf("failed to run schema migration: %w", err)
}

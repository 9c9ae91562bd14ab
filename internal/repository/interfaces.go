package repository

import (
	"context"

	"gamevault/internal/domain/console"
	"gamevault/internal/domain/game"
	"gamevault/internal/domain/user"
	"gamevault/pkg/rbac"
)

// Repository interfaces shared by both store backends. The auth and
// handler packages depend only on these, never on a concrete backend.

type UserRepository interface {
	// Create inserts a principal. The username uniqueness constraint lives
	// in the store; a violation surfaces as ErrDuplicateUsername.
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	// GetByUsername performs a case-sensitive exact match.
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	UpdateRole(ctx context.Context, id int64, role rbac.Role) error
	Delete(ctx context.Context, id int64) error
}

type GameRepository interface {
	Create(ctx context.Context, input game.CreateGameInput) (*game.Game, error)
	GetByID(ctx context.Context, id int64) (*game.Game, error)
	List(ctx context.Context) ([]*game.Game, error)
	// Search matches a case-insensitive substring against title, genre and
	// platform. LIKE wildcards in the query are escaped.
	Search(ctx context.Context, query string) ([]*game.Game, error)
	ListByPlatform(ctx context.Context, normalizedPlatform string, limit, offset int) ([]*game.Game, error)
	CountByPlatform(ctx context.Context, normalizedPlatform string) (int, error)
	Update(ctx context.Context, id int64, input game.UpdateGameInput) error
	Delete(ctx context.Context, id int64) error
}

type ConsoleRepository interface {
	// Create inserts a console. The console serial number uniqueness
	// constraint lives in the store; a violation surfaces as
	// ErrDuplicateSerial.
	Create(ctx context.Context, input console.CreateConsoleInput) (*console.Console, error)
	GetByID(ctx context.Context, id int64) (*console.Console, error)
	List(ctx context.Context) ([]*console.Console, error)
	ListByModel(ctx context.Context, normalizedModel string, limit, offset int) ([]*console.Console, error)
	CountByModel(ctx context.Context, normalizedModel string) (int, error)
	Update(ctx context.Context, id int64, input console.UpdateConsoleInput) error
	Delete(ctx context.Context, id int64) error
}

// Store bundles the repositories of one backend.
type Store interface {
	Users() UserRepository
	Games() GameRepository
	Consoles() ConsoleRepository
	Ping(ctx context.Context) error
	Close() error
}

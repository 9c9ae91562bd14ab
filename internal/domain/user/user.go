package user

import (
	"time"

	"gamevault/pkg/rbac"
)

// User is an authenticatable principal. The password hash is an opaque
// bcrypt digest and must never be logged or rendered in plaintext.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         rbac.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserInput struct {
	Username     string
	PasswordHash string
	Role         rbac.Role
}

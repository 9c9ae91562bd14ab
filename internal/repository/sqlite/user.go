package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gamevault/internal/domain/user"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/rbac"
)

type UserRepository struct {
	db *sql.DB
}

const userColumns = "id, username, password_hash, role, created_at, updated_at"

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, input.Username, input.PasswordHash, string(input.Role)))
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return nil, apperrors.DuplicateUsername(errUserExists)
		}
		return nil, apperrors.StoreUnavailable(errFailedCreateUser, err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, apperrors.StoreUnavailable(errFailedGetUser, err)
	}

	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, apperrors.StoreUnavailable(errFailedGetUser, err)
	}

	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListUsers, err)
	}
	defer func() { _ = rows.Close() }()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.StoreUnavailable(errFailedListUsers, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListUsers, err)
	}

	return users, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role rbac.Role) error {
	query := `
		UPDATE users
		SET role = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(role), id)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedUpdateUser, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.StoreUnavailable(errFailedUpdateUser, err)
	}
	if affected == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedDeleteUser, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.StoreUnavailable(errFailedDeleteUser, err)
	}
	if affected == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	u := &user.User{}
	var role, createdAt, updatedAt string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.Role = rbac.Role(role)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return u, nil
}

// parseTime parses the store's RFC3339 timestamp text. A malformed value
// yields the zero time rather than failing the whole row.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

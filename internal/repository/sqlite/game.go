package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gamevault/internal/domain/game"
	apperrors "gamevault/pkg/errors"
)

type GameRepository struct {
	db *sql.DB
}

const gameColumns = `id, title, release_date, manufacturer, description, genre,
	platform, platform_normalized, score, complete_in_box, condition,
	inventory, sealed, created_at, updated_at`

func (r *GameRepository) Create(ctx context.Context, input game.CreateGameInput) (*game.Game, error) {
	query := `
		INSERT INTO games (
			title, release_date, manufacturer, description, genre,
			platform, platform_normalized, score, complete_in_box,
			condition, inventory, sealed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + gameColumns

	g, err := scanGame(r.db.QueryRowContext(ctx, query,
		input.Title, input.ReleaseDate, input.Manufacturer, input.Description,
		input.Genre, input.Platform, game.NormalizePlatform(input.Platform),
		input.Score, input.CompleteInBox, input.Condition, input.Inventory,
		input.Sealed,
	))
	if err != nil {
		return nil, apperrors.StoreUnavailable(errFailedCreateGame, err)
	}

	return g, nil
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (*game.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = ?`

	g, err := scanGame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(errGameNotFound)
		}
		return nil, apperrors.StoreUnavailable(errFailedGetGame, err)
	}

	return g, nil
}

func (r *GameRepository) List(ctx context.Context) ([]*game.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY id`
	return r.queryGames(ctx, query)
}

func (r *GameRepository) Search(ctx context.Context, search string) ([]*game.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE LOWER(title) LIKE ? ESCAPE '\'
		   OR LOWER(genre) LIKE ? ESCAPE '\'
		   OR LOWER(platform) LIKE ? ESCAPE '\'
		ORDER BY id`

	pattern := "%" + escapeLikePattern(strings.ToLower(search)) + "%"
	return r.queryGames(ctx, query, pattern, pattern, pattern)
}

func (r *GameRepository) ListByPlatform(ctx context.Context, normalizedPlatform string, limit, offset int) ([]*game.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE platform_normalized = ?
		ORDER BY id
		LIMIT ? OFFSET ?`

	return r.queryGames(ctx, query, normalizedPlatform, limit, offset)
}

func (r *GameRepository) CountByPlatform(ctx context.Context, normalizedPlatform string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games WHERE platform_normalized = ?`,
		normalizedPlatform,
	).Scan(&total)
	if err != nil {
		return 0, apperrors.StoreUnavailable(errFailedCountGames, err)
	}
	return total, nil
}

func (r *GameRepository) Update(ctx context.Context, id int64, input game.UpdateGameInput) error {
	query := "UPDATE games SET updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')"
	var args []any

	appendSet := func(column string, value any) {
		query += fmt.Sprintf(", %s = ?", column)
		args = append(args, value)
	}

	if input.Title != nil {
		appendSet("title", *input.Title)
	}
	if input.ReleaseDate != nil {
		appendSet("release_date", *input.ReleaseDate)
	}
	if input.Manufacturer != nil {
		appendSet("manufacturer", *input.Manufacturer)
	}
	if input.Description != nil {
		appendSet("description", *input.Description)
	}
	if input.Genre != nil {
		appendSet("genre", *input.Genre)
	}
	if input.Platform != nil {
		appendSet("platform", *input.Platform)
		appendSet("platform_normalized", game.NormalizePlatform(*input.Platform))
	}
	if input.Score != nil {
		appendSet("score", *input.Score)
	}
	if input.CompleteInBox != nil {
		appendSet("complete_in_box", *input.CompleteInBox)
	}
	if input.Condition != nil {
		appendSet("condition", *input.Condition)
	}
	if input.Inventory != nil {
		appendSet("inventory", *input.Inventory)
	}
	if input.Sealed != nil {
		appendSet("sealed", *input.Sealed)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedUpdateGame, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.StoreUnavailable(errFailedUpdateGame, err)
	}
	if affected == 0 {
		return apperrors.NotFound(errGameNotFound)
	}

	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedDeleteGame, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.StoreUnavailable(errFailedDeleteGame, err)
	}
	if affected == 0 {
		return apperrors.NotFound(errGameNotFound)
	}

	return nil
}

func (r *GameRepository) queryGames(ctx context.Context, query string, args ...any) ([]*game.Game, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListGames, err)
	}
	defer func() { _ = rows.Close() }()

	var games []*game.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, apperrors.StoreUnavailable(errFailedListGames, err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListGames, err)
	}

	return games, nil
}

func scanGame(row rowScanner) (*game.Game, error) {
	g := &game.Game{}
	var createdAt, updatedAt string
	if err := row.Scan(
		&g.ID, &g.Title, &g.ReleaseDate, &g.Manufacturer, &g.Description,
		&g.Genre, &g.Platform, &g.PlatformNormalized, &g.Score,
		&g.CompleteInBox, &g.Condition, &g.Inventory, &g.Sealed,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)
	return g, nil
}

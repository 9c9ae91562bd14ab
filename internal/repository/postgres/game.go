package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamevault/internal/domain/game"
	apperrors "gamevault/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	pool *pgxpool.Pool
}

const gameColumns = `id, title, release_date, manufacturer, description, genre,
	platform, platform_normalized, score, complete_in_box, condition,
	inventory, sealed, created_at, updated_at`

func scanGameRow(row pgx.Row) (*game.Game, error) {
	g := &game.Game{}
	err := row.Scan(
		&g.ID, &g.Title, &g.ReleaseDate, &g.Manufacturer, &g.Description,
		&g.Genre, &g.Platform, &g.PlatformNormalized, &g.Score,
		&g.CompleteInBox, &g.Condition, &g.Inventory, &g.Sealed,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GameRepository) Create(ctx context.Context, input game.CreateGameInput) (*game.Game, error) {
	query := `
		INSERT INTO games (
			title, release_date, manufacturer, description, genre,
			platform, platform_normalized, score, complete_in_box,
			condition, inventory, sealed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + gameColumns

	g, err := scanGameRow(r.pool.QueryRow(ctx, query,
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
	g, err := scanGameRow(r.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errGameNotFound)
		}
		return nil, apperrors.StoreUnavailable(errFailedGetGame, err)
	}

	return g, nil
}

func (r *GameRepository) List(ctx context.Context) ([]*game.Game, error) {
	return r.queryGames(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
}

func (r *GameRepository) Search(ctx context.Context, search string) ([]*game.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE title ILIKE $1
		   OR genre ILIKE $1
		   OR platform ILIKE $1
		ORDER BY id`

	pattern := "%" + escapeLikePattern(strings.ToLower(search)) + "%"
	return r.queryGames(ctx, query, pattern)
}

func (r *GameRepository) ListByPlatform(ctx context.Context, normalizedPlatform string, limit, offset int) ([]*game.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE platform_normalized = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	return r.queryGames(ctx, query, normalizedPlatform, limit, offset)
}

func (r *GameRepository) CountByPlatform(ctx context.Context, normalizedPlatform string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM games WHERE platform_normalized = $1`,
		normalizedPlatform,
	).Scan(&total)
	if err != nil {
		return 0, apperrors.StoreUnavailable(errFailedCountGames, err)
	}
	return total, nil
}

func (r *GameRepository) Update(ctx context.Context, id int64, input game.UpdateGameInput) error {
	query := "UPDATE games SET updated_at = NOW()"
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
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

	query += " WHERE id = $1"

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedUpdateGame, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errGameNotFound)
	}

	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedDeleteGame, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errGameNotFound)
	}

	return nil
}

func (r *GameRepository) queryGames(ctx context.Context, query string, args ...any) ([]*game.Game, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListGames, err)
	}
	defer rows.Close()

	var games []*game.Game
	for rows.Next() {
		g, err := scanGameRow(rows)
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

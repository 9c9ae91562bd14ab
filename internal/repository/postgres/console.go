package postgres

import (
	"context"
	"errors"
	"fmt"

	"gamevault/internal/domain/console"
	apperrors "gamevault/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConsoleRepository struct {
	pool *pgxpool.Pool
}

const consoleColumns = `id, name, model, model_normalized, release_date, manufacturer,
	serial_number_box, serial_number_console, complete_in_box, condition,
	inventory, sealed, created_at, updated_at`

func scanConsoleRow(row pgx.Row) (*console.Console, error) {
	c := &console.Console{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Model, &c.ModelNormalized, &c.ReleaseDate,
		&c.Manufacturer, &c.SerialNumberBox, &c.SerialNumberConsole,
		&c.CompleteInBox, &c.Condition, &c.Inventory, &c.Sealed,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConsoleRepository) Create(ctx context.Context, input console.CreateConsoleInput) (*console.Console, error) {
	query := `
		INSERT INTO consoles (
			name, model, model_normalized, release_date, manufacturer,
			serial_number_box, serial_number_console, complete_in_box,
			condition, inventory, sealed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + consoleColumns

	c, err := scanConsoleRow(r.pool.QueryRow(ctx, query,
		input.Name, input.Model, console.NormalizeModel(input.Model),
		input.ReleaseDate, input.Manufacturer, input.SerialNumberBox,
		input.SerialNumberConsole, input.CompleteInBox, input.Condition,
		input.Inventory, input.Sealed,
	))
	if err != nil {
		if isUniqueViolationOn(err, "serial_number_console") {
			return nil, apperrors.DuplicateSerial(errSerialExists)
		}
		return nil, apperrors.StoreUnavailable(errFailedCreateConsole, err)
	}

	return c, nil
}

func (r *ConsoleRepository) GetByID(ctx context.Context, id int64) (*console.Console, error) {
	c, err := scanConsoleRow(r.pool.QueryRow(ctx, `SELECT `+consoleColumns+` FROM consoles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errConsoleNotFound)
		}
		return nil, apperrors.StoreUnavailable(errFailedGetConsole, err)
	}

	return c, nil
}

func (r *ConsoleRepository) List(ctx context.Context) ([]*console.Console, error) {
	return r.queryConsoles(ctx, `SELECT `+consoleColumns+` FROM consoles ORDER BY id`)
}

func (r *ConsoleRepository) ListByModel(ctx context.Context, normalizedModel string, limit, offset int) ([]*console.Console, error) {
	query := `
		SELECT ` + consoleColumns + `
		FROM consoles
		WHERE model_normalized = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	return r.queryConsoles(ctx, query, normalizedModel, limit, offset)
}

func (r *ConsoleRepository) CountByModel(ctx context.Context, normalizedModel string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consoles WHERE model_normalized = $1`,
		normalizedModel,
	).Scan(&total)
	if err != nil {
		return 0, apperrors.StoreUnavailable(errFailedCountConsoles, err)
	}
	return total, nil
}

func (r *ConsoleRepository) Update(ctx context.Context, id int64, input console.UpdateConsoleInput) error {
	query := "UPDATE consoles SET updated_at = NOW()"
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if input.Name != nil {
		appendSet("name", *input.Name)
	}
	if input.Model != nil {
		appendSet("model", *input.Model)
		appendSet("model_normalized", console.NormalizeModel(*input.Model))
	}
	if input.ReleaseDate != nil {
		appendSet("release_date", *input.ReleaseDate)
	}
	if input.Manufacturer != nil {
		appendSet("manufacturer", *input.Manufacturer)
	}
	if input.SerialNumberBox != nil {
		appendSet("serial_number_box", *input.SerialNumberBox)
	}
	if input.SerialNumberConsole != nil {
		appendSet("serial_number_console", *input.SerialNumberConsole)
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
		if isUniqueViolationOn(err, "serial_number_console") {
			return apperrors.DuplicateSerial(errSerialExists)
		}
		return apperrors.StoreUnavailable(errFailedUpdateConsole, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errConsoleNotFound)
	}

	return nil
}

func (r *ConsoleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM consoles WHERE id = $1`, id)
	if err != nil {
		return apperrors.StoreUnavailable(errFailedDeleteConsole, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errConsoleNotFound)
	}

	return nil
}

func (r *ConsoleRepository) queryConsoles(ctx context.Context, query string, args ...any) ([]*console.Console, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListConsoles, err)
	}
	defer rows.Close()

	var consoles []*console.Console
	for rows.Next() {
		c, err := scanConsoleRow(rows)
		if err != nil {
			return nil, apperrors.StoreUnavailable(errFailedListConsoles, err)
		}
		consoles = append(consoles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(errFailedListConsoles, err)
	}

	return consoles, nil
}

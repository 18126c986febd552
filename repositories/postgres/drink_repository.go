package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/models"
	"github.com/cafeops/drinkshop/repositories"
)

// DrinkRepository implements repositories.DrinkRepository
type DrinkRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDrinkRepository creates a new drink repository
func NewDrinkRepository(db *DB, logger *zap.Logger) repositories.DrinkRepository {
	return &DrinkRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all drinks ordered by id
func (r *DrinkRepository) List(ctx context.Context) ([]*models.Drink, error) {
	query := `
		SELECT id, title, recipe
		FROM drinks
		ORDER BY id
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drinks: %w", err)
	}
	defer rows.Close()

	var drinks []*models.Drink
	for rows.Next() {
		drink := &models.Drink{}
		if err := rows.Scan(&drink.ID, &drink.Title, &drink.Recipe); err != nil {
			return nil, fmt.Errorf("failed to scan drink: %w", err)
		}
		drinks = append(drinks, drink)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drink rows: %w", err)
	}

	return drinks, nil
}

// GetByID retrieves a drink by id
func (r *DrinkRepository) GetByID(ctx context.Context, id int64) (*models.Drink, error) {
	query := `
		SELECT id, title, recipe
		FROM drinks
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	drink := &models.Drink{}

	err := executor.QueryRowContext(ctx, query, id).Scan(&drink.ID, &drink.Title, &drink.Recipe)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get drink: %w", err)
	}

	return drink, nil
}

// GetByTitle retrieves a drink by title
func (r *DrinkRepository) GetByTitle(ctx context.Context, title string) (*models.Drink, error) {
	query := `
		SELECT id, title, recipe
		FROM drinks
		WHERE title = $1
	`

	executor := GetExecutor(ctx, r.db)
	drink := &models.Drink{}

	err := executor.QueryRowContext(ctx, query, title).Scan(&drink.ID, &drink.Title, &drink.Recipe)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get drink by title: %w", err)
	}

	return drink, nil
}

// Create inserts a new drink and assigns its id
func (r *DrinkRepository) Create(ctx context.Context, drink *models.Drink) error {
	query := `
		INSERT INTO drinks (title, recipe)
		VALUES ($1, $2)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query, drink.Title, drink.Recipe).Scan(&drink.ID)
	if err != nil {
		return fmt.Errorf("failed to create drink: %w", err)
	}

	r.logger.Debug("drink created",
		zap.Int64("id", drink.ID),
		zap.String("title", drink.Title))
	return nil
}

// Update persists the drink's title and recipe
func (r *DrinkRepository) Update(ctx context.Context, drink *models.Drink) error {
	query := `
		UPDATE drinks
		SET title = $2,
		    recipe = $3
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, drink.ID, drink.Title, drink.Recipe)
	if err != nil {
		return fmt.Errorf("failed to update drink: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("drink updated", zap.Int64("id", drink.ID))
	return nil
}

// Delete removes the drink with the given id
func (r *DrinkRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM drinks WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete drink: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("drink deleted", zap.Int64("id", id))
	return nil
}

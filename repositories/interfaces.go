package repositories

import (
	"context"
	"errors"

	"github.com/cafeops/drinkshop/models"
)

// ErrNotFound is returned when no drink matches the lookup
var ErrNotFound = errors.New("drink not found")

// DrinkRepository defines persistence operations for the drinks table
type DrinkRepository interface {
	// List returns all drinks
	List(ctx context.Context) ([]*models.Drink, error)

	// GetByID returns the drink with the given id, or ErrNotFound
	GetByID(ctx context.Context, id int64) (*models.Drink, error)

	// GetByTitle returns the drink with the given title, or ErrNotFound
	GetByTitle(ctx context.Context, title string) (*models.Drink, error)

	// Create inserts a new drink and assigns its id
	Create(ctx context.Context, drink *models.Drink) error

	// Update persists the drink's title and recipe; ErrNotFound when no row matches
	Update(ctx context.Context, drink *models.Drink) error

	// Delete removes the drink with the given id; ErrNotFound when no row matches
	Delete(ctx context.Context, id int64) error
}

// Transaction represents an open database transaction
type Transaction interface {
	Commit() error
	Rollback() error
}

// TransactionManager runs functions inside a transaction. Repositories called
// with the function's context share the transaction.
type TransactionManager interface {
	// InTransaction executes fn in a transaction, committing on success and
	// rolling back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

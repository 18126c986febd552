package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/models"
	"github.com/cafeops/drinkshop/repositories"
	"github.com/cafeops/drinkshop/services"
	"github.com/cafeops/drinkshop/utils"
)

// MockDrinkRepository is a mock implementation of DrinkRepository
type MockDrinkRepository struct {
	mock.Mock
}

func (m *MockDrinkRepository) List(ctx context.Context) ([]*models.Drink, error) {
	args := m.Called(ctx)
	if drinks := args.Get(0); drinks != nil {
		return drinks.([]*models.Drink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDrinkRepository) GetByID(ctx context.Context, id int64) (*models.Drink, error) {
	args := m.Called(ctx, id)
	if drink := args.Get(0); drink != nil {
		return drink.(*models.Drink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDrinkRepository) GetByTitle(ctx context.Context, title string) (*models.Drink, error) {
	args := m.Called(ctx, title)
	if drink := args.Get(0); drink != nil {
		return drink.(*models.Drink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDrinkRepository) Create(ctx context.Context, drink *models.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *MockDrinkRepository) Update(ctx context.Context, drink *models.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *MockDrinkRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionManager runs fn directly against the supplied context
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

func newTestService() (*Service, *MockDrinkRepository, *MockTransactionManager) {
	repo := new(MockDrinkRepository)
	tx := new(MockTransactionManager)
	return NewService(repo, tx, zap.NewNop()), repo, tx
}

func strPtr(s string) *string { return &s }

const validRecipe = `[{"name": "milk", "color": "white", "parts": 3}]`

func TestServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns drinks", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("List", ctx).Return([]*models.Drink{{ID: 1, Title: "Latte"}}, nil)

		drinks, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, drinks, 1)
	})

	t.Run("empty catalog is an empty slice", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("List", ctx).Return([]*models.Drink{}, nil)

		drinks, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, drinks)
	})

	t.Run("repository failure maps to query error", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("List", ctx).Return(nil, errors.New("connection reset"))

		_, err := svc.List(ctx)
		assert.True(t, services.IsQueryError(err))
		assert.Equal(t, 422, services.StatusOf(err))
	})
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			payload utils.DrinkPayload
			wantErr *services.DomainError
		}{
			{name: "nothing supplied", payload: utils.DrinkPayload{}, wantErr: services.ErrTitleAndRecipeRequired},
			{name: "title missing", payload: utils.DrinkPayload{Recipe: []byte(validRecipe)}, wantErr: services.ErrTitleRequired},
			{name: "recipe missing", payload: utils.DrinkPayload{Title: strPtr("Latte")}, wantErr: services.ErrRecipeRequired},
			{name: "title blank", payload: utils.DrinkPayload{Title: strPtr(""), Recipe: []byte(validRecipe)}, wantErr: services.ErrTitleBlank},
			{name: "recipe blank", payload: utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(`""`)}, wantErr: services.ErrRecipeBlank},
			{name: "recipe not a list", payload: utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(`{"name": "milk"}`)}, wantErr: services.ErrInvalidRecipe},
			{name: "ingredient missing name", payload: utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(`[{"color": "white", "parts": 3}]`)}, wantErr: services.ErrInvalidRecipe},
			{name: "negative parts", payload: utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(`[{"name": "milk", "color": "white", "parts": -1}]`)}, wantErr: services.ErrInvalidRecipe},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, repo, _ := newTestService()

				_, err := svc.Create(ctx, &tt.payload)
				assert.Equal(t, tt.wantErr, err)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("duplicate title rejected before insert", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByTitle", ctx, "Latte").Return(&models.Drink{ID: 1, Title: "Latte"}, nil)

		_, err := svc.Create(ctx, &utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(validRecipe)})
		assert.Equal(t, services.ErrDuplicateTitle, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("uniqueness check failure maps to query error", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByTitle", ctx, "Latte").Return(nil, errors.New("connection reset"))

		_, err := svc.Create(ctx, &utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(validRecipe)})
		assert.True(t, services.IsQueryError(err))
	})

	t.Run("inserts inside a transaction", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByTitle", ctx, "Latte").Return(nil, repositories.ErrNotFound)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Drink")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Drink).ID = 42
			}).
			Return(nil)

		drink, err := svc.Create(ctx, &utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(validRecipe)})
		require.NoError(t, err)
		assert.Equal(t, int64(42), drink.ID)
		assert.Equal(t, "Latte", drink.Title)

		// the stored blob round-trips to the submitted ingredient list
		ingredients, err := drink.Ingredients()
		require.NoError(t, err)
		require.Len(t, ingredients, 1)
		assert.Equal(t, models.Ingredient{Name: "milk", Color: "white", Parts: 3}, ingredients[0])

		tx.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("insert failure maps to query error", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByTitle", ctx, "Latte").Return(nil, repositories.ErrNotFound)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		_, err := svc.Create(ctx, &utils.DrinkPayload{Title: strPtr("Latte"), Recipe: []byte(validRecipe)})
		assert.True(t, services.IsQueryError(err))

		var domainErr *services.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Unexpected error inserting the drink into the database.", domainErr.Message)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	existing := func() *models.Drink {
		return &models.Drink{ID: 5, Title: "Latte", Recipe: validRecipe}
	}

	t.Run("no fields supplied", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Update(ctx, 5, &utils.DrinkPayload{})
		assert.Equal(t, services.ErrNoFieldsSupplied, err)
	})

	t.Run("blank fields", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Update(ctx, 5, &utils.DrinkPayload{Title: strPtr("")})
		assert.Equal(t, services.ErrBlankFields, err)

		_, err = svc.Update(ctx, 5, &utils.DrinkPayload{Recipe: []byte(`""`)})
		assert.Equal(t, services.ErrBlankFields, err)
	})

	t.Run("invalid recipe", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Update(ctx, 5, &utils.DrinkPayload{Recipe: []byte(`"espresso"`)})
		assert.Equal(t, services.ErrInvalidRecipe, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(99)).Return(nil, repositories.ErrNotFound)

		_, err := svc.Update(ctx, 99, &utils.DrinkPayload{Title: strPtr("Flat White")})
		assert.Equal(t, services.ErrDrinkNotFound, err)
	})

	t.Run("title-only update keeps the recipe", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByID", ctx, int64(5)).Return(existing(), nil)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Drink")).Return(nil)

		drink, err := svc.Update(ctx, 5, &utils.DrinkPayload{Title: strPtr("Flat White")})
		require.NoError(t, err)
		assert.Equal(t, "Flat White", drink.Title)
		assert.JSONEq(t, validRecipe, drink.Recipe)
	})

	t.Run("recipe-only update keeps the title", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByID", ctx, int64(5)).Return(existing(), nil)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Drink")).Return(nil)

		newRecipe := `[{"name": "oat milk", "color": "beige", "parts": 2}]`
		drink, err := svc.Update(ctx, 5, &utils.DrinkPayload{Recipe: json.RawMessage(newRecipe)})
		require.NoError(t, err)
		assert.Equal(t, "Latte", drink.Title)
		assert.JSONEq(t, newRecipe, drink.Recipe)
	})

	t.Run("update failure maps to query error", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByID", ctx, int64(5)).Return(existing(), nil)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("write failed"))

		_, err := svc.Update(ctx, 5, &utils.DrinkPayload{Title: strPtr("Flat White")})
		assert.True(t, services.IsQueryError(err))

		var domainErr *services.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Unexpected error updating the database.", domainErr.Message)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and returns the id", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByID", ctx, int64(5)).Return(&models.Drink{ID: 5, Title: "Latte"}, nil)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Delete", mock.Anything, int64(5)).Return(nil)

		deleted, err := svc.Delete(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), deleted)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(99)).Return(nil, repositories.ErrNotFound)

		_, err := svc.Delete(ctx, 99)
		assert.Equal(t, services.ErrDrinkNotFound, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete failure maps to query error", func(t *testing.T) {
		svc, repo, tx := newTestService()
		repo.On("GetByID", ctx, int64(5)).Return(&models.Drink{ID: 5}, nil)
		tx.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("Delete", mock.Anything, int64(5)).Return(errors.New("write failed"))

		_, err := svc.Delete(ctx, 5)
		assert.True(t, services.IsQueryError(err))

		var domainErr *services.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Unexpected error deleting the drink from the database.", domainErr.Message)
	})
}

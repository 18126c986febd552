// Package catalog implements the drink catalog store: validation of drink
// input, duplicate-title enforcement and transactional persistence over the
// drink repository.
package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/models"
	"github.com/cafeops/drinkshop/repositories"
	"github.com/cafeops/drinkshop/services"
	"github.com/cafeops/drinkshop/utils"
)

// Service provides CRUD operations on the drink catalog. Validation and
// uniqueness are business rules and live here, not in the database schema.
type Service struct {
	repo   repositories.DrinkRepository
	tx     repositories.TransactionManager
	logger *zap.Logger
}

// NewService creates a new catalog service
func NewService(repo repositories.DrinkRepository, tx repositories.TransactionManager, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
	}
}

// List returns all drinks. An empty catalog is an empty slice; callers decide
// how to present it.
func (s *Service) List(ctx context.Context) ([]*models.Drink, error) {
	drinks, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list drinks", zap.Error(err))
		return nil, services.WrapQuery("Unexpected error accessing the database.", err)
	}
	return drinks, nil
}

// Create validates and inserts a new drink. Title and recipe are both
// required and must not be blank; the title must not already exist.
func (s *Service) Create(ctx context.Context, payload *utils.DrinkPayload) (*models.Drink, error) {
	switch {
	case payload.Title == nil && payload.Recipe == nil:
		return nil, services.ErrTitleAndRecipeRequired
	case payload.Title == nil:
		return nil, services.ErrTitleRequired
	case payload.Recipe == nil:
		return nil, services.ErrRecipeRequired
	case payload.TitleBlank():
		return nil, services.ErrTitleBlank
	case payload.RecipeBlank():
		return nil, services.ErrRecipeBlank
	}

	ingredients, err := s.parseIngredients(payload.Recipe)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByTitle(ctx, *payload.Title); err == nil {
		return nil, services.ErrDuplicateTitle
	} else if !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error("failed to check title uniqueness", zap.Error(err))
		return nil, services.WrapQuery("Unexpected error accessing the database.", err)
	}

	drink := &models.Drink{Title: *payload.Title}
	if err := drink.SetIngredients(ingredients); err != nil {
		return nil, services.ErrInvalidRecipe
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, drink)
	})
	if err != nil {
		s.logger.Error("failed to insert drink", zap.String("title", drink.Title), zap.Error(err))
		return nil, services.WrapQuery("Unexpected error inserting the drink into the database.", err)
	}

	s.logger.Info("drink created", zap.Int64("id", drink.ID), zap.String("title", drink.Title))
	return drink, nil
}

// Update applies the supplied fields to an existing drink. At least one of
// title and recipe must be supplied and neither may be blank.
func (s *Service) Update(ctx context.Context, id int64, payload *utils.DrinkPayload) (*models.Drink, error) {
	if payload.Title == nil && payload.Recipe == nil {
		return nil, services.ErrNoFieldsSupplied
	}
	if payload.TitleBlank() || payload.RecipeBlank() {
		return nil, services.ErrBlankFields
	}

	var ingredients []models.Ingredient
	if payload.Recipe != nil {
		var err error
		ingredients, err = s.parseIngredients(payload.Recipe)
		if err != nil {
			return nil, err
		}
	}

	drink, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrDrinkNotFound
		}
		s.logger.Error("failed to load drink", zap.Int64("id", id), zap.Error(err))
		return nil, services.WrapQuery("Unexpected error accessing the database.", err)
	}

	if payload.Title != nil {
		drink.Title = *payload.Title
	}
	if payload.Recipe != nil {
		if err := drink.SetIngredients(ingredients); err != nil {
			return nil, services.ErrInvalidRecipe
		}
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, drink)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrDrinkNotFound
		}
		s.logger.Error("failed to update drink", zap.Int64("id", id), zap.Error(err))
		return nil, services.WrapQuery("Unexpected error updating the database.", err)
	}

	s.logger.Info("drink updated", zap.Int64("id", drink.ID))
	return drink, nil
}

// Delete removes the drink with the given id and returns the deleted id
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, services.ErrDrinkNotFound
		}
		s.logger.Error("failed to load drink", zap.Int64("id", id), zap.Error(err))
		return 0, services.WrapQuery("Unexpected error accessing the database.", err)
	}

	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, services.ErrDrinkNotFound
		}
		s.logger.Error("failed to delete drink", zap.Int64("id", id), zap.Error(err))
		return 0, services.WrapQuery("Unexpected error deleting the drink from the database.", err)
	}

	s.logger.Info("drink deleted", zap.Int64("id", id))
	return id, nil
}

// recipeDocument wraps the ingredient list for struct validation
type recipeDocument struct {
	Ingredients []models.Ingredient `validate:"dive"`
}

// parseIngredients decodes and validates a raw recipe value
func (s *Service) parseIngredients(raw []byte) ([]models.Ingredient, error) {
	ingredients, err := models.ParseRecipe(raw)
	if err != nil {
		return nil, services.ErrInvalidRecipe
	}
	if err := utils.ValidateStruct(&recipeDocument{Ingredients: ingredients}); err != nil {
		s.logger.Debug("recipe validation failed", zap.Error(err))
		return nil, services.ErrInvalidRecipe
	}
	return ingredients, nil
}

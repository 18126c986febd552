package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/auth0"
	"github.com/cafeops/drinkshop/config"
	"github.com/cafeops/drinkshop/handlers"
	"github.com/cafeops/drinkshop/middleware"
	"github.com/cafeops/drinkshop/repositories"
	"github.com/cafeops/drinkshop/repositories/postgres"
	"github.com/cafeops/drinkshop/services/catalog"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Persistence
	Drinks    repositories.DrinkRepository
	TxManager repositories.TransactionManager

	// Domain
	Catalog *catalog.Service

	// HTTP
	DrinkHandler   *handlers.DrinkHandler
	HealthHandler  *handlers.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.Drinks = postgres.NewDrinkRepository(deps.DB, logger)
	deps.TxManager = postgres.NewTransactionManager(deps.DB, logger)
	deps.Catalog = catalog.NewService(deps.Drinks, deps.TxManager, logger)
	deps.DrinkHandler = handlers.NewDrinkHandler(deps.Catalog, logger)
	deps.HealthHandler = handlers.NewHealthHandler(deps.DB, logger)

	verifier := auth0.NewVerifier(auth0.Config{
		Domain:      cfg.Auth0.Domain,
		Audience:    cfg.Auth0.Audience,
		HTTPTimeout: cfg.Auth0.HTTPTimeout,
	}, logger)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(verifier, logger)

	logger.Info("all dependencies initialized")
	return deps, nil
}

// initDatabase opens the connection pool and prepares the schema. When the
// reset flag is set, the drinks table is dropped, recreated and seeded.
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}
	d.DB = db

	if cfg.Database.Reset {
		d.Logger.Warn("resetting database schema, all records will be dropped")
		if err := db.ResetSchema(ctx); err != nil {
			return err
		}
		return nil
	}

	return db.InitSchema(ctx)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close() error {
	d.Logger.Info("shutting down dependencies")

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

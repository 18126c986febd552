package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/config"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// NewDBFromConn wraps an existing connection pool (used in tests)
func NewDBFromConn(conn *sql.DB, logger *zap.Logger) *DB {
	return &DB{
		DB:     conn,
		logger: logger,
	}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// InitSchema creates the drinks table if it does not exist
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS drinks (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			recipe TEXT NOT NULL
		);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized")
	return nil
}

// ResetSchema drops the drinks table, recreates it and inserts sample
// drinks. Destroys all records; gated behind config.DatabaseConfig.Reset.
func (db *DB) ResetSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS drinks`); err != nil {
		return fmt.Errorf("failed to drop drinks table: %w", err)
	}

	if err := db.InitSchema(ctx); err != nil {
		return err
	}

	seed := `
		INSERT INTO drinks (title, recipe) VALUES
		($1, $2),
		($3, $4)
	`
	_, err := db.ExecContext(ctx, seed,
		"White Coffee",
		`[{"name": "coffee", "color": "black", "parts": 1},{"name": "milk", "color": "white", "parts": 3}]`,
		"White Coffee2",
		`[{"name": "coffee2", "color": "black2", "parts": 2},{"name": "milk2", "color": "white2", "parts": 4}]`,
	)
	if err != nil {
		return fmt.Errorf("failed to seed drinks: %w", err)
	}

	db.logger.Info("database schema reset and seeded")
	return nil
}

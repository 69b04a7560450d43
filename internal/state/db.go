// ./internal/state/db.go
package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

// DB is a global database connection pool.
var DB *sql.DB

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable", "require", "verify-full", etc.
}

// InitDB initializes the database connection pool.
func InitDB(cfg DBConfig) error {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var err error
	DB, err = sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	err = DB.Ping()
	if err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Successfully connected to the PostgreSQL database!")
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		log.Info().Msg("Closing database connection...")
		if err := DB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database connection")
		}
	}
}

// EnsureSchema applies the necessary DDL to create tables if they don't exist.
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	// NUMERIC(78, 0) fits any 256-bit unsigned integer without truncation.
	schemaSQL := `
		CREATE TABLE IF NOT EXISTS pools (
			pool_id VARCHAR(255) PRIMARY KEY,
			asset_a VARCHAR(128) NOT NULL,
			asset_b VARCHAR(128) NOT NULL,
			reserve_a NUMERIC(78, 0) NOT NULL,
			reserve_b NUMERIC(78, 0) NOT NULL,
			total_shares NUMERIC(78, 0) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT chk_pools_pair_order CHECK (asset_a < asset_b)
		);

		CREATE TABLE IF NOT EXISTS share_positions (
			pool_id VARCHAR(255) NOT NULL REFERENCES pools(pool_id),
			holder VARCHAR(255) NOT NULL,
			shares NUMERIC(78, 0) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (pool_id, holder)
		);

		CREATE TABLE IF NOT EXISTS swap_events (
			event_id SERIAL PRIMARY KEY,
			pool_id VARCHAR(255) NOT NULL,
			caller VARCHAR(255) NOT NULL,
			asset_in VARCHAR(128) NOT NULL,
			asset_out VARCHAR(128) NOT NULL,
			amount_in NUMERIC(78, 0) NOT NULL,
			amount_out NUMERIC(78, 0) NOT NULL,
			event_timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_swap_events_pool ON swap_events(pool_id, event_timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_swap_events_timestamp ON swap_events(event_timestamp DESC);

		CREATE TABLE IF NOT EXISTS liquidity_events (
			event_id SERIAL PRIMARY KEY,
			pool_id VARCHAR(255) NOT NULL,
			caller VARCHAR(255) NOT NULL,
			direction VARCHAR(10) NOT NULL CHECK (direction IN ('add', 'remove')),
			amount_a NUMERIC(78, 0) NOT NULL,
			amount_b NUMERIC(78, 0) NOT NULL,
			shares NUMERIC(78, 0) NOT NULL,
			event_timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_liquidity_events_pool ON liquidity_events(pool_id, event_timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_liquidity_events_timestamp ON liquidity_events(event_timestamp DESC);
	`
	_, err := DB.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to execute schema DDL: %w", err)
	}
	log.Info().Msg("Database schema ensured.")
	return nil
}

// TestDBConnection tests if the database connection is healthy
func TestDBConnection() error {
	if DB == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Use a short timeout context for health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := DB.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

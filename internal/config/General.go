package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// AppConfig holds all application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// WebPort is the port the HTTP API listens on.
	WebPort string

	// DBHost is the PostgreSQL host.
	DBHost string
	// DBPort is the PostgreSQL port.
	DBPort int
	// DBUser is the PostgreSQL user.
	DBUser string
	// DBPassword is the PostgreSQL password.
	DBPassword string
	// DBName is the PostgreSQL database name.
	DBName string
	// DBSSLMode is the PostgreSQL SSL mode (e.g., "disable", "require").
	DBSSLMode string

	// LogFile is an optional path to duplicate log output to. Empty means
	// console only.
	LogFile string

	// EscrowPrefix is the account prefix used to derive pool escrow addresses.
	EscrowPrefix string

	// BootstrapPairs is the list of asset pairs to ensure pools for at startup.
	// Each entry is a "denomA/denomB" pair. May be empty.
	BootstrapPairs []string
)

// LoadConfig loads configuration from environment variables and sets the global config vars.
// Database variables are required; the rest have sensible defaults.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	var err error

	DBHost, err = getEnv("DB_HOST")
	if err != nil {
		return err
	}

	DBPort, err = getEnvAsInt("DB_PORT")
	if err != nil {
		return err
	}

	DBUser, err = getEnv("DB_USER")
	if err != nil {
		return err
	}

	DBPassword, err = getEnv("DB_PASSWORD")
	if err != nil {
		return err
	}

	DBName, err = getEnv("DB_NAME")
	if err != nil {
		return err
	}

	DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")
	WebPort = getEnvWithDefault("WEB_PORT", "8080")
	LogFile = getEnvWithDefault("LOG_FILE", "")
	EscrowPrefix = getEnvWithDefault("POOL_ESCROW_PREFIX", "poolescrow")

	BootstrapPairs = nil
	if raw := os.Getenv("BOOTSTRAP_PAIRS"); raw != "" {
		for _, pair := range strings.Split(raw, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			if strings.Count(pair, "/") != 1 {
				return errors.New("BOOTSTRAP_PAIRS entry must be of the form denomA/denomB, got: " + pair)
			}
			BootstrapPairs = append(BootstrapPairs, pair)
		}
	}

	log.Debug().
		Str("WebPort", WebPort).
		Str("DBHost", DBHost).
		Str("DBName", DBName).
		Int("BootstrapPairs", len(BootstrapPairs)).
		Msg("Configuration loaded successfully.")

	return nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvWithDefault retrieves a string environment variable, falling back to a default.
func getEnvWithDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an int. Returns error if not set or invalid.
func getEnvAsInt(key string) (int, error) {
	valueStr, err := getEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid integer, got: " + valueStr)
	}
	return value, nil
}

package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cascade-dex/cpmm/internal/amm"
	"github.com/cascade-dex/cpmm/internal/config"
	"github.com/cascade-dex/cpmm/internal/logger"
	"github.com/cascade-dex/cpmm/internal/state"
	"github.com/cascade-dex/cpmm/internal/token"
	"github.com/cascade-dex/cpmm/internal/web"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the entry point for the cpmm service.
func main() {
	// --- 1. Initialization Phase ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	// Load configuration from environment variables
	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Initialize(os.Getenv("LOG_LEVEL"), config.LogFile)
	log.Info().Msg("cpmm pool engine starting...")

	// Initialize Database Connection
	dbCfg := state.DBConfig{
		Host: config.DBHost, Port: config.DBPort,
		User: config.DBUser, Password: config.DBPassword,
		DBName: config.DBName, SSLMode: config.DBSSLMode,
	}
	if err := state.InitDB(dbCfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer state.CloseDB()
	if err := state.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// --- 2. Engine Wiring ---
	bank := token.NewBank()
	recorder := state.NewRecorder()
	registry := amm.NewRegistry(config.EscrowPrefix, recorder, amm.NewEngineMetrics())
	recorder.Attach(registry)

	// Restore persisted pools before accepting traffic
	if err := restorePools(registry, bank); err != nil {
		log.Fatal().Err(err).Msg("Failed to restore pools from database")
	}

	// Ensure configured bootstrap pairs exist
	for _, pair := range config.BootstrapPairs {
		parts := strings.SplitN(pair, "/", 2)
		if _, err := registry.GetPool(parts[0], parts[1]); err == nil {
			continue
		}
		pool, err := registry.CreatePool(bank.GetOrCreate(parts[0]), bank.GetOrCreate(parts[1]))
		if err != nil {
			log.Fatal().Err(err).Str("pair", pair).Msg("Failed to create bootstrap pool")
		}
		if err := state.SavePoolSnapshot(pool.Snapshot()); err != nil {
			log.Error().Err(err).Str("pair", pair).Msg("Failed to persist bootstrap pool")
		}
	}

	// --- 3. Start Web Server ---
	webServer := web.NewWebServer(config.WebPort, registry, bank)
	go func() {
		log.Info().Str("port", config.WebPort).Str("url", "http://localhost:"+config.WebPort).Msg("Starting cpmm API")
		if err := webServer.Start(); err != nil {
			log.Fatal().Err(err).Msg("Web server failed")
		}
	}()

	// --- 4. Wait for Shutdown Signal ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Shutting down")
}

// restorePools rebuilds the in-memory engine from the persisted snapshots:
// pool reserves, escrow custody on the asset ledgers, and every holder's
// share position.
func restorePools(registry *amm.Registry, bank *token.Bank) error {
	snapshots, err := state.LoadPools()
	if err != nil {
		return err
	}

	for _, snap := range snapshots {
		pool, err := registry.CreatePool(bank.GetOrCreate(snap.AssetA), bank.GetOrCreate(snap.AssetB))
		if err != nil {
			return err
		}
		pool.Restore(snap.ReserveA, snap.ReserveB)

		// Custody must match the tracked reserves after a restart.
		if err := bank.GetOrCreate(snap.AssetA).Mint(pool.Escrow(), snap.ReserveA); err != nil {
			return err
		}
		if err := bank.GetOrCreate(snap.AssetB).Mint(pool.Escrow(), snap.ReserveB); err != nil {
			return err
		}

		positions, err := state.LoadSharePositions(snap.ID)
		if err != nil {
			return err
		}
		for holder, shares := range positions {
			if err := pool.Shares().Mint(holder, shares); err != nil {
				return err
			}
		}

		if !pool.TotalShares().Equal(snap.TotalShares) {
			log.Warn().
				Str("pool", string(snap.ID)).
				Str("positions_total", pool.TotalShares().String()).
				Str("snapshot_total", snap.TotalShares.String()).
				Msg("Restored share positions do not sum to snapshot total")
		}

		log.Info().
			Str("pool", string(snap.ID)).
			Str("reserve_a", snap.ReserveA.String()).
			Str("reserve_b", snap.ReserveB.String()).
			Msg("Pool restored")
	}
	return nil
}

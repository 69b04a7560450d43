package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cascade-dex/cpmm/internal/amm"
	"github.com/cascade-dex/cpmm/internal/logger"
	"github.com/cascade-dex/cpmm/internal/state"
	"github.com/cascade-dex/cpmm/internal/token"
)

var webLogger = logger.GetForComponent("web_server")

// WebServer exposes the pool engine over HTTP. All amounts cross this
// boundary as decimal strings.
type WebServer struct {
	router   *mux.Router
	port     string
	registry *amm.Registry
	bank     *token.Bank
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, registry *amm.Registry, bank *token.Bank) *WebServer {
	if port == "" {
		port = "8080"
	}

	server := &WebServer{
		router:   mux.NewRouter(),
		port:     port,
		registry: registry,
		bank:     bank,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (ws *WebServer) setupRoutes() {
	// Health and metrics (direct routes)
	ws.router.HandleFunc("/health", ws.handleHealth).Methods("GET")
	ws.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API endpoints
	api := ws.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/pools", ws.handleCreatePool).Methods("POST")
	api.HandleFunc("/pools", ws.handleListPools).Methods("GET")
	api.HandleFunc("/pools/{pair}/reserves", ws.handleGetReserves).Methods("GET")
	api.HandleFunc("/pools/{pair}/swap", ws.handleSwap).Methods("POST")
	api.HandleFunc("/pools/{pair}/liquidity/add", ws.handleAddLiquidity).Methods("POST")
	api.HandleFunc("/pools/{pair}/liquidity/remove", ws.handleRemoveLiquidity).Methods("POST")
	api.HandleFunc("/pools/{pair}/positions/{holder}", ws.handleGetPosition).Methods("GET")
	api.HandleFunc("/assets/{denom}/approve", ws.handleApprove).Methods("POST")
	api.HandleFunc("/assets/{denom}/balances/{holder}", ws.handleGetBalance).Methods("GET")
	api.HandleFunc("/faucet", ws.handleFaucet).Methods("POST")

	// Add CORS middleware
	ws.router.Use(ws.corsMiddleware)
	ws.router.Use(ws.loggingMiddleware)
}

// Start starts the web server
func (ws *WebServer) Start() error {
	webLogger.Info().Str("port", ws.port).Msg("Starting web server")

	server := &http.Server{
		Addr:         ":" + ws.port,
		Handler:      ws.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// handleHealth returns server health status
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthy := true
	if err := state.TestDBConnection(); err != nil {
		dbHealthy = false
	}

	status := "OK"
	code := http.StatusOK
	if !dbHealthy {
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}

	ws.writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"db_healthy": dbHealthy,
		"pools":      len(ws.registry.Pools()),
		"timestamp":  time.Now().UTC(),
	})
}

// corsMiddleware adds CORS headers to all responses
func (ws *WebServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all HTTP requests
func (ws *WebServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		webLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// writeJSON writes a JSON response with the given status code
func (ws *WebServer) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		webLogger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError maps an engine error onto an HTTP status and renders it
func (ws *WebServer) writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, amm.ErrPoolNotFound):
		code = http.StatusNotFound
	case errors.Is(err, amm.ErrPoolExists):
		code = http.StatusConflict
	case errors.Is(err, amm.ErrInsufficientOutput),
		errors.Is(err, amm.ErrInsufficientLiquidity),
		errors.Is(err, amm.ErrInsufficientShares),
		errors.Is(err, amm.ErrTransferFailed):
		code = http.StatusUnprocessableEntity
	}
	ws.writeJSON(w, code, map[string]string{"error": err.Error()})
}

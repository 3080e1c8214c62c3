package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/finsim/backend/internal/api/handlers"
	"github.com/wonny/finsim/backend/pkg/config"
	"github.com/wonny/finsim/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: routing setup happens in this function only
func NewRouter(simHandler *handlers.SimulationHandler, mortgageHandler *handlers.MortgageHandler,
	cfg *config.Config, log *logger.Logger) http.Handler {

	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Simulation endpoints (all stateless POST computations)
	r.HandleFunc("/drawdown", simHandler.Drawdown).Methods("POST", "OPTIONS")
	r.HandleFunc("/simulate", simHandler.Compound).Methods("POST", "OPTIONS")
	r.HandleFunc("/fire", simHandler.Fire).Methods("POST", "OPTIONS")
	r.HandleFunc("/suggestions", simHandler.Suggestions).Methods("POST", "OPTIONS")
	r.HandleFunc("/mortgage", mortgageHandler.Mortgage).Methods("POST", "OPTIONS")

	// Apply middleware (outermost first)
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		r.Use(rateLimitMiddleware(cfg.RateLimit, log))
	}

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "finsim-api",
	})
}

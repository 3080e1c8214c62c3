package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/finsim/backend/internal/api"
	"github.com/wonny/finsim/backend/internal/api/handlers"
	"github.com/wonny/finsim/backend/pkg/config"
	"github.com/wonny/finsim/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the simulation API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health       - Health check
  POST /drawdown     - GBM drawdown percentile bands
  POST /simulate     - Compound growth wealth paths
  POST /fire         - Two-phase FIRE simulation
  POST /suggestions  - Contribution target solver
  POST /mortgage     - Amortization schedule

Example:
  go run ./cmd/finsim api
  go run ./cmd/finsim api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Create handlers
	simHandler := handlers.NewSimulationHandler(cfg.Simulation, log)
	mortgageHandler := handlers.NewMortgageHandler(log)

	// 4. Create router and server
	router := api.NewRouter(simHandler, mortgageHandler, cfg, log)
	server := api.New(cfg, log, router)

	// 5. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /drawdown")
	fmt.Println("  POST /simulate")
	fmt.Println("  POST /fire")
	fmt.Println("  POST /suggestions")
	fmt.Println("  POST /mortgage")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

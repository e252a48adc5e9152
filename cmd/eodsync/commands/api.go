package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantline/eodsync/internal/api"
	"github.com/quantline/eodsync/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the report API server",
	Long: `Starts the HTTP API that serves import run reports.

Endpoints:
  GET  /health               - Health check
  GET  /api/runs/latest      - Latest import run report
  GET  /api/runs/{id}        - Import run report by ID

Example:
  go run ./cmd/eodsync api
  go run ./cmd/eodsync api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== eodsync API Server ===")

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	// Override port if flag is set
	if apiPort != "" {
		p.cfg.Port = apiPort
	}

	p.log.WithFields(map[string]interface{}{
		"port": p.cfg.Port,
		"env":  p.cfg.Env,
	}).Info("Initializing API server")

	runHandler := handlers.NewRunHandler(p.runs, p.log)
	router := api.NewRouter(runHandler, p.log)
	server := api.New(p.cfg, p.log, router)

	go func() {
		if err := server.Start(); err != nil {
			p.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", p.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/runs/latest")
	fmt.Println("  GET  /api/runs/{id}")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	p.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	p.log.Info("Server stopped")
	return nil
}

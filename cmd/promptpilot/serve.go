package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	httpadapter "github.com/promptpilot/promptpilot/internal/adapters/http"
	"github.com/promptpilot/promptpilot/internal/adapters/id"
	"github.com/promptpilot/promptpilot/internal/adapters/postgres"
	"github.com/promptpilot/promptpilot/internal/cache"
	"github.com/promptpilot/promptpilot/internal/enhancer"
	"github.com/promptpilot/promptpilot/internal/llm"
	"github.com/promptpilot/promptpilot/internal/ports"
	"github.com/promptpilot/promptpilot/internal/scoring"
	"github.com/promptpilot/promptpilot/internal/techniques"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the PromptPilot HTTP API server.

The server provides REST endpoints for prompt enhancement, the
technique catalog, saved prompts and usage analytics.

Optional configuration:
  - PostgreSQL for saved prompts and analytics (PROMPTPILOT_POSTGRES_URL)
  - External LLM refiner (PROMPTPILOT_LLM_URL, PROMPTPILOT_LLM_ENABLED)

Without PostgreSQL the server runs stateless enhancement only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// runServer initializes and starts the HTTP API server
func runServer(ctx context.Context) error {
	log.Println("Starting PromptPilot API server...")
	log.Printf("  HTTP: http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	if cfg.LLM.Enabled {
		log.Printf("  LLM:  %s", cfg.LLM.URL)
	} else {
		log.Println("  LLM:  disabled, using local composer only")
	}
	log.Println()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize database connection pool (optional)
	var promptRepo ports.PromptRepository
	var analyticsRepo ports.AnalyticsRepository
	var usageMetrics ports.UsageMetricsProvider
	var txManager ports.TransactionManager
	var pool *pgxpool.Pool
	if cfg.Database.PostgresURL != "" {
		log.Println("Connecting to PostgreSQL...")
		var err error
		pool, err = postgres.Connect(ctx, cfg.Database.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()
		log.Println("Database connection established")

		prompts := postgres.NewPromptRepository(pool)
		promptRepo = prompts
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
		usageMetrics = postgres.NewMetricsProvider(prompts)
		txManager = postgres.NewTransactionManager(pool)
	} else {
		log.Println("PostgreSQL not configured, saved prompts and analytics disabled")
	}

	idGen := id.New()

	resultCache := cache.New(
		cache.WithTTL(cfg.CacheTTL()),
		cache.WithMaxEntries(cfg.Cache.MaxEntries),
		cache.WithSweepInterval(cfg.CacheSweepInterval()),
	)
	resultCache.Start()
	defer resultCache.Stop()

	var refiner ports.Refiner
	if cfg.LLM.Enabled && llmClient != nil {
		refiner = llm.NewRefiner(llmClient, cfg.RefineTimeout())
		log.Println("LLM refiner initialized")
	}

	service := enhancer.NewService(
		techniques.NewComposer(),
		resultCache,
		refiner,
		promptRepo,
		analyticsRepo,
		txManager,
		idGen,
	)

	scorer := scoring.NewScorer(scoring.DefaultConfig())

	server := httpadapter.NewServer(
		cfg,
		service,
		scorer,
		resultCache,
		promptRepo,
		analyticsRepo,
		usageMetrics,
		txManager,
		idGen,
		pool,
		llmClient,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Println("Server stopped")
		return nil
	}
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blacklandcg/scoutiq/internal/analysis"
	"github.com/blacklandcg/scoutiq/internal/api"
	"github.com/blacklandcg/scoutiq/internal/api/handlers"
	"github.com/blacklandcg/scoutiq/internal/audit"
	"github.com/blacklandcg/scoutiq/internal/datalinks"
	"github.com/blacklandcg/scoutiq/internal/external/scoutgpt"
	"github.com/blacklandcg/scoutiq/internal/property"
	"github.com/blacklandcg/scoutiq/internal/scheduler"
	"github.com/blacklandcg/scoutiq/internal/scheduler/jobs"
	"github.com/blacklandcg/scoutiq/internal/scoring"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/config"
	"github.com/blacklandcg/scoutiq/pkg/database"
	"github.com/blacklandcg/scoutiq/pkg/httputil"
	"github.com/blacklandcg/scoutiq/pkg/logger"
	"github.com/blacklandcg/scoutiq/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command:
- Serves the property query and analysis endpoints
- Streams batch results over websocket
- Brokers ScoutGPT classification calls with audit logging
- Runs the background retention and sweep jobs

Endpoints:
  GET  /health                  - Health check
  GET  /status                  - Database / redis / data-links status
  POST /api/query               - Filtered property query with signals
  POST /api/analyze             - Single property analysis
  POST /api/analyze/batch       - Batch analysis with portfolio summary
  GET  /api/analyze/stream      - Websocket streaming analysis
  POST /api/upload-properties   - CSV upload
  POST /api/ai/batch            - ScoutGPT classification
  GET  /api/ai-logs             - Interaction audit log
  GET  /api/ai-statistics       - Interaction statistics

Example:
  go run ./cmd/scout api
  go run ./cmd/scout api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== ScoutIQ API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to redis (no-op client when disabled)
	rdb, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	// 5. Load data links
	links, err := datalinks.Load(cfg.DataLinksPath)
	if err != nil {
		return fmt.Errorf("load data links: %w", err)
	}
	if cfg.ScoutGPT.Endpoint != "" {
		links.OverrideEndpoint(datalinks.DefaultEndpointName, cfg.ScoutGPT.Endpoint)
	}

	log.WithFields(map[string]interface{}{
		"endpoints": len(links.Endpoints),
		"contracts": len(links.Contracts),
		"hash":      links.Hash(),
	}).Info("Data links loaded")

	// 6. Create repositories
	propertyRepo := property.NewRepository(db.Pool)
	auditRepo := audit.NewRepository(db.Pool)

	// 7. Create the analysis pipeline
	deriver := signals.NewDeriver(log, signals.Options{
		BandPolicy:  signals.BandPolicy(cfg.Analysis.BandPolicy),
		FloodPolicy: signals.FloodPolicy(cfg.Analysis.FloodPolicy),
	})
	scorer := scoring.NewScorer(cfg.Analysis.ClampScore)
	analyzer := analysis.NewAnalyzer(deriver, scorer, log)
	store := analysis.NewResultStore(redis.NewCache(rdb, "scoutiq"), cfg.Analysis.ResultStoreTTL, log)

	// 8. Create the oracle client
	oracleHTTP := httputil.NewWithTimeout(cfg, log, cfg.ScoutGPT.Timeout)
	if rdb.Enabled() {
		oracleHTTP.WithRateLimiter(redis.NewRateLimiter(rdb, "scoutiq"), redis.ScoutGPTRateLimit)
	}
	oracle := scoutgpt.NewClient(oracleHTTP, links, auditRepo, cfg.ScoutGPT.RateLimit, cfg.ScoutGPT.RateBurst, log)

	// 9. Create handlers
	analysisHandler := handlers.NewAnalysisHandler(propertyRepo, deriver, analyzer, store, cfg.Analysis.BatchLimit, log)
	oracleHandler := handlers.NewOracleHandler(propertyRepo, deriver, oracle, auditRepo, log)
	statusHandler := handlers.NewStatusHandler(db, rdb, links, log)

	// 10. Create router and server
	router := api.NewRouter(analysisHandler, oracleHandler, statusHandler, log)
	server := api.New(cfg, log, router)

	// 11. Start background jobs
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(log)
		retention := jobs.NewLogRetentionJob(auditRepo, cfg.Scheduler.RetentionDays, cfg.Scheduler.RetentionCron, log)
		if err := sched.AddJob(retention); err != nil {
			return fmt.Errorf("schedule retention job: %w", err)
		}
		sweep := jobs.NewResultSweepJob(store, cfg.Scheduler.ResultSweepCron, log)
		if err := sched.AddJob(sweep); err != nil {
			return fmt.Errorf("schedule sweep job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 12. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blacklandcg/scoutiq/internal/datalinks"
	"github.com/blacklandcg/scoutiq/pkg/config"
	"github.com/blacklandcg/scoutiq/pkg/database"
	"github.com/blacklandcg/scoutiq/pkg/logger"
	"github.com/blacklandcg/scoutiq/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check database, redis, and data-links health",
	Long: `Connects to the configured backing services and prints their status.

Checked:
- PostgreSQL connectivity, pool stats, and scoutiq table count
- Redis connectivity (or disabled)
- Data-links file validity and content hash

Example:
  go run ./cmd/scout status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== ScoutIQ Status ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Database
	fmt.Println("\n📦 Database")
	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("  ❌ connection failed: %v\n", err)
	} else {
		defer db.Close()
		health, err := db.HealthCheck(ctx)
		if err != nil {
			fmt.Printf("  ❌ ping failed: %v\n", err)
		} else {
			fmt.Printf("  ✅ healthy (%.1fms)\n", float64(health.ResponseTime.Microseconds())/1000)
			fmt.Printf("  Pool: %d/%d connections (%d idle)\n",
				health.Stats.TotalConns, health.Stats.MaxConns, health.Stats.IdleConns)
			if tables, err := db.TableCount(ctx); err == nil {
				fmt.Printf("  Tables: %d\n", tables)
			}
		}
	}

	// Redis
	fmt.Println("\n🔑 Redis")
	if !cfg.Redis.Enabled {
		fmt.Println("  ⚪ disabled")
	} else {
		rdb, err := redis.New(cfg)
		if err != nil {
			fmt.Printf("  ❌ connection failed: %v\n", err)
		} else {
			defer rdb.Close()
			fmt.Printf("  ✅ connected (%s:%s)\n", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Data links
	fmt.Println("\n🔗 Data links")
	links, err := datalinks.Load(cfg.DataLinksPath)
	if err != nil {
		fmt.Printf("  ❌ load failed: %v\n", err)
	} else {
		source := cfg.DataLinksPath
		if source == "" {
			source = "(built-in defaults)"
		}
		fmt.Printf("  ✅ %s\n", source)
		fmt.Printf("  Endpoints: %d, Datasets: %d, Contracts: %d\n",
			len(links.Endpoints), len(links.Datasets), len(links.Contracts))
		fmt.Printf("  Hash: %s\n", links.Hash())
	}

	log.Debug("status check complete")
	fmt.Println()
	return nil
}

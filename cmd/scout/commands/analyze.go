package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blacklandcg/scoutiq/internal/analysis"
	"github.com/blacklandcg/scoutiq/internal/property"
	"github.com/blacklandcg/scoutiq/internal/scoring"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/config"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a CSV of properties offline",
	Long: `Runs the full signal derivation and scoring pipeline over a CSV
file without a database or server.

The CSV is expected to carry ATTOM-style assessor columns (attom_id,
estimated_value, year_built, party_owner1_name_full, flood_zone, ...).
Missing columns degrade gracefully to Unknown signals.

Example:
  go run ./cmd/scout analyze --file properties.csv
  go run ./cmd/scout analyze --file properties.csv --limit 10
  go run ./cmd/scout analyze --file properties.csv --format json`,
	RunE: runAnalyze,
}

var (
	analyzeFile   string
	analyzeLimit  int
	analyzeFormat string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "CSV file of properties (required)")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0, "analyze at most N records (0 = all)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format (table|json)")

	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Println("=== ScoutIQ Offline Analysis ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	file, err := os.Open(analyzeFile)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	records, err := property.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	if analyzeLimit > 0 && len(records) > analyzeLimit {
		records = records[:analyzeLimit]
	}

	fmt.Printf("Loaded %d properties from %s\n\n", len(records), analyzeFile)

	deriver := signals.NewDeriver(log, signals.Options{
		BandPolicy:  signals.BandPolicy(cfg.Analysis.BandPolicy),
		FloodPolicy: signals.FloodPolicy(cfg.Analysis.FloodPolicy),
	})
	analyzer := analysis.NewAnalyzer(deriver, scoring.NewScorer(cfg.Analysis.ClampScore), log)

	start := time.Now()
	summary := analyzer.EnrichAndAnalyze(records)

	if analyzeFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"batch":   summary,
			"results": summary.Results,
		})
	}

	fmt.Println("───────────────────────────────────────────────────────────")
	for i, result := range summary.Results {
		fmt.Printf("%-3d %-14s score %4d  %-5s  risk %-6s  conf %.2f\n",
			i+1, records[i].ID(), result.InvestmentScore,
			result.Classification, result.RiskLevel, result.Confidence)
	}
	fmt.Println("───────────────────────────────────────────────────────────")

	fmt.Printf("\nPortfolio: %s (confidence %.2f)\n", summary.Classification, summary.Confidence)
	if summary.Breakdown != nil {
		fmt.Printf("Breakdown: %d buy / %d hold / %d watch\n",
			summary.Breakdown.BuyOpportunities,
			summary.Breakdown.HoldCandidates,
			summary.Breakdown.WatchList)
	}
	fmt.Printf("\n%s\n", summary.Summary)
	for _, insight := range summary.Insights {
		fmt.Printf("  %s\n", insight)
	}

	fmt.Printf("\n✅ Analyzed %d properties in %.2fs\n", summary.PropertiesAnalyzed, time.Since(start).Seconds())
	return nil
}

package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "ScoutIQ - property intelligence and investment scoring",
	Long: `ScoutIQ Unified CLI

Property data engine over ATTOM-style assessor, AVM, and recorder tables.
Derives investment signals, scores properties, and brokers calls to the
ScoutGPT classification service.

Usage:
  go run ./cmd/scout [command]

Examples:
  go run ./cmd/scout api
  go run ./cmd/scout analyze --file properties.csv
  go run ./cmd/scout status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

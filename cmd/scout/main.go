package main

import (
	"os"

	"github.com/blacklandcg/scoutiq/cmd/scout/commands"
)

// main is the entry point for the ScoutIQ CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

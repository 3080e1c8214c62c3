package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finsim",
	Short: "finsim - Monte Carlo portfolio simulation backend",
	Long: `finsim Unified CLI

Stateless financial simulation backend: GBM drawdown bands, compound growth,
FIRE planning and mortgage amortization behind one JSON API.

Usage:
  go run ./cmd/finsim [command]

Examples:
  go run ./cmd/finsim api
  go run ./cmd/finsim drawdown --n-sims 2000 --seed 42
  go run ./cmd/finsim compound --target 1000000`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

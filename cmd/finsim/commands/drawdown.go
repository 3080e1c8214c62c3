package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/finsim/backend/internal/montecarlo"
)

// drawdownCmd runs one drawdown simulation from the command line
var drawdownCmd = &cobra.Command{
	Use:   "drawdown",
	Short: "Run a drawdown simulation and print the result as JSON",
	Long: `Run one GBM drawdown simulation with the given market assumptions
and print the percentile bands to stdout.

Example:
  go run ./cmd/finsim drawdown --n-sims 2000 --volatility 0.18 --seed 42
  go run ./cmd/finsim drawdown --years 10 --summary-only`,
	RunE: runDrawdown,
}

var (
	ddYears          float64
	ddFrequency      int
	ddNumSims        int
	ddExpectedReturn float64
	ddVolatility     float64
	ddExpenseRatio   float64
	ddDecimals       int
	ddSeed           int64
	ddSummaryOnly    bool
)

func init() {
	rootCmd.AddCommand(drawdownCmd)

	defaults := montecarlo.DefaultDrawdownParams()
	drawdownCmd.Flags().Float64Var(&ddYears, "years", defaults.Years, "horizon in years")
	drawdownCmd.Flags().IntVar(&ddFrequency, "frequency", defaults.Frequency, "periods per year")
	drawdownCmd.Flags().IntVar(&ddNumSims, "n-sims", defaults.NumSims, "number of simulated paths")
	drawdownCmd.Flags().Float64Var(&ddExpectedReturn, "expected-return", defaults.ExpectedReturn, "annual drift")
	drawdownCmd.Flags().Float64Var(&ddVolatility, "volatility", defaults.Volatility, "annual standard deviation")
	drawdownCmd.Flags().Float64Var(&ddExpenseRatio, "expense-ratio", defaults.ExpenseRatio, "annual fee drag")
	drawdownCmd.Flags().IntVar(&ddDecimals, "decimals", defaults.Decimals, "rounding places")
	drawdownCmd.Flags().Int64Var(&ddSeed, "seed", 0, "random seed (0 = time-based)")
	drawdownCmd.Flags().BoolVar(&ddSummaryOnly, "summary-only", false, "print only the summary block")
}

func runDrawdown(cmd *cobra.Command, args []string) error {
	params := montecarlo.DefaultDrawdownParams()
	params.Years = ddYears
	params.Frequency = ddFrequency
	params.NumSims = ddNumSims
	params.ExpectedReturn = ddExpectedReturn
	params.Volatility = ddVolatility
	params.ExpenseRatio = ddExpenseRatio
	params.Decimals = ddDecimals
	params.Seed = ddSeed

	// CLI runs are uncapped; the caps protect the HTTP boundary
	if err := params.Validate(0, 0); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	sim := montecarlo.NewDrawdownSimulator(montecarlo.NewBoxMullerSource(params.Seed))
	result := sim.Run(params)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if ddSummaryOnly {
		return enc.Encode(result.Summary)
	}
	return enc.Encode(result)
}

package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quant",
	Short: "A bar-driven strategy backtesting and research engine",
	Long: `Quant is a strategy execution and risk-managed position engine.

It replays historical bar series through configurable trading rules:
  - EMA crossover, MACD divergence, Vegas channel, mean reversion
  - Pair trading with a beta-hedged return spread
  - Volatility-scaled position sizing with ATR trailing stops
  - Drawdown circuit breaker and full performance analytics
  - Trade and equity journaling to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	// .env is optional; missing files are fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/quant/analytics"
	"github.com/rustyeddy/quant/config"
	"github.com/rustyeddy/quant/engine"
	"github.com/rustyeddy/quant/feed"
	"github.com/rustyeddy/quant/internal/id"
	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a single-instrument strategy over a bar CSV",
	Long: `Backtest replays a daily bar CSV (time,open,high,low,close,volume)
through one of the built-in strategies.

Example:
  quant backtest --bars data/voo.csv --strategy ema-cross --fast 10 --slow 30`,
	RunE: runBacktest,
}

var (
	btBars       string
	btConfig     string
	btStrategy   string
	btInstrument string
	btCapital    float64
	btRiskPct    float64
	btFast       int
	btSlow       int
	btWindow     int
	btEntry      float64
	btExit       float64
	btLookback   int
	btTrend      int
	btMaxDD      float64
	btNoLeverage bool
	btShort      bool
	btDBPath     string
	btTradesCSV  string
	btEquityCSV  string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btBars, "bars", "b", "", "path to bar CSV (time,open,high,low,close,volume) (required)")
	backtestCmd.Flags().StringVar(&btConfig, "config", "", "YAML/JSON run configuration (flags override strategy name and instrument)")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "ema-cross", "strategy name (ema-cross, macd-divergence, vegas, mean-reversion)")
	backtestCmd.Flags().StringVarP(&btInstrument, "instrument", "i", "VOO", "instrument symbol")
	backtestCmd.Flags().Float64VarP(&btCapital, "capital", "c", 100_000, "initial capital")
	backtestCmd.Flags().Float64Var(&btRiskPct, "risk", 0.02, "risk percent per trade (0.02 = 2%)")

	backtestCmd.Flags().IntVar(&btFast, "fast", 0, "fast period (strategy default if 0)")
	backtestCmd.Flags().IntVar(&btSlow, "slow", 0, "slow period (strategy default if 0)")
	backtestCmd.Flags().IntVar(&btWindow, "window", 0, "z-score window (mean-reversion)")
	backtestCmd.Flags().Float64Var(&btEntry, "entry", 0, "z-score entry threshold (mean-reversion)")
	backtestCmd.Flags().Float64Var(&btExit, "exit", 0, "z-score exit threshold (mean-reversion)")
	backtestCmd.Flags().IntVar(&btLookback, "lookback", 0, "divergence lookback (macd-divergence)")
	backtestCmd.Flags().IntVar(&btTrend, "trend", 0, "trend filter period (0 = strategy default)")
	backtestCmd.Flags().Float64Var(&btMaxDD, "max-dd", 0, "max drawdown circuit breaker (0.05 = 5%, 0 = strategy default)")
	backtestCmd.Flags().BoolVar(&btNoLeverage, "no-leverage", false, "reject opens whose notional exceeds cash")
	backtestCmd.Flags().BoolVar(&btShort, "allow-short", false, "allow short entries")

	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "SQLite journal path (optional)")
	backtestCmd.Flags().StringVar(&btTradesCSV, "trades-csv", "", "CSV trade journal path (optional)")
	backtestCmd.Flags().StringVar(&btEquityCSV, "equity-csv", "", "CSV equity journal path (optional)")

	backtestCmd.MarkFlagRequired("bars")
}

// applyConfig copies file settings into the flag variables. When
// --config is given the file is the source of truth; flags passed
// alongside it are ignored except --bars.
func applyConfig(c *config.Config) {
	btStrategy = c.Strategy.Name
	btInstrument = c.Strategy.Instrument
	btCapital = c.Account.InitialCapital
	btNoLeverage = c.Account.NoLeverage
	btRiskPct = c.Risk.RiskPct
	btMaxDD = c.Risk.MaxDrawdownPct
	btFast = c.Strategy.Fast
	btSlow = c.Strategy.Slow
	btWindow = c.Strategy.Window
	btEntry = c.Strategy.Entry
	btExit = c.Strategy.Exit
	btLookback = c.Strategy.Lookback
	btTrend = c.Strategy.TrendPeriod
	btShort = c.Strategy.AllowShort
	switch c.Journal.Type {
	case "sqlite":
		btDBPath = c.Journal.DBPath
	case "csv":
		btTradesCSV = c.Journal.TradesFile
		btEquityCSV = c.Journal.EquityFile
	}
}

func runBacktest(cmd *cobra.Command, args []string) error {
	var fileCfg *config.Config
	if btConfig != "" {
		var err error
		fileCfg, err = config.LoadFromFile(btConfig)
		if err != nil {
			return err
		}
		applyConfig(fileCfg)
	}

	series, err := feed.LoadCSV(btBars, btInstrument)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	cfg, err := strategies.ByName(btStrategy, strategies.Params{
		Instrument:     btInstrument,
		InitialCapital: btCapital,
		RiskPct:        btRiskPct,
		MaxDrawdownPct: btMaxDD,
		NoLeverage:     btNoLeverage,
		Fast:           btFast,
		Slow:           btSlow,
		Window:         btWindow,
		Entry:          btEntry,
		Exit:           btExit,
		Lookback:       btLookback,
		TrendPeriod:    btTrend,
		AllowShort:     btShort,
	})
	if err != nil {
		return err
	}
	if fileCfg != nil {
		cfg.Analytics = analytics.Config{
			RiskFreeRate:   fileCfg.Analytics.RiskFreeRate,
			PeriodsPerYear: fileCfg.Analytics.PeriodsPerYear,
		}
	}

	var sqlj *journal.SQLiteJournal
	switch {
	case btDBPath != "":
		sqlj, err = journal.NewSQLite(btDBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer sqlj.Close()
		cfg.Journal = sqlj
	case btTradesCSV != "" && btEquityCSV != "":
		csvj, err := journal.NewCSV(btTradesCSV, btEquityCSV)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer csvj.Close()
		cfg.Journal = csvj
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	res, err := eng.Run(series)
	if err != nil {
		return err
	}

	printResult(os.Stdout, btStrategy, res)

	if sqlj != nil {
		s := res.Summary
		return sqlj.RecordRun(journal.Run{
			RunID:            id.New(),
			Created:          time.Now().UTC(),
			Strategy:         btStrategy,
			Instrument:       btInstrument,
			Start:            res.Start,
			End:              res.End,
			InitialEquity:    s.InitialEquity,
			FinalEquity:      s.FinalEquity,
			CumulativeReturn: s.CumulativeReturn,
			AnnualizedReturn: s.AnnualizedReturn,
			MaxDrawdown:      s.MaxDrawdown,
			Sharpe:           s.Sharpe,
			Trades:           s.ClosedTrades,
			Wins:             s.Wins,
			Losses:           s.Losses,
			WinRate:          s.WinRate,
		})
	}
	return nil
}

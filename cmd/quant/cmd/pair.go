package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/quant/engine"
	"github.com/rustyeddy/quant/feed"
	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/market"
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Run a beta-hedged pair trade over two bar CSVs",
	Long: `Pair replays two bar CSVs as a market-neutral spread: the z-score of
the beta-hedged return spread drives entries and exits, with percentage
stop-loss and take-profit bands. The two series are aligned on their
common timestamps before the run.

Example:
  quant pair --bars1 data/aapl.csv --bars2 data/qqq.csv --beta 0.8`,
	RunE: runPair,
}

var (
	prBars1   string
	prBars2   string
	prInstr1  string
	prInstr2  string
	prCapital float64
	prWindow  int
	prEntry   float64
	prExit    float64
	prBeta    float64
	prAlloc   float64
	prStop    float64
	prTake    float64
	prMaxDD   float64
	prDBPath  string
)

func init() {
	rootCmd.AddCommand(pairCmd)

	pairCmd.Flags().StringVar(&prBars1, "bars1", "", "path to first leg bar CSV (required)")
	pairCmd.Flags().StringVar(&prBars2, "bars2", "", "path to second leg bar CSV (required)")
	pairCmd.Flags().StringVar(&prInstr1, "instrument1", "AAPL", "first leg symbol")
	pairCmd.Flags().StringVar(&prInstr2, "instrument2", "QQQ", "second leg symbol")
	pairCmd.Flags().Float64VarP(&prCapital, "capital", "c", 100_000, "initial capital")
	pairCmd.Flags().IntVar(&prWindow, "window", 20, "z-score window")
	pairCmd.Flags().Float64Var(&prEntry, "entry", 2.0, "z-score entry threshold")
	pairCmd.Flags().Float64Var(&prExit, "exit", 0.5, "z-score exit threshold")
	pairCmd.Flags().Float64Var(&prBeta, "beta", 0.8, "hedge ratio between legs")
	pairCmd.Flags().Float64Var(&prAlloc, "alloc", 0.4, "equity fraction per entry")
	pairCmd.Flags().Float64Var(&prStop, "stop", 0.03, "stop-loss band on spread return")
	pairCmd.Flags().Float64Var(&prTake, "take", 0.05, "take-profit band on spread return")
	pairCmd.Flags().Float64Var(&prMaxDD, "max-dd", 0, "max drawdown circuit breaker (0 disables)")
	pairCmd.Flags().StringVarP(&prDBPath, "db", "d", "", "SQLite journal path (optional)")

	pairCmd.MarkFlagRequired("bars1")
	pairCmd.MarkFlagRequired("bars2")
}

func runPair(cmd *cobra.Command, args []string) error {
	s1, err := feed.LoadCSV(prBars1, prInstr1)
	if err != nil {
		return fmt.Errorf("load bars1: %w", err)
	}
	s2, err := feed.LoadCSV(prBars2, prInstr2)
	if err != nil {
		return fmt.Errorf("load bars2: %w", err)
	}

	s1, s2 = market.AlignPair(s1, s2)
	if s1.Len() == 0 {
		return fmt.Errorf("series share no common timestamps")
	}

	cfg := engine.PairConfig{
		Window:         prWindow,
		Entry:          prEntry,
		Exit:           prExit,
		Beta:           prBeta,
		AllocPct:       prAlloc,
		StopLossPct:    prStop,
		TakeProfitPct:  prTake,
		MaxDrawdownPct: prMaxDD,
		InitialCapital: prCapital,
	}

	if prDBPath != "" {
		j, err := journal.NewSQLite(prDBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		cfg.Journal = j
	}

	eng, err := engine.NewPair(cfg)
	if err != nil {
		return err
	}

	res, err := eng.Run(s1, s2)
	if err != nil {
		return err
	}

	printResult(os.Stdout, fmt.Sprintf("pair %s/%s", prInstr1, prInstr2), res)
	return nil
}

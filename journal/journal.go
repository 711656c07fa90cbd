// Package journal persists trade records, equity snapshots, and run
// summaries produced by backtest runs.
package journal

import (
	"time"

	"github.com/rustyeddy/quant/analytics"
	"github.com/rustyeddy/quant/ledger"
)

// Journal receives fills and equity marks as a run produces them.
type Journal interface {
	RecordTrade(ledger.TradeRecord) error
	RecordEquity(analytics.EquityPoint) error
	Close() error
}

// Run is the persisted summary of one backtest run.
type Run struct {
	RunID      string
	Created    time.Time
	Strategy   string
	Instrument string

	Start time.Time
	End   time.Time

	InitialEquity    float64
	FinalEquity      float64
	CumulativeReturn float64
	AnnualizedReturn float64
	MaxDrawdown      float64
	Sharpe           float64
	Trades           int
	Wins             int
	Losses           int
	WinRate          float64
}

// Nop discards everything. Engines use it when no journaling is
// configured.
type Nop struct{}

func (Nop) RecordTrade(ledger.TradeRecord) error { return nil }

func (Nop) RecordEquity(analytics.EquityPoint) error { return nil }

func (Nop) Close() error { return nil }

package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/quant/ledger"
)

var t0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func curve(equities ...float64) []EquityPoint {
	pts := make([]EquityPoint, len(equities))
	for i, e := range equities {
		pts[i] = EquityPoint{Time: t0.AddDate(0, 0, i), Equity: e}
	}
	return pts
}

func TestComputeEmptyCurve(t *testing.T) {
	t.Parallel()

	s := Compute(DefaultConfig(), nil, nil)
	assert.Zero(t, s.InitialEquity)
	assert.Zero(t, s.CumulativeReturn)
	assert.False(t, s.SharpeDefined)
}

func TestCumulativeAndAnnualizedReturn(t *testing.T) {
	t.Parallel()

	// Exactly one year: annualized equals cumulative.
	pts := []EquityPoint{
		{Time: t0, Equity: 100_000},
		{Time: t0.AddDate(0, 0, 365), Equity: 110_000},
	}
	s := Compute(DefaultConfig(), pts, nil)

	assert.InDelta(t, 0.10, s.CumulativeReturn, 1e-9)
	assert.InDelta(t, 0.10, s.AnnualizedReturn, 1e-9)
	assert.InDelta(t, 365.0, s.Days, 1e-9)
	assert.False(t, s.SharpeDefined, "one return sample has no deviation")
}

func TestAnnualizedCompounds(t *testing.T) {
	t.Parallel()

	// Half a year at +10% compounds to (1.1)^2 - 1.
	s := Compute(DefaultConfig(), []EquityPoint{
		{Time: t0, Equity: 100_000},
		{Time: t0.Add(365 * 12 * time.Hour), Equity: 110_000},
	}, nil)
	assert.InDelta(t, math.Pow(1.10, 2)-1, s.AnnualizedReturn, 1e-9)
}

func TestMaxDrawdownDeepestEpisode(t *testing.T) {
	t.Parallel()

	// Peak 120 decays over three bars to 90: -25%, 3 bars from peak to
	// trough. The later 130->117 dip is shallower.
	s := Compute(DefaultConfig(), curve(100, 120, 110, 105, 90, 130, 117), nil)

	assert.InDelta(t, -0.25, s.MaxDrawdown, 1e-9)
	assert.Equal(t, 3, s.DrawdownBars)
}

func TestMaxDrawdownMonotoneRise(t *testing.T) {
	t.Parallel()

	s := Compute(DefaultConfig(), curve(100, 105, 110, 120), nil)
	assert.Zero(t, s.MaxDrawdown)
	assert.Zero(t, s.DrawdownBars)
}

func TestSharpeUndefinedOnFlatEquity(t *testing.T) {
	t.Parallel()

	s := Compute(DefaultConfig(), curve(100_000, 100_000, 100_000), nil)
	assert.False(t, s.SharpeDefined)
	assert.Zero(t, s.Sharpe)
}

func TestSharpeFormula(t *testing.T) {
	t.Parallel()

	// Returns +10%, -5%: sample std sqrt(0.01125).
	s := Compute(DefaultConfig(), curve(100, 110, 104.5), nil)
	require.True(t, s.SharpeDefined)

	sd := math.Sqrt(0.01125)
	annualized := math.Pow(1.045, 365.0/2) - 1
	want := (annualized - 0.03) / (sd * math.Sqrt(252))
	assert.InDelta(t, want, s.Sharpe, 1e-6)
}

func TestTradeStats(t *testing.T) {
	t.Parallel()

	trades := []ledger.TradeRecord{
		{Action: ledger.Open},
		{Action: ledger.Close, RealizedPL: 500},
		{Action: ledger.Open},
		{Action: ledger.Close, RealizedPL: -200},
		{Action: ledger.Open},
		{Action: ledger.Close, RealizedPL: 0}, // breakeven counts as a loss
	}

	pts := []EquityPoint{
		{Time: t0, Equity: 100_000},
		{Time: t0.AddDate(0, 0, 30), Equity: 100_300},
	}
	s := Compute(DefaultConfig(), pts, trades)

	assert.Equal(t, 3, s.ClosedTrades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.InDelta(t, 1.0/3.0, s.WinRate, 1e-9)
	assert.InDelta(t, 3.0, s.TurnoverPerMonth, 1e-9, "3 closes in 30 days")
}

func TestSubDayRunUsesCumulative(t *testing.T) {
	t.Parallel()

	pts := []EquityPoint{
		{Time: t0, Equity: 100},
		{Time: t0.Add(6 * time.Hour), Equity: 102},
	}
	s := Compute(DefaultConfig(), pts, nil)
	assert.InDelta(t, 0.02, s.AnnualizedReturn, 1e-9,
		"no compounding extrapolation below one day")
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 0.03, cfg.RiskFreeRate)
	assert.Equal(t, 252.0, cfg.PeriodsPerYear)
}

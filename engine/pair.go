package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/quant/analytics"
	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/ledger"
	"github.com/rustyeddy/quant/market"
)

// PairConfig parameterizes a market-neutral spread run over two
// aligned series. The spread is the difference of one-bar returns,
// hedged by beta; entries and exits key off its z-score.
type PairConfig struct {
	Window int     // z-score window, e.g. 20
	Entry  float64 // entry threshold, e.g. 2.0
	Exit   float64 // exit threshold, e.g. 0.5
	Beta   float64 // hedge ratio between the two legs

	// AllocPct is the fraction of equity committed to the first leg on
	// entry; the second leg is scaled by beta.
	AllocPct float64

	// StopLossPct and TakeProfitPct are the percentage bands on the
	// hedged spread return of the open position.
	StopLossPct   float64
	TakeProfitPct float64

	MaxDrawdownPct float64

	InitialCapital float64
	Analytics      analytics.Config
	Journal        journal.Journal
}

func DefaultPairConfig() PairConfig {
	return PairConfig{
		Window:         20,
		Entry:          2.0,
		Exit:           0.5,
		Beta:           0.8,
		AllocPct:       0.4,
		StopLossPct:    0.03,
		TakeProfitPct:  0.05,
		InitialCapital: 100_000,
		Analytics:      analytics.DefaultConfig(),
	}
}

// PairEngine executes spread runs. Both legs always fill in the same
// bar: the leg count is 0 or 2, never 1.
type PairEngine struct {
	cfg PairConfig
	jnl journal.Journal
}

func NewPair(cfg PairConfig) (*PairEngine, error) {
	if cfg.Window < 2 {
		return nil, fmt.Errorf("engine: pair window must be at least 2, got %d", cfg.Window)
	}
	if cfg.Entry <= 0 || cfg.Exit < 0 || cfg.Exit >= cfg.Entry {
		return nil, fmt.Errorf("engine: pair thresholds need 0 <= exit < entry, got entry=%v exit=%v", cfg.Entry, cfg.Exit)
	}
	if cfg.Beta <= 0 {
		return nil, fmt.Errorf("engine: hedge ratio must be positive, got %v", cfg.Beta)
	}
	if cfg.AllocPct <= 0 || cfg.AllocPct > 1 {
		return nil, fmt.Errorf("engine: alloc percentage must be in (0,1], got %v", cfg.AllocPct)
	}
	if cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("engine: initial capital must be positive, got %v", cfg.InitialCapital)
	}
	if cfg.Analytics.PeriodsPerYear == 0 {
		cfg.Analytics = analytics.DefaultConfig()
	}
	jnl := cfg.Journal
	if jnl == nil {
		jnl = journal.Nop{}
	}
	return &PairEngine{cfg: cfg, jnl: jnl}, nil
}

// Run executes the spread loop over two pre-aligned series. Alignment
// is the caller's precondition (market.AlignPair); mismatched
// timestamps are a contract violation.
func (e *PairEngine) Run(a, b market.Series) (Result, error) {
	cfg := e.cfg

	if a.Len() != b.Len() {
		return Result{}, fmt.Errorf("engine: pair series not aligned: %d vs %d bars (use market.AlignPair)", a.Len(), b.Len())
	}
	if a.Len() == 0 {
		return Result{}, fmt.Errorf("engine: empty pair series")
	}

	led := ledger.New(cfg.InitialCapital)
	z := indicators.NewZScore(cfg.Window)

	res := Result{Start: a.Start(), End: a.End()}
	peak := cfg.InitialCapital
	halted := false

	// Entry closes of the open spread, for the percentage bands.
	var entryA, entryB float64
	spreadDir := 0 // +1 long spread (long a, short b), -1 short spread

	var prevTime time.Time
	var prevA, prevB float64

	for i := range a.Bars {
		barA, barB := a.Bars[i], b.Bars[i]

		if err := barA.Validate(); err != nil {
			return Result{}, fmt.Errorf("engine: pair bar %d: %w", i, err)
		}
		if err := barB.Validate(); err != nil {
			return Result{}, fmt.Errorf("engine: pair bar %d: %w", i, err)
		}
		if !barA.Time.Equal(barB.Time) {
			return Result{}, fmt.Errorf("engine: pair bar %d: %w: leg timestamps differ (%s vs %s)",
				i, market.ErrBadBar, barA.Time.Format(time.RFC3339), barB.Time.Format(time.RFC3339))
		}
		if i > 0 && !barA.Time.After(prevTime) {
			return Result{}, fmt.Errorf("engine: pair bar %d: %w: timestamp not increasing", i, market.ErrBadBar)
		}
		prevTime = barA.Time

		// Spread of one-bar returns, hedged by beta.
		if i > 0 {
			r1 := barA.Close/prevA - 1
			r2 := barB.Close/prevB - 1
			z.Push(r1 - cfg.Beta*r2)
		}
		prevA, prevB = barA.Close, barB.Close

		marks := map[string]float64{a.Instrument: barA.Close, b.Instrument: barB.Close}
		eq, err := led.Equity(marks)
		if err != nil {
			return Result{}, err
		}
		if eq > peak {
			peak = eq
		}

		if spreadDir != 0 {
			// Hedged return of the open spread since entry, signed by
			// direction.
			grossA := barA.Close/entryA - 1
			grossB := barB.Close/entryB - 1
			profitPct := float64(spreadDir) * (grossA - cfg.Beta*grossB)

			reason := ""
			switch {
			case cfg.MaxDrawdownPct > 0 && peak > 0 && (peak-eq)/peak > cfg.MaxDrawdownPct:
				reason = "DrawdownBreaker"
				halted = true
			case z.Ready() && math.Abs(z.Value()) < cfg.Exit:
				reason = "Reversion"
			case profitPct < -cfg.StopLossPct:
				reason = "StopLoss"
			case profitPct > cfg.TakeProfitPct:
				reason = "TakeProfit"
			}

			if reason != "" {
				rec, err := led.ClosePair(a.Instrument, b.Instrument, barA.Close, barB.Close, barA.Time, reason)
				if err != nil {
					return Result{}, err
				}
				if err := e.jnl.RecordTrade(rec); err != nil {
					return Result{}, err
				}
				spreadDir = 0
			}
		} else if !halted && z.Ready() {
			zv := z.Value()
			dir := 0
			switch {
			case zv < -cfg.Entry:
				dir = +1
			case zv > cfg.Entry:
				dir = -1
			}
			if dir != 0 {
				if err := e.openSpread(led, &res, eq, dir, a.Instrument, b.Instrument, barA, barB); err != nil {
					return Result{}, err
				}
				if _, open := led.Position(a.Instrument); open {
					spreadDir = dir
					entryA, entryB = barA.Close, barB.Close
				}
			}
		}

		eq, err = led.Equity(marks)
		if err != nil {
			return Result{}, err
		}
		pt := analytics.EquityPoint{Time: barA.Time, Equity: eq}
		res.EquityCurve = append(res.EquityCurve, pt)
		if err := e.jnl.RecordEquity(pt); err != nil {
			return Result{}, err
		}
	}

	res.Trades = led.Trades()
	res.Halted = halted
	res.Summary = analytics.Compute(cfg.Analytics, res.EquityCurve, res.Trades)
	return res, nil
}

// openSpread sizes both legs and opens them atomically. dir is the
// spread direction: +1 long leg A / short leg B, -1 the reverse.
func (e *PairEngine) openSpread(led *ledger.Ledger, res *Result, equity float64, dir int, instrA, instrB string, barA, barB market.Bar) error {
	cfg := e.cfg

	value := equity * cfg.AllocPct
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		res.Skipped = append(res.Skipped, SkippedSignal{
			Time:   barA.Time,
			Reason: "NO_EQUITY",
		})
		return nil
	}

	sideA, sideB := ledger.Long, ledger.Short
	if dir < 0 {
		sideA, sideB = ledger.Short, ledger.Long
	}

	legA := ledger.Leg{
		Instrument: instrA,
		Side:       sideA,
		Units:      value / barA.Close,
		Price:      barA.Close,
	}
	legB := ledger.Leg{
		Instrument: instrB,
		Side:       sideB,
		Units:      value * cfg.Beta / barB.Close,
		Price:      barB.Close,
	}

	rec, err := led.OpenPair(legA, legB, barA.Time, "Spread")
	if err != nil {
		return err
	}
	return e.jnl.RecordTrade(rec)
}

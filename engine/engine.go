// Package engine drives a strategy bar by bar: it feeds indicators,
// collects the evaluator's intent, sizes and protects the position,
// applies fills to the ledger, and produces the equity curve, trade
// history, and performance summary for the run.
//
// A run is strictly sequential: bars are processed one at a time in
// timestamp order and no decision depends on a future bar. Independent
// runs share no mutable state and may execute in parallel.
package engine

import (
	"fmt"
	"time"

	"github.com/rustyeddy/quant/analytics"
	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/ledger"
	"github.com/rustyeddy/quant/market"
	"github.com/rustyeddy/quant/risk"
	"github.com/rustyeddy/quant/signal"
)

// Config parameterizes one strategy run. Strategies are data: a rule
// plus risk and reporting settings, not a subclass.
type Config struct {
	Instrument     string
	InitialCapital float64

	Rule      signal.Rule
	Risk      risk.Policy
	Analytics analytics.Config

	// Journal is optional; fills and equity marks are recorded as the
	// run produces them.
	Journal journal.Journal
}

// SkippedSignal reports an intent the sizing engine rejected. The run
// continues; these are events, not errors.
type SkippedSignal struct {
	Time   time.Time
	Signal signal.Signal
	Reason string
}

// Result is everything a run hands to reporting collaborators.
type Result struct {
	EquityCurve []analytics.EquityPoint
	Trades      []ledger.TradeRecord
	Skipped     []SkippedSignal
	Summary     analytics.Summary

	// Halted reports that the drawdown circuit breaker tripped and
	// trading stopped for the remainder of the run.
	Halted bool

	Start time.Time
	End   time.Time
}

// Engine executes single-instrument runs. Run resets all state, so the
// same engine replayed over the same series yields an identical
// result.
type Engine struct {
	cfg Config
	jnl journal.Journal
}

func New(cfg Config) (*Engine, error) {
	if cfg.Rule == nil {
		return nil, fmt.Errorf("engine: config needs a signal rule")
	}
	if cfg.Instrument == "" {
		return nil, fmt.Errorf("engine: config needs an instrument")
	}
	if cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("engine: initial capital must be positive, got %v", cfg.InitialCapital)
	}
	if cfg.Risk.ATRMultiplier <= 0 && cfg.Risk.FixedStopPct <= 0 {
		return nil, fmt.Errorf("engine: risk policy needs an ATR multiplier or a fixed stop percentage")
	}
	if cfg.Analytics.PeriodsPerYear == 0 {
		cfg.Analytics = analytics.DefaultConfig()
	}
	jnl := cfg.Journal
	if jnl == nil {
		jnl = journal.Nop{}
	}
	return &Engine{cfg: cfg, jnl: jnl}, nil
}

// Run executes the bar loop over the series. A malformed bar aborts
// the run: silently skipping it would corrupt the no-lookahead
// guarantee.
func (e *Engine) Run(s market.Series) (Result, error) {
	cfg := e.cfg
	cfg.Rule.Reset()

	led := ledger.New(cfg.InitialCapital)
	atrPeriod := cfg.Risk.ATRPeriod
	if atrPeriod <= 0 {
		atrPeriod = 14
	}
	atr := indicators.NewATR(atrPeriod)

	res := Result{Start: s.Start(), End: s.End()}
	peak := cfg.InitialCapital
	halted := false

	var prevTime time.Time
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return Result{}, fmt.Errorf("engine: bar %d: %w", i, err)
		}
		if i > 0 && !b.Time.After(prevTime) {
			return Result{}, fmt.Errorf("engine: bar %d: %w: timestamp %s not after %s",
				i, market.ErrBadBar, b.Time.Format(time.RFC3339), prevTime.Format(time.RFC3339))
		}
		prevTime = b.Time

		atr.Update(b)

		marks := map[string]float64{cfg.Instrument: b.Close}
		eq, err := led.Equity(marks)
		if err != nil {
			return Result{}, err
		}
		if eq > peak {
			peak = eq
		}

		pos, open := led.Position(cfg.Instrument)
		dir := signal.Flat
		if open {
			if pos.Side == ledger.Long {
				dir = signal.Long
			} else {
				dir = signal.Short
			}
		}

		closedThisBar := false

		// Exit priority 1: portfolio drawdown breach overrides all
		// other logic and halts trading for the rest of the run.
		if open && cfg.Risk.MaxDrawdownPct > 0 && peak > 0 {
			if (peak-eq)/peak > cfg.Risk.MaxDrawdownPct {
				if err := e.closeAt(led, cfg.Instrument, b, "DrawdownBreaker"); err != nil {
					return Result{}, err
				}
				open, closedThisBar, halted = false, true, true
			}
		}

		// Exit priority 2: price crossed the protective stop.
		if open && risk.StopHit(pos.Side.Dir(), pos.Stop, b.Close) {
			if err := e.closeAt(led, cfg.Instrument, b, "StopLoss"); err != nil {
				return Result{}, err
			}
			open, closedThisBar = false, true
		}

		// The rule consumes every bar exactly once, with the position
		// state it saw at bar open.
		sig := cfg.Rule.OnBar(b, dir)

		switch {
		case open && (sig == signal.Close || oppositeOpen(sig, pos.Side)):
			// Exit priority 3/4: evaluator close, opposite-direction
			// signal, or reversion inside the exit band (rules emit
			// Close for all of these).
			if err := e.closeAt(led, cfg.Instrument, b, "Signal:"+sig.String()); err != nil {
				return Result{}, err
			}
			open = false

		case open && cfg.Risk.Trailing && pos.Stop != 0:
			// Ratchet the trailing stop; it never loosens.
			if dist, ok := risk.StopDistance(cfg.Risk, b.Close, atr.Value(), atr.Ready()); ok {
				if err := led.SetStop(cfg.Instrument, risk.Trail(pos.Side.Dir(), pos.Stop, b.Close, dist)); err != nil {
					return Result{}, err
				}
			}

		case !open && !closedThisBar && !halted && sig.IsOpen():
			if err := e.tryOpen(led, atr, &res, eq, sig, b); err != nil {
				return Result{}, err
			}
		}

		eq, err = led.Equity(marks)
		if err != nil {
			return Result{}, err
		}
		pt := analytics.EquityPoint{Time: b.Time, Equity: eq}
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

// tryOpen sizes an open intent and either fills it or records a
// skipped-signal event. Fills happen at the bar's close price.
func (e *Engine) tryOpen(led *ledger.Ledger, atr *indicators.ATR, res *Result, equity float64, sig signal.Signal, b market.Bar) error {
	cfg := e.cfg

	side := ledger.Long
	if sig == signal.OpenShort {
		side = ledger.Short
	}

	dist, _ := risk.StopDistance(cfg.Risk, b.Close, atr.Value(), atr.Ready())
	d := risk.Size(cfg.Risk, equity, led.Cash(), b.Close, dist)
	if !d.Allowed {
		res.Skipped = append(res.Skipped, SkippedSignal{
			Time:   b.Time,
			Signal: sig,
			Reason: d.Reason(),
		})
		return nil
	}

	stop := risk.InitialStop(side.Dir(), b.Close, d.StopDistance)
	rec, err := led.Open(cfg.Instrument, side, d.Units, b.Close, b.Time, stop, "Signal:"+sig.String())
	if err != nil {
		return err
	}
	return e.jnl.RecordTrade(rec)
}

func (e *Engine) closeAt(led *ledger.Ledger, instrument string, b market.Bar, reason string) error {
	rec, err := led.CloseAt(instrument, b.Close, b.Time, reason)
	if err != nil {
		return err
	}
	return e.jnl.RecordTrade(rec)
}

func oppositeOpen(sig signal.Signal, side ledger.Side) bool {
	return (sig == signal.OpenShort && side == ledger.Long) ||
		(sig == signal.OpenLong && side == ledger.Short)
}

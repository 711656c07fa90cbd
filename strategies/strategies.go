// Package strategies assembles the engine configurations for the
// built-in trading rules. A strategy is data: a signal rule plus risk
// settings, not a subclass.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/quant/engine"
	"github.com/rustyeddy/quant/risk"
	"github.com/rustyeddy/quant/signal"
)

// Params are the knobs shared by the built-in strategies. Zero values
// fall back to each strategy's defaults.
type Params struct {
	Instrument     string
	InitialCapital float64

	RiskPct        float64
	ATRPeriod      int
	ATRMultiplier  float64
	MaxDrawdownPct float64
	NoLeverage     bool

	Fast int // fast MA / MACD fast period
	Slow int // slow MA / MACD slow period

	Window      int     // z-score window
	Entry       float64 // z-score entry threshold
	Exit        float64 // z-score exit threshold
	TrendPeriod int     // trend filter period, 0 disables
	Lookback    int     // divergence lookback
	AllowShort  bool
}

func (p *Params) defaults() {
	if p.InitialCapital == 0 {
		p.InitialCapital = 100_000
	}
	if p.RiskPct == 0 {
		p.RiskPct = 0.02
	}
	if p.ATRPeriod == 0 {
		p.ATRPeriod = 14
	}
	if p.ATRMultiplier == 0 {
		p.ATRMultiplier = 2.0
	}
}

func (p Params) policy(trailing bool) risk.Policy {
	return risk.Policy{
		RiskPct:        p.RiskPct,
		ATRPeriod:      p.ATRPeriod,
		ATRMultiplier:  p.ATRMultiplier,
		Trailing:       trailing,
		MaxDrawdownPct: p.MaxDrawdownPct,
		AllowLeverage:  !p.NoLeverage,
	}
}

// EMACross is the improved double-MA strategy: EMA crossover entries,
// ATR-sized positions, trailing ATR stop.
func EMACross(p Params) engine.Config {
	p.defaults()
	if p.Fast == 0 {
		p.Fast = 10
	}
	if p.Slow == 0 {
		p.Slow = 30
	}

	cross := signal.NewCrossover(p.Fast, p.Slow)
	cross.AllowShort = p.AllowShort

	var rule signal.Rule = cross
	if p.TrendPeriod > 0 {
		rule = signal.WithTrendFilter(rule, p.TrendPeriod)
	}

	return engine.Config{
		Instrument:     p.Instrument,
		InitialCapital: p.InitialCapital,
		Rule:           rule,
		Risk:           p.policy(true),
	}
}

// MACDDivergence trades price/oscillator divergence with a fixed
// protective stop; exits come from the opposite divergence.
func MACDDivergence(p Params) engine.Config {
	p.defaults()
	if p.Fast == 0 {
		p.Fast = 12
	}
	if p.Slow == 0 {
		p.Slow = 26
	}
	if p.Lookback == 0 {
		p.Lookback = 20
	}

	rule := signal.NewMACDDivergence(p.Fast, p.Slow, 9, p.Lookback)
	rule.AllowShort = p.AllowShort

	return engine.Config{
		Instrument:     p.Instrument,
		InitialCapital: p.InitialCapital,
		Rule:           rule,
		Risk:           p.policy(false),
	}
}

// VegasChannel trades fast-EMA breakouts of the 144/169 EMA channel
// under a 576-EMA trend filter.
func VegasChannel(p Params) engine.Config {
	p.defaults()

	return engine.Config{
		Instrument:     p.Instrument,
		InitialCapital: p.InitialCapital,
		Rule:           signal.NewVegasChannel(12, 144, 169, 576),
		Risk:           p.policy(false),
	}
}

// MeanReversion fades z-score extremes of close against its rolling
// mean, with a volatility-scaled entry threshold, a trend filter, and
// a 5% drawdown circuit breaker by default.
func MeanReversion(p Params) engine.Config {
	p.defaults()
	if p.Window == 0 {
		p.Window = 60
	}
	if p.Entry == 0 {
		p.Entry = 2.0
	}
	if p.Exit == 0 {
		p.Exit = 0.5
	}
	if p.TrendPeriod == 0 {
		p.TrendPeriod = 200
	}
	if p.MaxDrawdownPct == 0 {
		p.MaxDrawdownPct = 0.05
	}

	zr := signal.NewZScoreReversion(p.Window, p.Entry, p.Exit)
	zr.Scaling = signal.DefaultVolScaling()
	zr.AllowShort = true

	return engine.Config{
		Instrument:     p.Instrument,
		InitialCapital: p.InitialCapital,
		Rule:           signal.WithTrendFilter(zr, p.TrendPeriod),
		Risk:           p.policy(true),
	}
}

// Names lists the built-in single-instrument strategies.
func Names() []string {
	return []string{"ema-cross", "macd-divergence", "vegas", "mean-reversion"}
}

// ByName builds the engine config for a named strategy.
func ByName(name string, p Params) (engine.Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ema-cross", "emacross":
		return EMACross(p), nil
	case "macd-divergence", "macd":
		return MACDDivergence(p), nil
	case "vegas", "vegas-channel":
		return VegasChannel(p), nil
	case "mean-reversion", "meanrev":
		return MeanReversion(p), nil
	default:
		return engine.Config{}, fmt.Errorf("unknown strategy %q (supported: %s)",
			name, strings.Join(Names(), ", "))
	}
}

// Package risk converts entry intents into sized orders and manages
// protective stops. Sizing is volatility-scaled: the stop distance is
// derived from ATR (or a fixed percentage) and the position size from
// the account's risk budget.
package risk

// Policy holds the per-strategy risk configuration.
type Policy struct {
	// RiskPct is the fraction of equity risked per trade, e.g. 0.02.
	RiskPct float64

	// ATRPeriod and ATRMultiplier define the volatility stop:
	// stopDistance = ATRMultiplier * ATR(ATRPeriod).
	ATRPeriod     int
	ATRMultiplier float64

	// FixedStopPct defines the stop as a fraction of the entry price.
	// Used when ATRMultiplier is zero.
	FixedStopPct float64

	// Trailing enables the ratcheting stop while a position is open.
	Trailing bool

	// MaxDrawdownPct is the portfolio circuit breaker: a peak-to-trough
	// equity decline beyond this fraction force-closes the position and
	// halts the run's trading. Zero disables the breaker.
	MaxDrawdownPct float64

	// AllowLeverage skips the cash-sufficiency check on opens. Short
	// strategies require it.
	AllowLeverage bool
}

// DefaultPolicy mirrors the common strategy settings: 2% risk per
// trade, 2x ATR(14) stop with trailing enabled, leverage allowed.
func DefaultPolicy() Policy {
	return Policy{
		RiskPct:       0.02,
		ATRPeriod:     14,
		ATRMultiplier: 2.0,
		Trailing:      true,
		AllowLeverage: true,
	}
}

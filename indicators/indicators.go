// Package indicators provides streaming technical indicators for
// bar-driven strategy engines.
package indicators

import "github.com/rustyeddy/quant/market"

// Indicator computes a single streaming value from bars.
// It is deterministic: two runs over identical input produce identical
// output sequences, and no update may look ahead of the bars consumed
// so far.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "ATR(14)".
	Name() string

	// Warmup returns how many bars are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful. An indicator that is
	// not ready has an undefined value; consumers must treat it as
	// "no signal", never as zero.
	Ready() bool

	// Value returns the current indicator value. Callers must check
	// Ready() first; the result is unspecified otherwise.
	Value() float64
}

package indicators

import (
	"fmt"

	"github.com/rustyeddy/quant/market"
)

// ZScore is the normalized deviation of a value from its rolling mean:
// (v - mean) / stddev over the window. It is not ready while the window
// is unfilled or while the standard deviation is zero, in which case
// the value is undefined and consumers must hold.
type ZScore struct {
	window int
	std    *StdDev
	last   float64
}

func NewZScore(window int) *ZScore {
	return &ZScore{
		window: window,
		std:    NewStdDev(window),
	}
}

func (z *ZScore) Name() string {
	return fmt.Sprintf("ZScore(%d)", z.window)
}

func (z *ZScore) Warmup() int { return z.window }

func (z *ZScore) Reset() {
	z.std.Reset()
	z.last = 0
}

func (z *ZScore) Update(b market.Bar) {
	z.Push(b.Close)
}

// Push feeds a raw value. Pair engines push spread values rather than
// bar closes.
func (z *ZScore) Push(v float64) {
	z.std.Push(v)
	z.last = v
}

func (z *ZScore) Ready() bool {
	return z.std.Ready() && z.std.Value() > 0
}

func (z *ZScore) Value() float64 {
	if !z.Ready() {
		return 0
	}
	return (z.last - z.std.Mean()) / z.std.Value()
}

// RelVol returns the rolling standard deviation relative to the rolling
// mean, used to scale entry thresholds by volatility regime. Only
// meaningful when Ready() and the mean is non-zero.
func (z *ZScore) RelVol() float64 {
	mean := z.std.Mean()
	if !z.std.Ready() || mean == 0 {
		return 0
	}
	return z.std.Value() / mean
}

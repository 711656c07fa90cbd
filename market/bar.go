package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is one OHLCV observation for a fixed time interval.
// Bars are immutable once produced and are owned by the Series
// that contains them.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks the data-feed contract for a single bar. A bar that
// fails here indicates an upstream feed problem, not a recoverable
// condition.
func (b Bar) Validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrBadBar)
	}
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite field at %s", ErrBadBar, b.Time.Format(time.RFC3339))
		}
	}
	if b.Close <= 0 {
		return fmt.Errorf("%w: non-positive close %v at %s", ErrBadBar, b.Close, b.Time.Format(time.RFC3339))
	}
	return nil
}

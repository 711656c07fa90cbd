package market

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadBar marks a bar that violates the data-feed contract
// (non-increasing timestamp, non-positive close, non-finite field).
// Engines must abort the run on this error rather than skip the bar.
var ErrBadBar = errors.New("market: malformed bar")

// Series is an ordered sequence of Bars for a single instrument.
// Timestamps must be strictly increasing.
type Series struct {
	Instrument string
	Bars       []Bar
}

func NewSeries(instrument string, bars []Bar) Series {
	return Series{Instrument: instrument, Bars: bars}
}

func (s Series) Len() int { return len(s.Bars) }

// Validate checks every bar plus the strictly-increasing timestamp
// invariant across the series.
func (s Series) Validate() error {
	var prev time.Time
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%s bar %d: %w", s.Instrument, i, err)
		}
		if i > 0 && !b.Time.After(prev) {
			return fmt.Errorf("%s bar %d: %w: timestamp %s not after %s",
				s.Instrument, i, ErrBadBar,
				b.Time.Format(time.RFC3339), prev.Format(time.RFC3339))
		}
		prev = b.Time
	}
	return nil
}

// Start and End return the series time range. Zero times for an empty
// series.
func (s Series) Start() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[0].Time
}

func (s Series) End() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].Time
}

// AlignPair intersects two series on their timestamp domain, dropping
// bars with no counterpart on the other side. Pair engines require
// aligned input; alignment is a precondition, not a runtime behavior
// of the engine itself.
func AlignPair(a, b Series) (Series, Series) {
	have := make(map[time.Time]int, len(b.Bars))
	for i, bar := range b.Bars {
		have[bar.Time] = i
	}

	outA := Series{Instrument: a.Instrument}
	outB := Series{Instrument: b.Instrument}
	for _, bar := range a.Bars {
		j, ok := have[bar.Time]
		if !ok {
			continue
		}
		outA.Bars = append(outA.Bars, bar)
		outB.Bars = append(outB.Bars, b.Bars[j])
	}
	return outA, outB
}

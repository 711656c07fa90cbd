package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/quant/market"
)

// StdDev is a rolling sample standard deviation of closes. The sample
// convention (n-1 divisor) matches the ZScore consumer.
type StdDev struct {
	period int
	window []float64
}

func NewStdDev(period int) *StdDev {
	return &StdDev{
		period: period,
		window: make([]float64, 0, period),
	}
}

func (s *StdDev) Name() string {
	return fmt.Sprintf("StdDev(%d)", s.period)
}

func (s *StdDev) Warmup() int { return s.period }

func (s *StdDev) Reset() {
	s.window = s.window[:0]
}

func (s *StdDev) Update(b market.Bar) {
	s.Push(b.Close)
}

func (s *StdDev) Push(v float64) {
	s.window = append(s.window, v)
	if len(s.window) > s.period {
		s.window = s.window[1:]
	}
}

func (s *StdDev) Ready() bool {
	return len(s.window) >= s.period
}

func (s *StdDev) Value() float64 {
	if !s.Ready() {
		return 0
	}
	return sampleStd(s.window)
}

// Mean returns the rolling mean over the same window.
func (s *StdDev) Mean() float64 {
	if len(s.window) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.window {
		sum += v
	}
	return sum / float64(len(s.window))
}

func sampleStd(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(n)

	ss := 0.0
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

package indicators

import (
	"fmt"

	"github.com/rustyeddy/quant/market"
)

// Highest is the rolling maximum over a window. Update feeds it bar
// closes; Push feeds it arbitrary values, which is how divergence
// rules track histogram extremes alongside price extremes.
type Highest struct {
	window int
	vals   []float64
}

func NewHighest(window int) *Highest {
	return &Highest{window: window}
}

func (h *Highest) Name() string {
	return fmt.Sprintf("Highest(%d)", h.window)
}

func (h *Highest) Warmup() int {
	return h.window
}

func (h *Highest) Reset() {
	h.vals = h.vals[:0]
}

func (h *Highest) Ready() bool {
	return len(h.vals) >= h.window
}

func (h *Highest) Update(b market.Bar) {
	h.Push(b.Close)
}

func (h *Highest) Push(v float64) {
	h.vals = append(h.vals, v)
	if len(h.vals) > h.window {
		h.vals = h.vals[1:]
	}
}

func (h *Highest) Value() float64 {
	if len(h.vals) == 0 {
		return 0
	}
	max := h.vals[0]
	for _, v := range h.vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Lowest is the rolling minimum over a window, the mirror of Highest.
type Lowest struct {
	window int
	vals   []float64
}

func NewLowest(window int) *Lowest {
	return &Lowest{window: window}
}

func (l *Lowest) Name() string {
	return fmt.Sprintf("Lowest(%d)", l.window)
}

func (l *Lowest) Warmup() int {
	return l.window
}

func (l *Lowest) Reset() {
	l.vals = l.vals[:0]
}

func (l *Lowest) Ready() bool {
	return len(l.vals) >= l.window
}

func (l *Lowest) Update(b market.Bar) {
	l.Push(b.Close)
}

func (l *Lowest) Push(v float64) {
	l.vals = append(l.vals, v)
	if len(l.vals) > l.window {
		l.vals = l.vals[1:]
	}
}

func (l *Lowest) Value() float64 {
	if len(l.vals) == 0 {
		return 0
	}
	min := l.vals[0]
	for _, v := range l.vals[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

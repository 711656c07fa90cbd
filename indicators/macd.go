package indicators

import (
	"fmt"

	"github.com/rustyeddy/quant/market"
)

// MACD tracks the difference of a fast and slow EMA of closes (the DIF
// line), an EMA of DIF (the DEA or signal line), and their difference
// (the histogram).
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int

	fast   *EMA
	slow   *EMA
	signal *EMA
}

func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		fast:         NewEMA(fastPeriod),
		slow:         NewEMA(slowPeriod),
		signal:       NewEMA(signalPeriod),
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) Warmup() int {
	return m.slowPeriod + m.signalPeriod
}

func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
}

func (m *MACD) Update(b market.Bar) {
	m.fast.Push(b.Close)
	m.slow.Push(b.Close)
	// DIF only exists once both EMAs are seeded; the signal EMA is fed
	// DIF values from that point on.
	if m.fast.Ready() && m.slow.Ready() {
		m.signal.Push(m.fast.Value() - m.slow.Value())
	}
}

func (m *MACD) Ready() bool {
	return m.signal.Ready()
}

// DIF returns the fast-slow EMA difference.
func (m *MACD) DIF() float64 {
	if !m.fast.Ready() || !m.slow.Ready() {
		return 0
	}
	return m.fast.Value() - m.slow.Value()
}

// DEA returns the signal line (EMA of DIF).
func (m *MACD) DEA() float64 {
	if !m.signal.Ready() {
		return 0
	}
	return m.signal.Value()
}

// Hist returns DIF - DEA. Value is an alias so MACD satisfies
// Indicator.
func (m *MACD) Hist() float64 {
	if !m.Ready() {
		return 0
	}
	return m.DIF() - m.DEA()
}

func (m *MACD) Value() float64 { return m.Hist() }

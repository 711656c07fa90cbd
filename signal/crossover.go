package signal

import (
	"fmt"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
)

// Crossover fires the bar a fast average transitions across a slow
// one. Detection uses the previous bar's relative ordering; a
// single-bar absolute comparison would fire on every bar while the
// fast line stays above the slow one. The pre-ready state counts as
// neutral, so a fast line already clear of the slow one when both
// averages become ready fires exactly once.
type Crossover struct {
	fast *indicators.EMA
	slow *indicators.EMA

	// AllowShort turns a death cross into OpenShort instead of Close.
	AllowShort bool

	lastDiff float64
	haveLast bool
}

func NewCrossover(fastPeriod, slowPeriod int) *Crossover {
	return &Crossover{
		fast: indicators.NewEMA(fastPeriod),
		slow: indicators.NewEMA(slowPeriod),
	}
}

func (c *Crossover) Name() string {
	return fmt.Sprintf("Crossover(%s/%s)", c.fast.Name(), c.slow.Name())
}

func (c *Crossover) Reset() {
	c.fast.Reset()
	c.slow.Reset()
	c.lastDiff = 0
	c.haveLast = false
}

func (c *Crossover) OnBar(b market.Bar, pos Direction) Signal {
	c.fast.Update(b)
	c.slow.Update(b)

	if !c.fast.Ready() || !c.slow.Ready() {
		return Hold
	}

	diff := c.fast.Value() - c.slow.Value()

	last := c.lastDiff
	if !c.haveLast {
		last = 0
		c.haveLast = true
	}

	golden := diff > 0 && last <= 0
	death := diff < 0 && last >= 0
	c.lastDiff = diff

	switch {
	case golden:
		if pos == Short {
			return Close
		}
		return OpenLong
	case death:
		if pos == Long {
			return Close
		}
		if c.AllowShort {
			return OpenShort
		}
		return Hold
	}
	return Hold
}

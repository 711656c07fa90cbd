package signal

import (
	"fmt"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
)

// VegasChannel trades breakouts of a fast EMA through a two-EMA
// channel, filtered by a long-period trend EMA. Entries require the
// fast line to cross above both channel lines while price sits above
// the trend line; exits fire when the fast line falls back below both.
type VegasChannel struct {
	fast  *indicators.EMA
	mid1  *indicators.EMA
	mid2  *indicators.EMA
	trend *indicators.EMA

	prevFast float64
	prevMid1 float64
	havePrev bool
}

func NewVegasChannel(fastPeriod, mid1Period, mid2Period, trendPeriod int) *VegasChannel {
	return &VegasChannel{
		fast:  indicators.NewEMA(fastPeriod),
		mid1:  indicators.NewEMA(mid1Period),
		mid2:  indicators.NewEMA(mid2Period),
		trend: indicators.NewEMA(trendPeriod),
	}
}

func (v *VegasChannel) Name() string {
	return fmt.Sprintf("VegasChannel(%s,%s,%s,%s)",
		v.fast.Name(), v.mid1.Name(), v.mid2.Name(), v.trend.Name())
}

func (v *VegasChannel) Reset() {
	v.fast.Reset()
	v.mid1.Reset()
	v.mid2.Reset()
	v.trend.Reset()
	v.havePrev = false
}

func (v *VegasChannel) OnBar(b market.Bar, pos Direction) Signal {
	v.fast.Update(b)
	v.mid1.Update(b)
	v.mid2.Update(b)
	v.trend.Update(b)

	if !v.fast.Ready() || !v.mid1.Ready() || !v.mid2.Ready() || !v.trend.Ready() {
		return Hold
	}

	fast, mid1, mid2 := v.fast.Value(), v.mid1.Value(), v.mid2.Value()

	if !v.havePrev {
		v.prevFast, v.prevMid1 = fast, mid1
		v.havePrev = true
		return Hold
	}

	breakUp := fast > mid1 && fast > mid2 && v.prevFast <= v.prevMid1
	breakDown := fast < mid1 && fast < mid2
	trendUp := b.Close > v.trend.Value()

	v.prevFast, v.prevMid1 = fast, mid1

	switch {
	case pos == Flat && trendUp && breakUp:
		return OpenLong
	case pos == Long && breakDown:
		return Close
	}
	return Hold
}

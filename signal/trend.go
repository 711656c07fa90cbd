package signal

import (
	"fmt"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
)

// TrendFilter wraps another rule and vetoes open intents when price
// is on the wrong side of a long-period moving average: longs require
// close above the trend line, shorts below. Close and Hold pass
// through untouched. While the trend average is warming up, opens are
// vetoed.
type TrendFilter struct {
	inner Rule
	trend *indicators.SMA
}

func WithTrendFilter(inner Rule, trendPeriod int) *TrendFilter {
	return &TrendFilter{
		inner: inner,
		trend: indicators.NewSMA(trendPeriod),
	}
}

func (t *TrendFilter) Name() string {
	return fmt.Sprintf("%s+TrendFilter(%s)", t.inner.Name(), t.trend.Name())
}

func (t *TrendFilter) Reset() {
	t.inner.Reset()
	t.trend.Reset()
}

func (t *TrendFilter) OnBar(b market.Bar, pos Direction) Signal {
	t.trend.Update(b)
	sig := t.inner.OnBar(b, pos)

	if !sig.IsOpen() {
		return sig
	}
	if !t.trend.Ready() {
		return Hold
	}

	ma := t.trend.Value()
	if sig == OpenLong && b.Close <= ma {
		return Hold
	}
	if sig == OpenShort && b.Close >= ma {
		return Hold
	}
	return sig
}

package signal

import (
	"fmt"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
)

// MACDDivergence detects price/oscillator divergence over a fixed
// lookback window: a fresh price low that the MACD histogram does not
// confirm is bullish (OpenLong); the symmetric fresh high is bearish
// (Close, or OpenShort when allowed).
type MACDDivergence struct {
	macd     *indicators.MACD
	lookback int

	AllowShort bool

	hiClose *indicators.Highest
	loClose *indicators.Lowest
	hiHist  *indicators.Highest
	loHist  *indicators.Lowest
}

func NewMACDDivergence(fast, slow, signalPeriod, lookback int) *MACDDivergence {
	return &MACDDivergence{
		macd:     indicators.NewMACD(fast, slow, signalPeriod),
		lookback: lookback,
		hiClose:  indicators.NewHighest(lookback),
		loClose:  indicators.NewLowest(lookback),
		hiHist:   indicators.NewHighest(lookback),
		loHist:   indicators.NewLowest(lookback),
	}
}

func (d *MACDDivergence) Name() string {
	return fmt.Sprintf("MACDDivergence(%s,lb=%d)", d.macd.Name(), d.lookback)
}

func (d *MACDDivergence) Reset() {
	d.macd.Reset()
	d.hiClose.Reset()
	d.loClose.Reset()
	d.hiHist.Reset()
	d.loHist.Reset()
}

func (d *MACDDivergence) OnBar(b market.Bar, pos Direction) Signal {
	d.macd.Update(b)
	if !d.macd.Ready() {
		return Hold
	}

	hist := d.macd.Hist()
	sig := Hold

	// Compare against the prior window only; the current bar must not
	// be part of its own reference extreme.
	if d.hiClose.Ready() {
		freshLow := b.Close < d.loClose.Value()
		freshHigh := b.Close > d.hiClose.Value()

		switch {
		case pos == Flat && freshLow && hist > d.loHist.Value():
			sig = OpenLong
		case pos == Long && freshHigh && hist < d.hiHist.Value():
			sig = Close
		case pos == Flat && freshHigh && hist < d.hiHist.Value() && d.AllowShort:
			sig = OpenShort
		case pos == Short && freshLow && hist > d.loHist.Value():
			sig = Close
		}
	}

	d.hiClose.Push(b.Close)
	d.loClose.Push(b.Close)
	d.hiHist.Push(hist)
	d.loHist.Push(hist)

	return sig
}

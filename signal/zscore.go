package signal

import (
	"fmt"
	"math"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
)

// VolScaling adapts the z-score entry threshold to the current
// volatility regime: widened in quiet markets, tightened in noisy
// ones. Zero thresholds disable the scaling.
type VolScaling struct {
	HighVol       float64 // relative vol above this tightens the entry
	LowVol        float64 // relative vol below this widens the entry
	TightenFactor float64 // e.g. 0.8
	WidenFactor   float64 // e.g. 1.2
}

// DefaultVolScaling matches the mean-reversion defaults: tighten 20%
// above 3% relative volatility, widen 20% below 1%.
func DefaultVolScaling() VolScaling {
	return VolScaling{
		HighVol:       0.03,
		LowVol:        0.01,
		TightenFactor: 0.8,
		WidenFactor:   1.2,
	}
}

func (v VolScaling) apply(base, relVol float64) float64 {
	switch {
	case v.HighVol > 0 && relVol > v.HighVol:
		return base * v.TightenFactor
	case v.LowVol > 0 && relVol < v.LowVol:
		return base * v.WidenFactor
	}
	return base
}

// ZScoreReversion opens against extreme deviations of close from its
// rolling mean and closes when the deviation reverts inside the exit
// band.
type ZScoreReversion struct {
	z *indicators.ZScore

	Entry      float64 // e.g. 2.0
	Exit       float64 // e.g. 0.5
	Scaling    VolScaling
	AllowShort bool
}

func NewZScoreReversion(window int, entry, exit float64) *ZScoreReversion {
	return &ZScoreReversion{
		z:     indicators.NewZScore(window),
		Entry: entry,
		Exit:  exit,
	}
}

func (r *ZScoreReversion) Name() string {
	return fmt.Sprintf("ZScoreReversion(%s)", r.z.Name())
}

func (r *ZScoreReversion) Reset() {
	r.z.Reset()
}

func (r *ZScoreReversion) OnBar(b market.Bar, pos Direction) Signal {
	r.z.Update(b)
	if !r.z.Ready() {
		return Hold
	}

	z := r.z.Value()

	if pos != Flat {
		if math.Abs(z) < r.Exit {
			return Close
		}
		return Hold
	}

	entry := r.Scaling.apply(r.Entry, r.z.RelVol())
	switch {
	case z < -entry:
		return OpenLong
	case z > entry:
		if r.AllowShort {
			return OpenShort
		}
	}
	return Hold
}

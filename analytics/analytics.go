// Package analytics computes the post-run performance summary from
// the equity curve and trade history. Everything here is computed once
// at run end; nothing feeds back into execution.
package analytics

import (
	"math"
	"time"

	"github.com/rustyeddy/quant/ledger"
)

// Config carries the reporting constants. The source material annual-
// izes Sharpe with a 3% risk-free rate and 252 periods per year even
// for continuous markets; the mismatch is deliberate and configurable
// rather than fixed.
type Config struct {
	RiskFreeRate   float64
	PeriodsPerYear float64
}

func DefaultConfig() Config {
	return Config{
		RiskFreeRate:   0.03,
		PeriodsPerYear: 252,
	}
}

// EquityPoint is one mark of the equity curve.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// Summary is the end-of-run performance report.
type Summary struct {
	InitialEquity float64
	FinalEquity   float64

	CumulativeReturn float64
	AnnualizedReturn float64

	// MaxDrawdown is min over time of (equity - peak)/peak, so it is
	// zero or negative. DrawdownBars is the bar count from the peak
	// preceding the deepest trough to that trough.
	MaxDrawdown  float64
	DrawdownBars int

	// Sharpe is meaningful only when SharpeDefined; a return series
	// with zero variance has no Sharpe ratio.
	Sharpe        float64
	SharpeDefined bool

	ClosedTrades int
	Wins         int
	Losses       int
	WinRate      float64

	// TurnoverPerMonth is closed trades normalized per 30 elapsed days.
	TurnoverPerMonth float64

	Days float64
}

// Compute builds the summary from the recorded equity curve and trade
// history.
func Compute(cfg Config, curve []EquityPoint, trades []ledger.TradeRecord) Summary {
	var s Summary
	if len(curve) == 0 {
		return s
	}

	s.InitialEquity = curve[0].Equity
	s.FinalEquity = curve[len(curve)-1].Equity
	if s.InitialEquity != 0 {
		s.CumulativeReturn = s.FinalEquity/s.InitialEquity - 1
	}

	s.Days = curve[len(curve)-1].Time.Sub(curve[0].Time).Hours() / 24
	if s.Days >= 1 {
		s.AnnualizedReturn = math.Pow(1+s.CumulativeReturn, 365/s.Days) - 1
	} else {
		s.AnnualizedReturn = s.CumulativeReturn
	}

	s.MaxDrawdown, s.DrawdownBars = maxDrawdown(curve)

	rets := periodReturns(curve)
	if sd := sampleStd(rets); sd > 0 {
		s.Sharpe = (s.AnnualizedReturn - cfg.RiskFreeRate) / (sd * math.Sqrt(cfg.PeriodsPerYear))
		s.SharpeDefined = true
	}

	for _, t := range trades {
		if t.Action != ledger.Close {
			continue
		}
		s.ClosedTrades++
		if t.RealizedPL > 0 {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	if s.ClosedTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.ClosedTrades)
	}

	if s.Days > 0 {
		s.TurnoverPerMonth = float64(s.ClosedTrades) / (s.Days / 30)
	}

	return s
}

// periodReturns is the simple percent change of equity between
// consecutive marks.
func periodReturns(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			rets = append(rets, 0)
			continue
		}
		rets = append(rets, curve[i].Equity/prev-1)
	}
	return rets
}

func maxDrawdown(curve []EquityPoint) (dd float64, bars int) {
	peak := curve[0].Equity
	sincePeak := 0
	for _, pt := range curve[1:] {
		if pt.Equity >= peak {
			peak = pt.Equity
			sincePeak = 0
			continue
		}
		sincePeak++
		if peak > 0 {
			d := (pt.Equity - peak) / peak
			if d < dd {
				dd = d
				bars = sincePeak
			}
		}
	}
	return dd, bars
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

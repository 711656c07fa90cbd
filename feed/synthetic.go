package feed

import (
	"math"
	"math/rand"
	"time"

	"github.com/rustyeddy/quant/market"
)

// Synthetic generators for demos and tests. All are deterministic for
// a given seed so runs replay identically.

// Trend produces n daily bars drifting from start by step per bar.
func Trend(instrument string, n int, start, step float64, t0 time.Time) market.Series {
	bars := make([]market.Bar, 0, n)
	for i := 0; i < n; i++ {
		c := start + float64(i)*step
		bars = append(bars, market.Bar{
			Time:   t0.AddDate(0, 0, i),
			Open:   c - step/2,
			High:   c + math.Abs(step),
			Low:    c - math.Abs(step),
			Close:  c,
			Volume: 10_000,
		})
	}
	return market.NewSeries(instrument, bars)
}

// Sine produces n daily bars oscillating around mean with the given
// amplitude and period in bars; a mean-reverting series for z-score
// strategies.
func Sine(instrument string, n int, mean, amplitude float64, period int, t0 time.Time) market.Series {
	bars := make([]market.Bar, 0, n)
	for i := 0; i < n; i++ {
		c := mean + amplitude*math.Sin(2*math.Pi*float64(i)/float64(period))
		bars = append(bars, market.Bar{
			Time:   t0.AddDate(0, 0, i),
			Open:   c,
			High:   c + amplitude*0.05,
			Low:    c - amplitude*0.05,
			Close:  c,
			Volume: 10_000,
		})
	}
	return market.NewSeries(instrument, bars)
}

// RandomWalk produces n daily bars with a seeded log-return walk.
func RandomWalk(instrument string, n int, start, vol float64, seed int64, t0 time.Time) market.Series {
	r := rand.New(rand.NewSource(seed))
	bars := make([]market.Bar, 0, n)
	price := start
	for i := 0; i < n; i++ {
		ret := (r.Float64() - 0.5) * 2 * vol
		next := price * (1 + ret)
		high := math.Max(price, next) * (1 + r.Float64()*vol/2)
		low := math.Min(price, next) * (1 - r.Float64()*vol/2)
		bars = append(bars, market.Bar{
			Time:   t0.AddDate(0, 0, i),
			Open:   price,
			High:   high,
			Low:    low,
			Close:  next,
			Volume: 10_000 + r.Float64()*5_000,
		})
		price = next
	}
	return market.NewSeries(instrument, bars)
}

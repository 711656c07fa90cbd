package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func bar(i int, close float64) Bar {
	return Bar{
		Time:   t0.AddDate(0, 0, i),
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 1000,
	}
}

func TestBarValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Bar)
		wantErr bool
	}{
		{"valid", func(b *Bar) {}, false},
		{"zero_time", func(b *Bar) { b.Time = time.Time{} }, true},
		{"nan_close", func(b *Bar) { b.Close = math.NaN() }, true},
		{"inf_high", func(b *Bar) { b.High = math.Inf(1) }, true},
		{"neg_inf_low", func(b *Bar) { b.Low = math.Inf(-1) }, true},
		{"nan_volume", func(b *Bar) { b.Volume = math.NaN() }, true},
		{"zero_close", func(b *Bar) { b.Close = 0 }, true},
		{"negative_close", func(b *Bar) { b.Close = -5 }, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := bar(0, 100)
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadBar)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeriesValidateOrdering(t *testing.T) {
	t.Parallel()

	good := NewSeries("VOO", []Bar{bar(0, 100), bar(1, 101), bar(2, 102)})
	assert.NoError(t, good.Validate())

	// Duplicate timestamp.
	dup := NewSeries("VOO", []Bar{bar(0, 100), bar(0, 101)})
	assert.ErrorIs(t, dup.Validate(), ErrBadBar)

	// Out of order.
	ooo := NewSeries("VOO", []Bar{bar(5, 100), bar(3, 101)})
	assert.ErrorIs(t, ooo.Validate(), ErrBadBar)

	// A bad bar anywhere fails the series.
	mixed := NewSeries("VOO", []Bar{bar(0, 100), bar(1, -1)})
	assert.ErrorIs(t, mixed.Validate(), ErrBadBar)
}

func TestSeriesRange(t *testing.T) {
	t.Parallel()

	s := NewSeries("VOO", []Bar{bar(0, 100), bar(1, 101), bar(4, 102)})
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, t0, s.Start())
	assert.Equal(t, t0.AddDate(0, 0, 4), s.End())

	empty := NewSeries("VOO", nil)
	assert.True(t, empty.Start().IsZero())
	assert.True(t, empty.End().IsZero())
}

func TestAlignPair(t *testing.T) {
	t.Parallel()

	a := NewSeries("AAPL", []Bar{bar(0, 150), bar(1, 151), bar(2, 152), bar(4, 153)})
	b := NewSeries("QQQ", []Bar{bar(1, 400), bar(2, 401), bar(3, 402), bar(4, 403)})

	ga, gb := AlignPair(a, b)
	require.Equal(t, ga.Len(), gb.Len())
	require.Equal(t, 3, ga.Len(), "days 1, 2 and 4 are shared")

	for i := range ga.Bars {
		assert.Equal(t, ga.Bars[i].Time, gb.Bars[i].Time, "bar %d", i)
	}
	assert.Equal(t, 151.0, ga.Bars[0].Close)
	assert.Equal(t, 400.0, gb.Bars[0].Close)
	assert.Equal(t, "AAPL", ga.Instrument)
	assert.Equal(t, "QQQ", gb.Instrument)
}

func TestAlignPairDisjoint(t *testing.T) {
	t.Parallel()

	a := NewSeries("A", []Bar{bar(0, 1), bar(1, 2)})
	b := NewSeries("B", []Bar{bar(5, 1), bar(6, 2)})

	ga, gb := AlignPair(a, b)
	assert.Zero(t, ga.Len())
	assert.Zero(t, gb.Len())
}

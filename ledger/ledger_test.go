package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func TestOpenLongMovesCash(t *testing.T) {
	t.Parallel()

	l := New(100_000)

	rec, err := l.Open("VOO", Long, 100, 400, t0, 390, "signal")
	require.NoError(t, err)

	assert.Equal(t, "T-000001", rec.ID)
	assert.Equal(t, Open, rec.Action)
	assert.Equal(t, 100.0, rec.Units)
	assert.InDelta(t, 60_000.0, l.Cash(), 1e-9)

	p, ok := l.Position("VOO")
	require.True(t, ok)
	assert.Equal(t, Long, p.Side)
	assert.Equal(t, 100.0, p.Units)
	assert.Equal(t, 390.0, p.Stop)
	assert.Equal(t, 1, l.OpenCount())
}

func TestOpenShortReceivesProceeds(t *testing.T) {
	t.Parallel()

	l := New(100_000)

	rec, err := l.Open("VOO", Short, 100, 400, t0, 410, "signal")
	require.NoError(t, err)

	assert.Equal(t, -100.0, rec.Units)
	assert.InDelta(t, 140_000.0, l.Cash(), 1e-9)
}

func TestOpenRejectsDuplicateAndBadUnits(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("VOO", Long, 10, 400, t0, 0, "signal")
	require.NoError(t, err)

	_, err = l.Open("VOO", Long, 10, 405, t0, 0, "signal")
	assert.ErrorIs(t, err, ErrPositionExists)

	_, err = l.Open("QQQ", Long, 0, 400, t0, 0, "signal")
	assert.Error(t, err)
	_, err = l.Open("QQQ", Long, -5, 400, t0, 0, "signal")
	assert.Error(t, err)
}

func TestCloseRealizesProfit(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("VOO", Long, 100, 400, t0, 0, "signal")
	require.NoError(t, err)

	rec, err := l.CloseAt("VOO", 410, t0.AddDate(0, 0, 5), "signal")
	require.NoError(t, err)

	assert.Equal(t, "T-000002", rec.ID)
	assert.Equal(t, Close, rec.Action)
	assert.InDelta(t, 1000.0, rec.RealizedPL, 1e-9)
	assert.InDelta(t, 101_000.0, l.Cash(), 1e-9)
	assert.Equal(t, 0, l.OpenCount())

	_, err = l.CloseAt("VOO", 410, t0, "signal")
	assert.ErrorIs(t, err, ErrNoPosition)
}

func TestCloseShortRealizesProfit(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("VOO", Short, 100, 400, t0, 0, "signal")
	require.NoError(t, err)

	rec, err := l.CloseAt("VOO", 390, t0.AddDate(0, 0, 1), "signal")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, rec.RealizedPL, 1e-9)
	assert.InDelta(t, 101_000.0, l.Cash(), 1e-9)
}

func TestEquityMarksOpenPositions(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("VOO", Long, 100, 400, t0, 0, "signal")
	require.NoError(t, err)

	eq, err := l.Equity(map[string]float64{"VOO": 405})
	require.NoError(t, err)
	assert.InDelta(t, 100_500.0, eq, 1e-9)

	// Missing mark is an error, not a silent zero.
	_, err = l.Equity(map[string]float64{"QQQ": 300})
	assert.ErrorIs(t, err, ErrNoMark)
}

func TestSetStop(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("VOO", Long, 10, 400, t0, 390, "signal")
	require.NoError(t, err)

	require.NoError(t, l.SetStop("VOO", 395))
	p, _ := l.Position("VOO")
	assert.Equal(t, 395.0, p.Stop)

	assert.ErrorIs(t, l.SetStop("QQQ", 10), ErrNoPosition)
}

func TestTradeIDsAreSequential(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	for i, instr := range []string{"A", "B", "C"} {
		_, err := l.Open(instr, Long, 1, 100, t0.AddDate(0, 0, i), 0, "signal")
		require.NoError(t, err)
	}

	trades := l.Trades()
	require.Len(t, trades, 3)
	assert.Equal(t, "T-000001", trades[0].ID)
	assert.Equal(t, "T-000002", trades[1].ID)
	assert.Equal(t, "T-000003", trades[2].ID)
}

func TestOpenPairAtomic(t *testing.T) {
	t.Parallel()

	l := New(100_000)

	rec, err := l.OpenPair(
		Leg{Instrument: "AAPL", Side: Long, Units: 100, Price: 150},
		Leg{Instrument: "QQQ", Side: Short, Units: 30, Price: 400},
		t0, "spread",
	)
	require.NoError(t, err)

	assert.True(t, rec.IsPair())
	assert.Equal(t, 100.0, rec.Units)
	assert.Equal(t, -30.0, rec.Units2)
	assert.Equal(t, 2, l.OpenCount())

	// Long leg spends 15000, short leg receives 12000.
	assert.InDelta(t, 97_000.0, l.Cash(), 1e-9)

	pa, ok := l.Position("AAPL")
	require.True(t, ok)
	pb, ok := l.Position("QQQ")
	require.True(t, ok)
	assert.NotEmpty(t, pa.PairID)
	assert.Equal(t, pa.PairID, pb.PairID)
}

func TestOpenPairRejectsWithoutPartialFill(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("QQQ", Long, 1, 400, t0, 0, "signal")
	require.NoError(t, err)
	cash := l.Cash()

	// Second leg collides with the open position: nothing fills.
	_, err = l.OpenPair(
		Leg{Instrument: "AAPL", Side: Long, Units: 100, Price: 150},
		Leg{Instrument: "QQQ", Side: Short, Units: 30, Price: 400},
		t0, "spread",
	)
	assert.ErrorIs(t, err, ErrPositionExists)
	assert.Equal(t, 1, l.OpenCount())
	assert.Equal(t, cash, l.Cash())

	// Same instrument twice is not a pair.
	_, err = l.OpenPair(
		Leg{Instrument: "AAPL", Side: Long, Units: 100, Price: 150},
		Leg{Instrument: "AAPL", Side: Short, Units: 100, Price: 150},
		t0, "spread",
	)
	assert.Error(t, err)
}

func TestClosePairCombinedPL(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.OpenPair(
		Leg{Instrument: "AAPL", Side: Long, Units: 100, Price: 150},
		Leg{Instrument: "QQQ", Side: Short, Units: 30, Price: 400},
		t0, "spread",
	)
	require.NoError(t, err)

	// Long leg +500, short leg +300.
	rec, err := l.ClosePair("AAPL", "QQQ", 155, 390, t0.AddDate(0, 0, 3), "reversion")
	require.NoError(t, err)

	assert.True(t, rec.IsPair())
	assert.InDelta(t, 800.0, rec.RealizedPL, 1e-9)
	assert.Equal(t, 0, l.OpenCount())
	assert.InDelta(t, 100_800.0, l.Cash(), 1e-9)
}

func TestClosePairNakedLeg(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.Open("AAPL", Long, 100, 150, t0, 0, "signal")
	require.NoError(t, err)

	// One open, one missing: fatal consistency error.
	_, err = l.ClosePair("AAPL", "QQQ", 150, 400, t0, "reversion")
	assert.ErrorIs(t, err, ErrNakedLeg)

	// Both open but not the same pair.
	_, err = l.Open("QQQ", Short, 30, 400, t0, 0, "signal")
	require.NoError(t, err)
	_, err = l.ClosePair("AAPL", "QQQ", 150, 400, t0, "reversion")
	assert.ErrorIs(t, err, ErrNakedLeg)

	// Neither open.
	_, err = l.ClosePair("X", "Y", 1, 1, t0, "reversion")
	assert.ErrorIs(t, err, ErrNoPosition)
}

func TestCloseAtRejectsPairLeg(t *testing.T) {
	t.Parallel()

	l := New(100_000)
	_, err := l.OpenPair(
		Leg{Instrument: "AAPL", Side: Long, Units: 100, Price: 150},
		Leg{Instrument: "QQQ", Side: Short, Units: 30, Price: 400},
		t0, "spread",
	)
	require.NoError(t, err)

	_, err = l.CloseAt("AAPL", 155, t0, "signal")
	assert.ErrorIs(t, err, ErrNakedLeg)
	assert.Equal(t, 2, l.OpenCount(), "both legs stay open")
}

func TestPositionHelpers(t *testing.T) {
	t.Parallel()

	long := Position{Side: Long, Units: 10, EntryPrice: 100}
	assert.Equal(t, 10.0, long.Signed())
	assert.InDelta(t, 50.0, long.UnrealizedPL(105), 1e-12)

	short := Position{Side: Short, Units: 10, EntryPrice: 100}
	assert.Equal(t, -10.0, short.Signed())
	assert.InDelta(t, 50.0, short.UnrealizedPL(95), 1e-12)

	assert.Equal(t, "Long", Long.String())
	assert.Equal(t, "Short", Short.String())
	assert.Equal(t, 1, Long.Dir())
	assert.Equal(t, -1, Short.Dir())
}

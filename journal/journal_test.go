package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/quant/analytics"
	"github.com/rustyeddy/quant/ledger"
)

var t0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func sampleTrade(id string, action ledger.Action, pl float64) ledger.TradeRecord {
	return ledger.TradeRecord{
		ID:         id,
		Time:       t0,
		Action:     action,
		Reason:     "Signal:OpenLong",
		Instrument: "VOO",
		Price:      400,
		Units:      100,
		RealizedPL: pl,
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	var j Journal = Nop{}
	assert.NoError(t, j.RecordTrade(ledger.TradeRecord{}))
	assert.NoError(t, j.RecordEquity(analytics.EquityPoint{}))
	assert.NoError(t, j.Close())
}

func TestCSVJournal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade("T-000001", ledger.Open, 0)))
	require.NoError(t, j.RecordTrade(sampleTrade("T-000002", ledger.Close, 250)))
	require.NoError(t, j.RecordEquity(analytics.EquityPoint{Time: t0, Equity: 100_000}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()
	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "header plus two fills")
	assert.Equal(t, "trade_id", rows[0][0])
	assert.Equal(t, "T-000001", rows[1][0])
	assert.Equal(t, "Open", rows[1][2])
	assert.Equal(t, "Close", rows[2][2])
	assert.Equal(t, "250.000000", rows[2][10])

	ef, err := os.Open(equityPath)
	require.NoError(t, err)
	defer ef.Close()
	erows, err := csv.NewReader(ef).ReadAll()
	require.NoError(t, err)
	require.Len(t, erows, 2)
	assert.Equal(t, "100000.000000", erows[1][1])
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "quant.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordTrade(sampleTrade("T-000001", ledger.Open, 0)))
	cl := sampleTrade("T-000002", ledger.Close, 500)
	cl.Time = t0.AddDate(0, 0, 5)
	require.NoError(t, j.RecordTrade(cl))
	require.NoError(t, j.RecordEquity(analytics.EquityPoint{Time: t0, Equity: 100_000}))

	// Only closes inside the window come back.
	trades, err := j.ListTradesBetween(t0, t0.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "T-000002", trades[0].ID)
	assert.Equal(t, ledger.Close, trades[0].Action)
	assert.InDelta(t, 500.0, trades[0].RealizedPL, 1e-9)

	trades, err = j.ListTradesBetween(t0.AddDate(0, 0, 10), t0.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestSQLiteRuns(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "quant.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	first := Run{
		RunID:            "01RUNAAAAAAAAAAAAAAAAAAAAA",
		Created:          t0,
		Strategy:         "ema-cross",
		Instrument:       "VOO",
		Start:            t0,
		End:              t0.AddDate(0, 1, 0),
		InitialEquity:    100_000,
		FinalEquity:      104_000,
		CumulativeReturn: 0.04,
		MaxDrawdown:      -0.02,
		Trades:           6,
		Wins:             4,
		Losses:           2,
		WinRate:          4.0 / 6.0,
	}
	second := first
	second.RunID = "01RUNBBBBBBBBBBBBBBBBBBBBB"
	second.Created = t0.AddDate(0, 0, 1)
	second.Strategy = "mean-reversion"

	require.NoError(t, j.RecordRun(first))
	require.NoError(t, j.RecordRun(second))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "mean-reversion", runs[0].Strategy, "most recent first")
	assert.Equal(t, "ema-cross", runs[1].Strategy)
	assert.InDelta(t, 0.04, runs[1].CumulativeReturn, 1e-9)
	assert.Equal(t, 6, runs[1].Trades)

	// Run IDs are unique.
	assert.Error(t, j.RecordRun(first))
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quant.sqlite")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordRun(Run{RunID: "01RUNCCCCCCCCCCCCCCCCCCCCC", Created: t0}))
	require.NoError(t, j.Close())

	j, err = NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

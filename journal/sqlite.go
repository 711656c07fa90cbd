package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/quant/analytics"
	"github.com/rustyeddy/quant/ledger"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t ledger.TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, time, action, reason, instrument, price, units,
		 instrument2, price2, units2, realized_pl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Time, t.Action.String(), t.Reason, t.Instrument, t.Price, t.Units,
		t.Instrument2, t.Price2, t.Units2, t.RealizedPL,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e analytics.EquityPoint) error {
	_, err := j.db.Exec(`INSERT INTO equity (time, equity) VALUES (?, ?)`,
		e.Time, e.Equity)
	return err
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, instrument, start_time, end_time,
		 initial_equity, final_equity, cumulative_return, annualized_return,
		 max_drawdown, sharpe, trades, wins, losses, win_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Instrument, r.Start, r.End,
		r.InitialEquity, r.FinalEquity, r.CumulativeReturn, r.AnnualizedReturn,
		r.MaxDrawdown, r.Sharpe, r.Trades, r.Wins, r.Losses, r.WinRate,
	)
	return err
}

// ListRuns returns run summaries, most recent first.
func (j *SQLiteJournal) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, instrument, start_time, end_time,
		       initial_equity, final_equity, cumulative_return, annualized_return,
		       max_drawdown, sharpe, trades, wins, losses, win_rate
		FROM runs ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Created, &r.Strategy, &r.Instrument,
			&r.Start, &r.End, &r.InitialEquity, &r.FinalEquity,
			&r.CumulativeReturn, &r.AnnualizedReturn, &r.MaxDrawdown,
			&r.Sharpe, &r.Trades, &r.Wins, &r.Losses, &r.WinRate); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListTradesBetween returns close fills in [start, end).
func (j *SQLiteJournal) ListTradesBetween(start, end time.Time) ([]ledger.TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, action, reason, instrument, price, units,
		       instrument2, price2, units2, realized_pl
		FROM trades
		WHERE action = 'Close' AND time >= ? AND time < ?
		ORDER BY time`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.TradeRecord
	for rows.Next() {
		var t ledger.TradeRecord
		var action string
		if err := rows.Scan(&t.ID, &t.Time, &action, &t.Reason, &t.Instrument,
			&t.Price, &t.Units, &t.Instrument2, &t.Price2, &t.Units2,
			&t.RealizedPL); err != nil {
			return nil, err
		}
		if action == "Close" {
			t.Action = ledger.Close
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

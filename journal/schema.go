package journal

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	action TEXT NOT NULL,
	reason TEXT NOT NULL,
	instrument TEXT NOT NULL,
	price REAL NOT NULL,
	units REAL NOT NULL,
	instrument2 TEXT NOT NULL DEFAULT '',
	price2 REAL NOT NULL DEFAULT 0,
	units2 REAL NOT NULL DEFAULT 0,
	realized_pl REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	equity REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	instrument TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	initial_equity REAL NOT NULL,
	final_equity REAL NOT NULL,
	cumulative_return REAL NOT NULL,
	annualized_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	sharpe REAL NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	win_rate REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
`

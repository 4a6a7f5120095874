package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	dataset TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	bars INTEGER NOT NULL,
	params TEXT NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	return_pct REAL NOT NULL,
	max_dd_pct REAL NOT NULL,
	profit_factor REAL NOT NULL,
	final_stance TEXT NOT NULL,
	results_file TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_time DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	exit_time DATETIME NOT NULL,
	exit_price REAL NOT NULL,
	tp REAL NOT NULL,
	sl REAL NOT NULL,
	reason TEXT NOT NULL,
	return_pct REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS decisions (
	run_id TEXT NOT NULL,
	bar INTEGER NOT NULL,
	time DATETIME NOT NULL,
	close REAL NOT NULL,
	action INTEGER NOT NULL,
	trade_type TEXT NOT NULL,
	tp REAL NOT NULL,
	sl REAL NOT NULL,
	stance TEXT NOT NULL,
	high_vol BOOLEAN NOT NULL,
	exit_reason TEXT NOT NULL,
	PRIMARY KEY (run_id, bar)
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, entry_time);
`

package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, dataset, start_time, end_time, bars, params,
		 trades, wins, losses, win_rate, return_pct, max_dd_pct, profit_factor,
		 final_stance, results_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Dataset, r.Start, r.End, r.Bars, string(r.Params),
		r.Trades, r.Wins, r.Losses, r.WinRate, r.ReturnPct, r.MaxDDPct, r.ProfitFactor,
		r.FinalStance, r.ResultsFile,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, side, entry_time, entry_price, exit_time, exit_price, tp, sl, reason, return_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Side, t.EntryTime, t.EntryPrice,
		t.ExitTime, t.ExitPrice, t.TP, t.SL, t.Reason, t.ReturnPct,
	)
	return err
}

// RecordDecisions stores a run's decisions in one transaction.
func (j *SQLite) RecordDecisions(runID string, ds []DecisionRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO decisions
		(run_id, bar, time, close, action, trade_type, tp, sl, stance, high_vol, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range ds {
		if _, err := stmt.Exec(
			runID, d.Bar, d.Time, d.Close, d.Action, d.TradeType,
			d.TP, d.SL, d.Stance, d.HighVol, d.Exit,
		); err != nil {
			return fmt.Errorf("decision %d: %w", d.Bar, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

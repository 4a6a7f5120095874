package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `run_id, created, dataset, start_time, end_time, bars, params,
	trades, wins, losses, win_rate, return_pct, max_dd_pct, profit_factor,
	final_stance, results_file`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		r      RunRecord
		params string
	)
	err := s.Scan(
		&r.RunID,
		&r.Created,
		&r.Dataset,
		&r.Start,
		&r.End,
		&r.Bars,
		&params,
		&r.Trades,
		&r.Wins,
		&r.Losses,
		&r.WinRate,
		&r.ReturnPct,
		&r.MaxDDPct,
		&r.ProfitFactor,
		&r.FinalStance,
		&r.ResultsFile,
	)
	r.Params = []byte(params)
	return r, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (j *SQLite) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesByRun returns a run's trades in entry order.
func (j *SQLite) ListTradesByRun(ctx context.Context, runID string) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT trade_id, run_id, side, entry_time, entry_price, exit_time, exit_price, tp, sl, reason, return_pct
		FROM trades
		WHERE run_id = ?
		ORDER BY entry_time ASC, trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.RunID,
			&rec.Side,
			&rec.EntryTime,
			&rec.EntryPrice,
			&rec.ExitTime,
			&rec.ExitPrice,
			&rec.TP,
			&rec.SL,
			&rec.Reason,
			&rec.ReturnPct,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDecisionsByRun returns a run's per-bar decisions in bar order.
func (j *SQLite) ListDecisionsByRun(ctx context.Context, runID string) ([]DecisionRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, bar, time, close, action, trade_type, tp, sl, stance, high_vol, exit_reason
		FROM decisions
		WHERE run_id = ?
		ORDER BY bar ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DecisionRecord
	for rows.Next() {
		var rec DecisionRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Bar,
			&rec.Time,
			&rec.Close,
			&rec.Action,
			&rec.TradeType,
			&rec.TP,
			&rec.SL,
			&rec.Stance,
			&rec.HighVol,
			&rec.Exit,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

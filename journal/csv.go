package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends trades and run summaries to two CSV files, writing
// the header row only when a file is new or empty. Decisions are not kept:
// the results file already has one row per bar.
type CSVJournal struct {
	trades *csv.Writer
	runs   *csv.Writer
	tf, rf *os.File
}

var (
	tradeHeader = []string{"trade_id", "run_id", "side", "entry_time", "entry_price", "exit_time", "exit_price", "tp", "sl", "reason", "return_pct"}
	runHeader   = []string{"run_id", "created", "dataset", "start", "end", "bars", "trades", "wins", "losses", "win_rate", "return_pct", "max_dd_pct", "profit_factor", "final_stance", "results_file"}
)

func NewCSV(tradesPath, runsPath string) (*CSVJournal, error) {
	tf, tw, err := openCSV(tradesPath, tradeHeader)
	if err != nil {
		return nil, err
	}
	rf, rw, err := openCSV(runsPath, runHeader)
	if err != nil {
		tf.Close()
		return nil, err
	}
	return &CSVJournal{trades: tw, runs: rw, tf: tf, rf: rf}, nil
}

func openCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	fh, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	info, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, nil, err
	}

	w := csv.NewWriter(fh)
	if info.Size() == 0 {
		err := w.Write(header)
		if err == nil {
			w.Flush()
			err = w.Error()
		}
		if err != nil {
			fh.Close()
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return fh, w, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Side,
		t.EntryTime.UTC().Format(time.RFC3339),
		f(t.EntryPrice),
		t.ExitTime.UTC().Format(time.RFC3339),
		f(t.ExitPrice),
		f(t.TP),
		f(t.SL),
		t.Reason,
		f(t.ReturnPct),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		r.Dataset,
		r.Start.UTC().Format(time.RFC3339),
		r.End.UTC().Format(time.RFC3339),
		strconv.Itoa(r.Bars),
		strconv.Itoa(r.Trades),
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		f(r.WinRate),
		f(r.ReturnPct),
		f(r.MaxDDPct),
		f(r.ProfitFactor),
		r.FinalStance,
		r.ResultsFile,
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordDecisions(string, []DecisionRecord) error {
	return nil
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	if err := j.rf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// Package journal records backtest runs: the per-bar results file handed
// to the gateway, and a run/trade/decision history in CSV or SQLite.
package journal

import (
	"errors"
	"time"

	"github.com/rustyeddy/regime/strategy"
)

var ErrNotFound = errors.New("not found")

// RunRecord is one backtest run and its summary.
type RunRecord struct {
	RunID   string
	Created time.Time
	Dataset string

	Start time.Time
	End   time.Time
	Bars  int

	Params []byte // JSON encoded parameter set

	Trades       int
	Wins         int
	Losses       int
	WinRate      float64
	ReturnPct    float64
	MaxDDPct     float64
	ProfitFactor float64

	FinalStance string
	ResultsFile string
}

// SetSummary copies the trade statistics into the run.
func (r *RunRecord) SetSummary(s strategy.Summary) {
	r.Trades = s.Trades
	r.Wins = s.Wins
	r.Losses = s.Losses
	r.WinRate = s.WinRate
	r.ReturnPct = s.ReturnPct
	r.MaxDDPct = s.MaxDrawdownPct
	r.ProfitFactor = s.ProfitFactor
}

type TradeRecord struct {
	TradeID string
	RunID   string
	Side    string

	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64

	TP        float64
	SL        float64
	Reason    string
	ReturnPct float64
}

func NewTradeRecord(runID string, t strategy.Trade) TradeRecord {
	return TradeRecord{
		TradeID:    t.ID,
		RunID:      runID,
		Side:       t.Side.String(),
		EntryTime:  t.EntryTime,
		EntryPrice: t.EntryPrice,
		ExitTime:   t.ExitTime,
		ExitPrice:  t.ExitPrice,
		TP:         t.TP,
		SL:         t.SL,
		Reason:     string(t.Reason),
		ReturnPct:  t.ReturnPct,
	}
}

// DecisionRecord is one bar of the state machine's output.
type DecisionRecord struct {
	RunID     string
	Bar       int
	Time      time.Time
	Close     float64
	Action    int
	TradeType string
	TP        float64
	SL        float64
	Stance    string
	HighVol   bool
	Exit      string
}

func NewDecisionRecords(runID string, ds []strategy.Decision) []DecisionRecord {
	out := make([]DecisionRecord, len(ds))
	for i, d := range ds {
		out[i] = DecisionRecord{
			RunID:     runID,
			Bar:       d.Index,
			Time:      d.Bar.Time,
			Close:     d.Bar.Close,
			Action:    int(d.Action),
			TradeType: d.Action.Label(),
			TP:        d.TP,
			SL:        d.SL,
			Stance:    d.Stance.String(),
			HighVol:   d.HighVol,
			Exit:      string(d.Exit),
		}
	}
	return out
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordDecisions(runID string, ds []DecisionRecord) error
	Close() error
}

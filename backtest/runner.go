// Package backtest drives one complete run: indicators, the position state
// machine, the results file, the journal and the optional gateway upload.
package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/regime/config"
	"github.com/rustyeddy/regime/gateway"
	"github.com/rustyeddy/regime/indicators"
	"github.com/rustyeddy/regime/journal"
	"github.com/rustyeddy/regime/market"
	"github.com/rustyeddy/regime/metrics"
	"github.com/rustyeddy/regime/pkg/id"
	"github.com/rustyeddy/regime/strategy"
)

// Submitter uploads a results file for remote evaluation.
type Submitter interface {
	Backtest(ctx context.Context, req gateway.Request) ([]gateway.Result, error)
}

// Runner holds everything a run needs. Only Params is required; the
// remaining collaborators are skipped when unset.
type Runner struct {
	Params config.Params

	Journal journal.Journal
	Results string // results file path

	Gateway  Submitter
	Account  string
	Leverage int

	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Report is what a run produced.
type Report struct {
	RunID   string
	Created time.Time
	Dataset string
	Start   time.Time
	End     time.Time
	Bars    int

	Summary   strategy.Summary
	Final     strategy.Stance
	Decisions []strategy.Decision
	Trades    []strategy.Trade

	ResultsFile    string
	GatewayResults []gateway.Result
}

// Run processes the series. A gateway failure is returned together with
// the report; the decisions it holds remain valid.
func (r *Runner) Run(ctx context.Context, s *market.Series) (*Report, error) {
	log := r.Logger

	began := time.Now()
	frame, err := indicators.Compute(s, r.Params)
	if err != nil {
		return nil, err
	}
	res := strategy.Run(frame, r.Params)
	r.Metrics.ObservePipeline(time.Since(began))
	r.Metrics.ObserveRun(res)

	for i := range res.Trades {
		res.Trades[i].ID = id.New()
	}

	rep := &Report{
		RunID:       id.New(),
		Created:     time.Now().UTC(),
		Dataset:     s.Name,
		Start:       s.Start(),
		End:         s.End(),
		Bars:        s.Len(),
		Summary:     strategy.Summarize(res.Trades),
		Final:       res.Final,
		Decisions:   res.Decisions,
		Trades:      res.Trades,
		ResultsFile: r.Results,
	}
	log = log.With().Str("run", rep.RunID).Logger()

	for _, d := range res.Decisions {
		if d.Exit != "" && d.Exit != strategy.Reversal {
			log.Debug().Int("bar", d.Index).Str("reason", string(d.Exit)).Msg("exit")
		}
		if d.Entered() {
			log.Debug().
				Int("bar", d.Index).
				Str("type", d.Action.Label()).
				Bool("high_vol", d.HighVol).
				Float64("tp", d.TP).
				Float64("sl", d.SL).
				Msg("entry")
		}
	}
	log.Info().
		Str("dataset", rep.Dataset).
		Int("bars", rep.Bars).
		Int("trades", rep.Summary.Trades).
		Str("stance", rep.Final.String()).
		Msg("run complete")

	if r.Results != "" {
		if err := journal.WriteResultsFile(r.Results, res.Decisions); err != nil {
			return rep, fmt.Errorf("write results: %w", err)
		}
	}

	if r.Journal != nil {
		if err := r.record(rep); err != nil {
			return rep, fmt.Errorf("journal: %w", err)
		}
	}

	if r.Gateway != nil {
		if r.Results == "" {
			return rep, fmt.Errorf("gateway: a results file is required for submission")
		}
		out, err := r.Gateway.Backtest(ctx, gateway.Request{
			AccountID: r.Account,
			FilePath:  r.Results,
			Leverage:  r.Leverage,
		})
		r.Metrics.ObserveGateway(err)
		if err != nil {
			log.Error().Err(err).Msg("gateway submission failed")
			return rep, fmt.Errorf("gateway: %w", err)
		}
		rep.GatewayResults = out
		log.Info().Int("entries", len(out)).Msg("gateway results received")
	}

	return rep, nil
}

func (r *Runner) record(rep *Report) error {
	params, err := json.Marshal(r.Params)
	if err != nil {
		return err
	}

	run := journal.RunRecord{
		RunID:       rep.RunID,
		Created:     rep.Created,
		Dataset:     rep.Dataset,
		Start:       rep.Start,
		End:         rep.End,
		Bars:        rep.Bars,
		Params:      params,
		FinalStance: rep.Final.String(),
		ResultsFile: rep.ResultsFile,
	}
	run.SetSummary(rep.Summary)
	if err := r.Journal.RecordRun(run); err != nil {
		return err
	}

	for _, t := range rep.Trades {
		if err := r.Journal.RecordTrade(journal.NewTradeRecord(rep.RunID, t)); err != nil {
			return err
		}
	}
	return r.Journal.RecordDecisions(rep.RunID, journal.NewDecisionRecords(rep.RunID, rep.Decisions))
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/regime/backtest"
	"github.com/rustyeddy/regime/config"
	"github.com/rustyeddy/regime/gateway"
	"github.com/rustyeddy/regime/journal"
	"github.com/rustyeddy/regime/market"
	"github.com/rustyeddy/regime/metrics"
)

func newRunCmd(rc *RootConfig) *cobra.Command {
	var (
		dataPath    string
		outPath     string
		submit      bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute indicators and decisions for a bar series, journal them and optionally submit the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rc.ConfigPath)
			if err != nil {
				return err
			}

			if dataPath != "" {
				cfg.Data.Path = dataPath
			}
			if outPath != "" {
				cfg.Output.ResultsFile = outPath
			}
			if submit {
				cfg.Gateway.Enabled = true
			}
			if cmd.Flags().Changed("db") {
				cfg.Journal.Type = "sqlite"
				cfg.Journal.DBPath = rc.DBPath
			}
			if metricsFile != "" {
				cfg.Metrics.Textfile = metricsFile
			}
			if cfg.Data.Path == "" {
				return fmt.Errorf("--data is required")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			series, err := market.LoadCSV(cfg.Data.Path)
			if err != nil {
				return err
			}

			j, err := openJournal(cfg.Journal)
			if err != nil {
				return err
			}
			if j != nil {
				defer j.Close()
			}

			m := metrics.New()
			runner := &backtest.Runner{
				Params:   cfg.Params,
				Journal:  j,
				Results:  cfg.Output.ResultsFile,
				Account:  cfg.Gateway.AccountID,
				Leverage: cfg.Gateway.Leverage,
				Metrics:  m,
				Logger:   rc.Logger,
			}
			if cfg.Gateway.Enabled {
				timeout, _ := cfg.Gateway.ParseTimeout()
				runner.Gateway = gateway.NewClient(cfg.Gateway.URL, cfg.Gateway.Token, timeout)
			}

			rep, runErr := runner.Run(cmd.Context(), series)
			if rep != nil {
				backtest.PrintReport(cmd.OutOrStdout(), rep)
			}

			if cfg.Metrics.Textfile != "" {
				if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					rc.Logger.Error().Err(err).Str("path", cfg.Metrics.Textfile).Msg("write metrics")
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Bar series CSV (.csv or .csv.xz)")
	cmd.Flags().StringVar(&outPath, "out", "", "Results file written for the gateway")
	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the results file to the backtest gateway")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")

	return cmd
}

// openJournal returns nil for the "none" journal type.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.RunsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, nil
	}
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/regime/journal"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect runs recorded in the SQLite journal",
	}

	var limit int
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN ID\tCREATED\tDATASET\tBARS\tTRADES\tRETURN %\tSTANCE")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.2f\t%s\n",
					r.RunID, r.Created.UTC().Format("2006-01-02 15:04"), r.Dataset,
					r.Bars, r.Trades, r.ReturnPct, r.FinalStance)
			}
			return tw.Flush()
		},
	}
	runsCmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")

	tradesCmd := &cobra.Command{
		Use:   "trades <run-id>",
		Short: "Print a run's trades as Org-mode entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			trades, err := j.ListTradesByRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradesOrg(trades))
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a run summary and its trades as Org-mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			run, err := j.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			trades, err := j.ListTradesByRun(cmd.Context(), run.RunID)
			if err != nil {
				return err
			}

			org, err := journal.FormatRunOrg(run)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, org)
			if len(trades) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, journal.FormatTradesOrg(trades))
			}
			return nil
		},
	}

	cmd.AddCommand(runsCmd, tradesCmd, showCmd)
	return cmd
}

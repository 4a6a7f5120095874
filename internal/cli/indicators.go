package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/regime/config"
	"github.com/rustyeddy/regime/indicators"
	"github.com/rustyeddy/regime/market"
)

func newIndicatorsCmd(rc *RootConfig) *cobra.Command {
	var (
		dataPath string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Dump every indicator column and vote of a bar series as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" {
				return fmt.Errorf("--data is required")
			}
			cfg, err := config.Load(rc.ConfigPath)
			if err != nil {
				return err
			}

			series, err := market.LoadCSV(dataPath)
			if err != nil {
				return err
			}
			frame, err := indicators.Compute(series, cfg.Params)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				fh, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer fh.Close()
				w = fh
			}
			if err := frame.WriteCSV(w); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
			rc.Logger.Info().Str("dataset", series.Name).Int("bars", frame.Len()).Msg("indicators written")
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Bar series CSV (.csv or .csv.xz)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output CSV (stdout when empty)")

	return cmd
}

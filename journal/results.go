package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rustyeddy/regime/strategy"
)

// ResultsHeader is the record layout uploaded to the backtest gateway.
// Indicator columns are not part of it.
var ResultsHeader = []string{
	"timestamp", "open", "high", "low", "close", "volume",
	"signals", "trade_type", "TP", "SL",
}

// ResultsTimeLayout is the timestamp format of the results file.
const ResultsTimeLayout = "2006-01-02 15:04:05"

// WriteResults writes one row per decision.
func WriteResults(w io.Writer, ds []strategy.Decision) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultsHeader); err != nil {
		return err
	}
	for _, d := range ds {
		b := d.Bar
		err := cw.Write([]string{
			b.Time.UTC().Format(ResultsTimeLayout),
			g(b.Open), g(b.High), g(b.Low), g(b.Close), g(b.Volume),
			strconv.Itoa(int(d.Action)),
			d.Action.Label(),
			g(d.TP), g(d.SL),
		})
		if err != nil {
			return fmt.Errorf("bar %d: %w", d.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsFile writes the results file at path, replacing it.
func WriteResultsFile(path string, ds []strategy.Decision) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteResults(fh, ds); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func g(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

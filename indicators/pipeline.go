package indicators

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/rustyeddy/regime/config"
	"github.com/rustyeddy/regime/market"
)

// Frame is a bar series augmented with every indicator column and vote.
type Frame struct {
	Bars []market.Bar

	Bands
	TR  Column
	ATR Column
	Directional
	Adaptive
	Strength
}

// Snapshot is the view of one bar the position state machine consumes.
type Snapshot struct {
	Index int
	Bar   market.Bar
	ATR   Num

	BB   Vote
	ADX  Vote
	ADXR Vote
	KAMA Vote
	TSI  Vote
}

// Compute validates the series and runs the indicator pipeline. Families
// that do not depend on each other are computed concurrently; each one
// walks its bars in index order. Only current and past bars contribute to
// any value.
func Compute(s *market.Series, p config.Params) (*Frame, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("indicators: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("indicators: %w", err)
	}

	f := &Frame{Bars: s.Bars}
	closes := Floats(s.Closes())

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { f.Bands = Bollinger(closes, p.Bollinger) })
	run(func() {
		f.TR = TrueRange(f.Bars)
		f.ATR = ATR(f.TR, p.ATR.Period)
		f.Directional = DMI(f.Bars, f.ATR, p.ADX)
	})
	run(func() { f.Adaptive = KAMA(closes, p.KAMA) })
	run(func() { f.Strength = TSI(closes, p.TSI) })
	wg.Wait()

	return f, nil
}

func (f *Frame) Len() int { return len(f.Bars) }

// Row returns the state machine's view of bar i.
func (f *Frame) Row(i int) Snapshot {
	return Snapshot{
		Index: i,
		Bar:   f.Bars[i],
		ATR:   f.ATR[i],
		BB:    f.Bands.Signal[i],
		ADX:   f.ADXSignal[i],
		ADXR:  f.ADXRSignal[i],
		KAMA:  f.Adaptive.Signal[i],
		TSI:   f.Strength.Signal[i],
	}
}

// FrameHeader is the column layout written by WriteCSV.
var FrameHeader = []string{
	"timestamp", "open", "high", "low", "close",
	"MB", "UB", "LB", "BB_signal",
	"TR", "ATR",
	"+DI", "-DI", "DX", "ADX", "ADX_signal", "ADXR", "ADXR_signal",
	"KAMA", "KAMA_signal",
	"TSI", "Signal", "TSI_signal",
}

// WriteCSV dumps every bar with its indicator columns. Undefined values
// are written as empty fields.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FrameHeader); err != nil {
		return err
	}
	for i, b := range f.Bars {
		row := []string{
			b.Time.UTC().Format(time.RFC3339),
			num(b.Open), num(b.High), num(b.Low), num(b.Close),
			f.Middle[i].String(), f.Upper[i].String(), f.Lower[i].String(), f.Bands.Signal[i].String(),
			f.TR[i].String(), f.ATR[i].String(),
			f.PlusDI[i].String(), f.MinusDI[i].String(), f.DX[i].String(),
			f.ADX[i].String(), f.ADXSignal[i].String(), f.ADXR[i].String(), f.ADXRSignal[i].String(),
			f.KAMA[i].String(), f.Adaptive.Signal[i].String(),
			f.TSI[i].String(), f.Line[i].String(), f.Strength.Signal[i].String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

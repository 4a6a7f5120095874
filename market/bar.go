// Package market holds the bar series the indicator pipeline and the
// position state machine operate on.
package market

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrEmptySeries  = errors.New("market: empty series")
	ErrOutOfOrder   = errors.New("market: timestamps not strictly increasing")
	ErrMalformedBar = errors.New("market: malformed bar")
)

// Bar is one OHLC observation for a fixed interval.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a complete, time-ordered bar history for a single instrument.
type Series struct {
	Name string
	Bars []Bar
}

func NewSeries(name string, bars []Bar) *Series {
	return &Series{Name: name, Bars: bars}
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Start and End return the first and last bar time. Both are zero for an
// empty series.
func (s *Series) Start() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.Bars[0].Time
}

func (s *Series) End() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].Time
}

// Closes returns the close column.
func (s *Series) Closes() []float64 {
	out := make([]float64, s.Len())
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Validate enforces the preconditions of the pipeline: at least one bar,
// finite positive prices and strictly increasing timestamps. OHLC ordering
// (high >= open/close >= low) is not checked.
func (s *Series) Validate() error {
	if s.Len() == 0 {
		return ErrEmptySeries
	}
	for i, b := range s.Bars {
		if err := b.validate(); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("bar %d (%s after %s): %w", i,
				b.Time.Format(time.RFC3339), s.Bars[i-1].Time.Format(time.RFC3339), ErrOutOfOrder)
		}
	}
	return nil
}

func (b Bar) validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrMalformedBar)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrMalformedBar, p.name, p.v)
		}
	}
	return nil
}

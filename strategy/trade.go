package strategy

import (
	"math"
	"time"
)

// Trade is one position from entry to exit.
type Trade struct {
	ID   string
	Side Stance

	EntryIndex int
	EntryTime  time.Time
	EntryPrice float64

	ExitIndex int
	ExitTime  time.Time
	ExitPrice float64

	TP     float64
	SL     float64
	Reason ExitReason

	ReturnPct float64
}

func (t Trade) returnPct() float64 {
	if t.EntryPrice == 0 {
		return 0
	}
	return float64(t.Side) * (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100
}

// Summary aggregates a trade list. Returns compound from one trade to the
// next with the full equity committed each time.
type Summary struct {
	Trades  int
	Wins    int
	Losses  int
	WinRate float64 // percent

	ReturnPct      float64
	MaxDrawdownPct float64

	// ProfitFactor is gross gains over gross losses, zero when there were
	// no losing trades.
	ProfitFactor float64
}

func Summarize(trades []Trade) Summary {
	s := Summary{Trades: len(trades)}
	if len(trades) == 0 {
		return s
	}

	equity, peak := 1.0, 1.0
	var gains, losses float64
	for _, t := range trades {
		switch {
		case t.ReturnPct > 0:
			s.Wins++
			gains += t.ReturnPct
		case t.ReturnPct < 0:
			s.Losses++
			losses -= t.ReturnPct
		}

		equity *= 1 + t.ReturnPct/100
		peak = math.Max(peak, equity)
		if dd := (peak - equity) / peak * 100; dd > s.MaxDrawdownPct {
			s.MaxDrawdownPct = dd
		}
	}

	s.WinRate = float64(s.Wins) / float64(s.Trades) * 100
	s.ReturnPct = (equity - 1) * 100
	if losses > 0 {
		s.ProfitFactor = gains / losses
	}
	return s
}

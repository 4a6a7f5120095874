// Package strategy turns indicator votes into position decisions.
//
// A Machine holds a single position that is FLAT, LONG or SHORT. Each bar
// first checks the open position's take-profit and stop-loss against the
// bar's range, then gates on ATR to pick the high or low volatility entry
// rules. Reversals close the opposite position and open the new one on the
// same bar.
package strategy

import (
	"time"

	"github.com/rustyeddy/regime/market"
)

// Stance is the position held after a bar has been processed.
type Stance int8

const (
	Short Stance = -1
	Flat  Stance = 0
	Long  Stance = 1
)

func (s Stance) String() string {
	switch s {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// Action is the signed entry code recorded for a bar.
type Action int8

const (
	ReverseToShort Action = -2 // LONG -> SHORT
	EnterShort     Action = -1 // FLAT -> SHORT
	Hold           Action = 0
	EnterLong      Action = 1 // FLAT -> LONG
	ReverseToLong  Action = 2 // SHORT -> LONG
)

// Label is the trade type recorded next to the action code. A reversal is
// named after the position it closes.
func (a Action) Label() string {
	switch a {
	case EnterLong:
		return "long"
	case EnterShort:
		return "short"
	case ReverseToLong:
		return "short_reversal"
	case ReverseToShort:
		return "long_reversal"
	default:
		return ""
	}
}

// ExitReason says why a position was closed.
type ExitReason string

const (
	TakeProfit ExitReason = "take_profit"
	StopLoss   ExitReason = "stop_loss"
	Reversal   ExitReason = "reversal"

	// StillOpen marks a position that was open when the data ran out. It is
	// valued at the last close.
	StillOpen ExitReason = "open"
)

// Decision is the per-bar output record.
type Decision struct {
	Index int
	Bar   market.Bar

	Action Action
	// TP and SL are the levels of the position opened on this bar, zero
	// when nothing was opened.
	TP float64
	SL float64

	Stance  Stance     // after the bar
	HighVol bool       // ATR above the threshold
	Exit    ExitReason // set when the bar closed a position
}

func (d Decision) Time() time.Time { return d.Bar.Time }

// Entered reports whether a position was opened on this bar.
func (d Decision) Entered() bool { return d.Action != Hold }

package indicators

import (
	"math"

	"github.com/rustyeddy/regime/market"
)

// TrueRange is max(high-low, |high-prev close|, |low-prev close|). It is
// undefined for the first bar, which has no previous close.
func TrueRange(bars []market.Bar) Column {
	out := make(Column, len(bars))
	for i := 1; i < len(bars); i++ {
		out[i] = Of(trueRange(bars[i], bars[i-1]))
	}
	return out
}

// ATR smooths the true range with center of mass period and emits a value
// once period true-range samples have been seen.
func ATR(tr Column, period int) Column {
	return EWM(tr, EWMOptions{
		Alpha:      Com(float64(period)),
		Adjust:     true,
		MinPeriods: period,
	})
}

// trueRange calculates the True Range for a bar given the previous bar
func trueRange(current, previous market.Bar) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

package indicators

import (
	"math"
	"time"

	"github.com/rustyeddy/regime/market"
)

var testStart = time.Date(2019, 9, 8, 0, 0, 0, 0, time.UTC)

func barAt(i int, o, h, l, c float64) market.Bar {
	return market.Bar{
		Time:  testStart.Add(time.Duration(i) * 72 * time.Hour),
		Open:  o,
		High:  h,
		Low:   l,
		Close: c,
	}
}

// linearBars rises by one every bar with a fixed two point range.
func linearBars(n int) []market.Bar {
	bars := make([]market.Bar, n)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = barAt(i, c-0.5, c+1, c-1, c)
	}
	return bars
}

func flatBars(n int) []market.Bar {
	bars := make([]market.Bar, n)
	for i := range bars {
		bars[i] = barAt(i, 100, 100, 100, 100)
	}
	return bars
}

// waveBars is a trending oscillation with no degenerate windows.
func waveBars(n int) []market.Bar {
	bars := make([]market.Bar, n)
	prev := 10000.0
	for i := range bars {
		c := 10000 + 800*math.Sin(float64(i)/4) + 15*float64(i)
		h := math.Max(c, prev) + 120 + 40*math.Cos(float64(i))
		l := math.Min(c, prev) - 110 - 30*math.Sin(float64(i)/2)
		bars[i] = barAt(i, prev, h, l, c)
		prev = c
	}
	return bars
}

func closesOf(bars []market.Bar) Column {
	return Floats(market.NewSeries("", bars).Closes())
}

func firstDefined(c Column) int {
	for i, n := range c {
		if n.Defined() {
			return i
		}
	}
	return -1
}

func firstNonZero(v []Vote) int {
	for i, x := range v {
		if x != Neutral {
			return i
		}
	}
	return -1
}

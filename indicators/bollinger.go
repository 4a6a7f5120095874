package indicators

import "github.com/rustyeddy/regime/config"

// Bands holds Bollinger bands over closes and their vote.
type Bands struct {
	Middle Column
	Upper  Column
	Lower  Column
	Signal []Vote
}

// Bollinger votes Bullish when close sits in the upper half of the bands
// while the middle band is above its own recent upper quantile, and
// Bearish in the mirrored case.
func Bollinger(closes Column, p config.BollingerParams) Bands {
	n := len(closes)
	b := Bands{
		Middle: RollingMean(closes, p.Window),
		Upper:  make(Column, n),
		Lower:  make(Column, n),
		Signal: make([]Vote, n),
	}
	sd := RollingStd(closes, p.Window)
	for i := 0; i < n; i++ {
		m, ok1 := b.Middle[i].Get()
		s, ok2 := sd[i].Get()
		if ok1 && ok2 {
			b.Upper[i] = Of(m + p.Width*s)
			b.Lower[i] = Of(m - p.Width*s)
		}
	}

	hi := RollingQuantile(b.Middle, p.TrendWindow, p.UpperQuantile)
	lo := RollingQuantile(b.Middle, p.TrendWindow, p.LowerQuantile)
	for i := 0; i < n; i++ {
		c, mb := closes[i], b.Middle[i]
		b.Signal[i] = classify(
			c.Gt(mb) && c.Le(b.Upper[i]) && mb.Gt(hi[i]),
			c.Lt(mb) && c.Ge(b.Lower[i]) && mb.Lt(lo[i]),
		)
	}
	return b
}

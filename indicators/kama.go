package indicators

import "github.com/rustyeddy/regime/config"

// Adaptive holds Kaufman's adaptive moving average and its vote.
type Adaptive struct {
	ER     Column // efficiency ratio
	KAMA   Column
	Signal []Vote
}

// KAMA computes the adaptive average of closes.
//
// The efficiency ratio over the trailing Period bars is undefined when
// price did not move at all (zero path length). KAMA starts from the
// Period-bar simple average and follows
//
//	kama[i] = kama[i-1] + sc[i]*(close[i]-kama[i-1])
//
// strictly in index order. A bar with an undefined smoothing constant has
// an undefined KAMA, and so does every bar after it.
func KAMA(closes Column, p config.KAMAParams) Adaptive {
	n := len(closes)
	change := Abs(Diff(closes, p.Period))
	path := RollingSum(Abs(Diff(closes, 1)), p.Period)
	sma := RollingMean(closes, p.Period)

	fast, slow := p.FastSC(), p.SlowSC()

	a := Adaptive{
		ER:     make(Column, n),
		KAMA:   make(Column, n),
		Signal: make([]Vote, n),
	}
	for i := 0; i < n; i++ {
		c, ok1 := change[i].Get()
		v, ok2 := path[i].Get()
		if ok1 && ok2 && v != 0 {
			a.ER[i] = Of(c / v)
		}
	}

	if n >= p.Period {
		a.KAMA[p.Period-1] = sma[p.Period-1]
	}
	for i := p.Period; i < n; i++ {
		er, ok := a.ER[i].Get()
		if !ok {
			continue
		}
		k, ok1 := a.KAMA[i-1].Get()
		c, ok2 := closes[i].Get()
		if !ok1 || !ok2 {
			continue
		}
		sc := er*fast + (1-er)*slow
		a.KAMA[i] = Of(k + sc*(c-k))
	}

	hi := RollingQuantile(a.KAMA, p.TrendWindow, p.UpperQuantile)
	lo := RollingQuantile(a.KAMA, p.TrendWindow, p.LowerQuantile)
	for i := 0; i < n; i++ {
		k, c := a.KAMA[i], closes[i]
		a.Signal[i] = classify(
			k.Gt(hi[i]) && c.Gt(k),
			k.Lt(lo[i]) && c.Lt(k),
		)
	}
	return a
}

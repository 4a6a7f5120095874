package indicators

import (
	"math"

	"github.com/rustyeddy/regime/config"
	"github.com/rustyeddy/regime/market"
)

// Directional holds the directional movement family.
type Directional struct {
	PlusDI  Column
	MinusDI Column
	DX      Column
	ADX     Column
	ADXR    Column

	// ADXSignal is Bullish while ADX is above the trend threshold. It
	// never goes Bearish.
	ADXSignal []Vote

	// ADXRSignal follows the dominant DI while ADXR is at or above its
	// threshold.
	ADXRSignal []Vote
}

// DMI computes +DI/-DI, DX, ADX and ADXR. DM is normalised by atr, so the
// DIs stay undefined until ATR is.
func DMI(bars []market.Bar, atr Column, p config.ADXParams) Directional {
	n := len(bars)
	plusRatio := make(Column, n)
	minusRatio := make(Column, n)

	for i := 0; i < n; i++ {
		var plusDM, minusDM float64
		if i > 0 {
			plusDM, minusDM = directionalMove(bars[i], bars[i-1])
		}
		a, ok := atr[i].Get()
		if !ok || a == 0 {
			continue
		}
		plusRatio[i] = Of(plusDM / a)
		minusRatio[i] = Of(minusDM / a)
	}

	opts := EWMOptions{
		Alpha:      1.0 / float64(p.Period),
		Adjust:     true,
		MinPeriods: p.Period,
	}
	d := Directional{
		PlusDI:     scale(EWM(plusRatio, opts), 100),
		MinusDI:    scale(EWM(minusRatio, opts), 100),
		DX:         make(Column, n),
		ADXSignal:  make([]Vote, n),
		ADXRSignal: make([]Vote, n),
	}

	for i := 0; i < n; i++ {
		d.DX[i] = dx(d.PlusDI[i], d.MinusDI[i])
	}
	d.ADX = EWM(d.DX, opts)

	lagged := Shift(d.ADX, p.RLag)
	d.ADXR = make(Column, n)
	for i := 0; i < n; i++ {
		now, ok1 := d.ADX[i].Get()
		then, ok2 := lagged[i].Get()
		if ok1 && ok2 {
			d.ADXR[i] = Of((now + then) / 2)
		}
	}

	trend := Of(p.Threshold)
	rtrend := Of(p.RThreshold)
	for i := 0; i < n; i++ {
		if d.ADX[i].Gt(trend) {
			d.ADXSignal[i] = Bullish
		}
		strong := d.ADXR[i].Ge(rtrend)
		d.ADXRSignal[i] = classify(
			strong && d.PlusDI[i].Gt(d.MinusDI[i]),
			strong && d.PlusDI[i].Lt(d.MinusDI[i]),
		)
	}
	return d
}

// directionalMove returns (+DM, -DM) for a bar against its predecessor.
func directionalMove(cur, prev market.Bar) (plus, minus float64) {
	upMove := cur.High - prev.High
	downMove := prev.Low - cur.Low
	if upMove > downMove && upMove > 0 {
		plus = upMove
	}
	if downMove > upMove && downMove > 0 {
		minus = downMove
	}
	return plus, minus
}

// dx is undefined when both DIs are zero.
func dx(plusDI, minusDI Num) Num {
	p, ok1 := plusDI.Get()
	m, ok2 := minusDI.Get()
	if !ok1 || !ok2 || p+m == 0 {
		return Undefined
	}
	return Of(100 * math.Abs((p-m)/(p+m)))
}

func scale(x Column, k float64) Column {
	out := make(Column, len(x))
	for i, n := range x {
		if v, ok := n.Get(); ok {
			out[i] = Of(v * k)
		}
	}
	return out
}

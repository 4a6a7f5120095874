package indicators

import "github.com/rustyeddy/regime/config"

// Strength holds the True Strength Index, its signal line and the vote.
type Strength struct {
	TSI    Column
	Line   Column
	Signal []Vote
}

// TSI double-smooths the one-bar price change and its absolute value with
// recursive exponential averages of span Long then Short, and takes their
// ratio. The signal line is a further Signal-span average of TSI.
func TSI(closes Column, p config.TSIParams) Strength {
	n := len(closes)
	change := Diff(closes, 1)

	smooth := func(x Column) Column {
		first := EWM(x, EWMOptions{Alpha: Span(float64(p.Long))})
		return EWM(first, EWMOptions{Alpha: Span(float64(p.Short))})
	}
	num := smooth(change)
	den := smooth(Abs(change))

	s := Strength{
		TSI:    make(Column, n),
		Signal: make([]Vote, n),
	}
	for i := 0; i < n; i++ {
		a, ok1 := num[i].Get()
		b, ok2 := den[i].Get()
		if ok1 && ok2 && b != 0 {
			s.TSI[i] = Of(100 * a / b)
		}
	}
	s.Line = EWM(s.TSI, EWMOptions{Alpha: Span(float64(p.Signal))})

	hi := RollingQuantile(s.Line, p.TrendWindow, p.UpperQuantile)
	lo := RollingQuantile(s.Line, p.TrendWindow, p.LowerQuantile)
	for i := 0; i < n; i++ {
		t, l := s.TSI[i], s.Line[i]
		s.Signal[i] = classify(
			t.Gt(l) && l.Gt(hi[i]),
			t.Lt(l) && l.Lt(lo[i]),
		)
	}
	return s
}

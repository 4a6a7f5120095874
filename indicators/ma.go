package indicators

import (
	"fmt"
	"math"
	"sort"
)

// Diff returns x[i] - x[i-lag].
func Diff(x Column, lag int) Column {
	out := make(Column, len(x))
	for i := lag; i < len(x); i++ {
		a, okA := x[i].Get()
		b, okB := x[i-lag].Get()
		if okA && okB {
			out[i] = Of(a - b)
		}
	}
	return out
}

// Shift returns x[i-lag]; the first lag entries are undefined.
func Shift(x Column, lag int) Column {
	out := make(Column, len(x))
	for i := lag; i < len(x); i++ {
		out[i] = x[i-lag]
	}
	return out
}

// Abs returns |x[i]|.
func Abs(x Column) Column {
	out := make(Column, len(x))
	for i, n := range x {
		if v, ok := n.Get(); ok {
			out[i] = Of(math.Abs(v))
		}
	}
	return out
}

// Rolling applies agg to every trailing window of n values. A window is
// only aggregated when it is full and every value in it is defined.
func Rolling(x Column, n int, agg func(w []float64) float64) Column {
	if n <= 0 {
		panic(fmt.Sprintf("rolling window must be > 0, got %d", n))
	}
	out := make(Column, len(x))
	buf := make([]float64, n)

	// run counts consecutive defined values ending at i
	run := 0
	for i, v := range x {
		if !v.Defined() {
			run = 0
			continue
		}
		run++
		if run < n {
			continue
		}
		for k := 0; k < n; k++ {
			buf[k] = x[i-n+1+k].v
		}
		out[i] = Of(agg(buf))
	}
	return out
}

func RollingSum(x Column, n int) Column  { return Rolling(x, n, sum) }
func RollingMean(x Column, n int) Column { return Rolling(x, n, mean) }

// RollingStd is the population standard deviation (ddof 0).
func RollingStd(x Column, n int) Column { return Rolling(x, n, stddev) }

// RollingQuantile is the q-th quantile of each window with linear
// interpolation between the closest ranks.
func RollingQuantile(x Column, n int, q float64) Column {
	tmp := make([]float64, n)
	return Rolling(x, n, func(w []float64) float64 {
		copy(tmp, w)
		return quantile(tmp, q)
	})
}

func sum(w []float64) float64 {
	s := 0.0
	for _, v := range w {
		s += v
	}
	return s
}

func mean(w []float64) float64 {
	return sum(w) / float64(len(w))
}

func stddev(w []float64) float64 {
	m := mean(w)
	ss := 0.0
	for _, v := range w {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(w)))
}

// quantile sorts w in place.
func quantile(w []float64, q float64) float64 {
	sort.Float64s(w)
	pos := q * float64(len(w)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return w[lo]
	}
	return w[lo] + (w[hi]-w[lo])*(pos-float64(lo))
}

// EWMOptions configures an exponentially weighted mean.
type EWMOptions struct {
	Alpha float64

	// Adjust selects normalised decaying weights over the whole history
	// (true) or the plain recursion y = (1-a)*y + a*x (false).
	Adjust bool

	// MinPeriods is the number of defined observations required before a
	// value is emitted. Values below 1 are treated as 1.
	MinPeriods int
}

// Com and Span convert the usual decay parameterisations to a smoothing
// factor.
func Com(c float64) float64  { return 1.0 / (1.0 + c) }
func Span(s float64) float64 { return 2.0 / (s + 1.0) }

// EWM is an exponentially weighted mean over x in strict index order.
//
// The average starts at the first defined observation. An undefined input
// after that still decays the weight of the history but does not change
// the average, and the previous average is carried forward.
func EWM(x Column, o EWMOptions) Column {
	if o.Alpha <= 0 || o.Alpha > 1 {
		panic(fmt.Sprintf("ewm alpha must be in (0,1], got %v", o.Alpha))
	}
	minp := o.MinPeriods
	if minp < 1 {
		minp = 1
	}

	out := make(Column, len(x))
	if len(x) == 0 {
		return out
	}

	decay := 1.0 - o.Alpha
	newWt := 1.0
	if !o.Adjust {
		newWt = o.Alpha
	}

	weighted, started := x[0].Get()
	nobs := 0
	if started {
		nobs = 1
	}
	oldWt := 1.0
	if nobs >= minp {
		out[0] = Of(weighted)
	}

	for i := 1; i < len(x); i++ {
		cur, isObs := x[i].Get()
		if isObs {
			nobs++
		}
		switch {
		case started:
			oldWt *= decay
			if isObs {
				if weighted != cur {
					weighted = (oldWt*weighted + newWt*cur) / (oldWt + newWt)
				}
				if o.Adjust {
					oldWt += newWt
				} else {
					oldWt = 1.0
				}
			}
		case isObs:
			weighted = cur
			started = true
		}
		if started && nobs >= minp {
			out[i] = Of(weighted)
		}
	}
	return out
}

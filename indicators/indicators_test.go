package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNum(t *testing.T) {
	t.Parallel()

	assert.False(t, Of(math.NaN()).Defined())
	assert.False(t, Of(math.Inf(1)).Defined())
	assert.False(t, Undefined.Defined())
	assert.True(t, math.IsNaN(Undefined.Float64()))
	assert.Equal(t, "", Undefined.String())
	assert.Equal(t, "1.5", Of(1.5).String())

	v, ok := Of(2).Get()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	one, two := Of(1), Of(2)
	assert.True(t, two.Gt(one))
	assert.True(t, one.Lt(two))
	assert.True(t, one.Ge(one))
	assert.True(t, one.Le(one))

	// comparisons with an undefined operand never hold
	for _, n := range []Num{one, Undefined} {
		assert.False(t, n.Gt(Undefined))
		assert.False(t, n.Lt(Undefined))
		assert.False(t, Undefined.Ge(n))
		assert.False(t, Undefined.Le(n))
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Bullish, classify(true, false))
	assert.Equal(t, Bearish, classify(false, true))
	assert.Equal(t, Neutral, classify(false, false))
	assert.Equal(t, "-1", Bearish.String())
}

func TestDiffShiftAbs(t *testing.T) {
	t.Parallel()

	x := Floats([]float64{1, 4, math.NaN(), 2})

	d := Diff(x, 1)
	assert.False(t, d[0].Defined())
	assert.Equal(t, Of(3), d[1])
	assert.False(t, d[2].Defined())
	assert.False(t, d[3].Defined())

	s := Shift(x, 2)
	assert.False(t, s[1].Defined())
	assert.Equal(t, Of(1), s[2])
	assert.Equal(t, Of(4), s[3])

	a := Abs(Floats([]float64{-2, math.NaN()}))
	assert.Equal(t, Of(2), a[0])
	assert.False(t, a[1].Defined())
}

func TestRolling(t *testing.T) {
	t.Parallel()

	x := Floats([]float64{1, 2, 3, 4, 5, 6})

	m := RollingMean(x, 3)
	assert.False(t, m[1].Defined())
	assert.InDelta(t, 2.0, m[2].Float64(), 1e-12)
	assert.InDelta(t, 5.0, m[5].Float64(), 1e-12)

	s := RollingSum(x, 2)
	assert.InDelta(t, 11.0, s[5].Float64(), 1e-12)

	sd := RollingStd(x, 3)
	assert.InDelta(t, math.Sqrt(2.0/3.0), sd[2].Float64(), 1e-12)

	q := RollingQuantile(x, 6, 0.8)
	assert.InDelta(t, 5.0, q[5].Float64(), 1e-12)
	q = RollingQuantile(x, 6, 0.5)
	assert.InDelta(t, 3.5, q[5].Float64(), 1e-12)
}

func TestRollingQuantileInterpolates(t *testing.T) {
	xs := make([]float64, 10)
	for i := range xs {
		xs[i] = float64(10 - i) // unsorted input
	}
	q := RollingQuantile(Floats(xs), 10, 0.95)
	assert.InDelta(t, 9.55, q[9].Float64(), 1e-12)
	q = RollingQuantile(Floats(xs), 10, 0.05)
	assert.InDelta(t, 1.45, q[9].Float64(), 1e-12)
}

func TestRollingNeedsFullDefinedWindow(t *testing.T) {
	x := Floats([]float64{1, 2, math.NaN(), 4, 5, 6})
	m := RollingMean(x, 3)
	for i := 0; i < 5; i++ {
		assert.False(t, m[i].Defined(), "index %d", i)
	}
	assert.InDelta(t, 5.0, m[5].Float64(), 1e-12)
}

func TestEWMRecursive(t *testing.T) {
	t.Parallel()

	x := Floats([]float64{math.NaN(), 1, 2, 3})
	out := EWM(x, EWMOptions{Alpha: 0.5})

	assert.False(t, out[0].Defined())
	assert.InDelta(t, 1.0, out[1].Float64(), 1e-12)
	assert.InDelta(t, 1.5, out[2].Float64(), 1e-12)
	assert.InDelta(t, 2.25, out[3].Float64(), 1e-12)
}

func TestEWMAdjusted(t *testing.T) {
	t.Parallel()

	x := Floats([]float64{1, 2, 3})
	out := EWM(x, EWMOptions{Alpha: 0.5, Adjust: true})

	assert.InDelta(t, 1.0, out[0].Float64(), 1e-12)
	// (0.5*1 + 1*2) / 1.5
	assert.InDelta(t, 2.5/1.5, out[1].Float64(), 1e-12)
	// (0.25*1 + 0.5*2 + 1*3) / 1.75
	assert.InDelta(t, 4.25/1.75, out[2].Float64(), 1e-12)
}

func TestEWMMinPeriods(t *testing.T) {
	x := Floats([]float64{math.NaN(), 1, 2, 3})
	out := EWM(x, EWMOptions{Alpha: 0.5, MinPeriods: 2})
	assert.False(t, out[0].Defined())
	assert.False(t, out[1].Defined())
	assert.True(t, out[2].Defined())
}

func TestEWMGapCarriesAverage(t *testing.T) {
	x := Floats([]float64{1, math.NaN(), 3})
	out := EWM(x, EWMOptions{Alpha: 0.5})

	assert.InDelta(t, 1.0, out[1].Float64(), 1e-12)
	// history weight decayed twice: (0.25*1 + 0.5*3) / 0.75
	assert.InDelta(t, 1.75/0.75, out[2].Float64(), 1e-12)
}

func TestEWMParameterisations(t *testing.T) {
	assert.InDelta(t, 1.0/15.0, Com(14), 1e-12)
	assert.InDelta(t, 2.0/11.0, Span(10), 1e-12)
	assert.Panics(t, func() { EWM(nil, EWMOptions{Alpha: 0}) })
	assert.Panics(t, func() { Rolling(nil, 0, sum) })
}

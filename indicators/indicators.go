// Package indicators computes the technical indicator columns and the
// directional votes derived from them over a complete bar series.
//
// Every column has one entry per bar. Entries that cannot be computed yet
// (warm-up) or that come out of degenerate arithmetic (0/0) are Undefined
// rather than NaN, so comparisons against them are always false and a vote
// built from them is Neutral.
package indicators

import (
	"math"
	"strconv"
)

// Num is a float64 that may be undefined.
type Num struct {
	v  float64
	ok bool
}

// Undefined is the zero Num.
var Undefined = Num{}

// Of wraps v. NaN and infinities become Undefined.
func Of(v float64) Num {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Num{v: v, ok: true}
}

func (n Num) Get() (float64, bool) { return n.v, n.ok }
func (n Num) Defined() bool        { return n.ok }

// Float64 returns the value, or NaN when undefined.
func (n Num) Float64() float64 {
	if !n.ok {
		return math.NaN()
	}
	return n.v
}

// String formats the value for record files; undefined is empty.
func (n Num) String() string {
	if !n.ok {
		return ""
	}
	return strconv.FormatFloat(n.v, 'f', -1, 64)
}

// Gt, Lt, Ge and Le compare two defined values. Any comparison involving
// an undefined operand is false.
func (n Num) Gt(o Num) bool { return n.ok && o.ok && n.v > o.v }
func (n Num) Lt(o Num) bool { return n.ok && o.ok && n.v < o.v }
func (n Num) Ge(o Num) bool { return n.ok && o.ok && n.v >= o.v }
func (n Num) Le(o Num) bool { return n.ok && o.ok && n.v <= o.v }

// Column is one indicator value per bar.
type Column []Num

// Floats converts a raw float column, mapping NaN to Undefined.
func Floats(xs []float64) Column {
	out := make(Column, len(xs))
	for i, x := range xs {
		out[i] = Of(x)
	}
	return out
}

// Vote is a discrete directional signal.
type Vote int8

const (
	Bearish Vote = -1
	Neutral Vote = 0
	Bullish Vote = 1
)

func (v Vote) String() string {
	return strconv.Itoa(int(v))
}

// classify maps the two mutually exclusive conditions of a family to a
// vote. Both are evaluated on defined values only.
func classify(bull, bear bool) Vote {
	switch {
	case bull:
		return Bullish
	case bear:
		return Bearish
	default:
		return Neutral
	}
}

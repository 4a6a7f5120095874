package strategy

import (
	"github.com/rustyeddy/regime/config"
	"github.com/rustyeddy/regime/indicators"
	"github.com/rustyeddy/regime/market"
)

// Machine is the position state machine. The zero stance is FLAT.
type Machine struct {
	params config.Params

	stance Stance
	tp, sl float64
	open   Trade

	trades []Trade
}

func NewMachine(p config.Params) *Machine {
	return &Machine{params: p}
}

func (m *Machine) Stance() Stance { return m.stance }

// Levels returns the take-profit and stop-loss of the open position.
func (m *Machine) Levels() (tp, sl float64) { return m.tp, m.sl }

// Trades returns the positions closed so far.
func (m *Machine) Trades() []Trade { return m.trades }

// Step processes one bar: exits first, then the volatility gate and the
// entry rules of the selected branch.
func (m *Machine) Step(s indicators.Snapshot) Decision {
	d := Decision{Index: s.Index, Bar: s.Bar}

	if reason, price, ok := m.exitHit(s.Bar); ok {
		m.close(s, price, reason)
		d.Exit = reason
	}

	d.HighVol = s.ATR.Gt(indicators.Of(m.params.ATRThreshold))

	var wantLong, wantShort bool
	targets := m.params.LowVol
	if d.HighVol {
		targets = m.params.HighVol
		wantLong = s.KAMA == indicators.Bullish && s.ADXR == indicators.Bullish && s.TSI >= indicators.Neutral
		wantShort = s.KAMA == indicators.Bearish && s.ADXR == indicators.Bearish && s.TSI <= indicators.Neutral
	} else {
		wantLong = s.BB == indicators.Bullish
		wantShort = s.BB == indicators.Bearish
	}

	c := s.Bar.Close
	switch {
	case wantLong && m.stance != Long:
		d.Action = EnterLong
		if m.stance == Short {
			d.Action = ReverseToLong
			m.close(s, c, Reversal)
			d.Exit = Reversal
		}
		m.enter(s, Long, c*targets.LongTP, c*targets.LongSL)

	case wantShort && m.stance != Short:
		d.Action = EnterShort
		if m.stance == Long {
			d.Action = ReverseToShort
			m.close(s, c, Reversal)
			d.Exit = Reversal
		}
		m.enter(s, Short, c*targets.ShortTP, c*targets.ShortSL)
	}

	if d.Action != Hold {
		d.TP, d.SL = m.tp, m.sl
	}
	d.Stance = m.stance
	return d
}

// exitHit checks the open position's levels against the bar's range. When
// both levels are inside the range the tie-break policy picks one.
func (m *Machine) exitHit(b market.Bar) (ExitReason, float64, bool) {
	var hitTP, hitSL bool
	switch m.stance {
	case Long:
		hitTP = b.High >= m.tp
		hitSL = b.Low <= m.sl
	case Short:
		hitTP = b.Low <= m.tp
		hitSL = b.High >= m.sl
	default:
		return "", 0, false
	}

	switch {
	case hitTP && hitSL:
		if m.params.TieBreak == config.TakeProfitFirst {
			return TakeProfit, m.tp, true
		}
		return StopLoss, m.sl, true
	case hitTP:
		return TakeProfit, m.tp, true
	case hitSL:
		return StopLoss, m.sl, true
	}
	return "", 0, false
}

func (m *Machine) enter(s indicators.Snapshot, side Stance, tp, sl float64) {
	m.stance = side
	m.tp, m.sl = tp, sl
	m.open = Trade{
		Side:       side,
		EntryIndex: s.Index,
		EntryTime:  s.Bar.Time,
		EntryPrice: s.Bar.Close,
		TP:         tp,
		SL:         sl,
	}
}

func (m *Machine) close(s indicators.Snapshot, price float64, reason ExitReason) {
	t := m.open
	t.ExitIndex = s.Index
	t.ExitTime = s.Bar.Time
	t.ExitPrice = price
	t.Reason = reason
	t.ReturnPct = t.returnPct()
	m.trades = append(m.trades, t)

	m.stance = Flat
	m.tp, m.sl = 0, 0
	m.open = Trade{}
}

// Pending returns the open position valued at the close of last, or false
// when the machine is flat. It does not change the machine.
func (m *Machine) Pending(last indicators.Snapshot) (Trade, bool) {
	if m.stance == Flat {
		return Trade{}, false
	}
	t := m.open
	t.ExitIndex = last.Index
	t.ExitTime = last.Bar.Time
	t.ExitPrice = last.Bar.Close
	t.Reason = StillOpen
	t.ReturnPct = t.returnPct()
	return t, true
}

// Result is the outcome of walking a whole frame.
type Result struct {
	Decisions []Decision // one per bar
	Trades    []Trade    // closed trades, then the open one if any
	Final     Stance
}

// Run walks the frame from its second bar. Bar 0 is recorded as a hold;
// it has no predecessor for the indicators that need one.
func Run(f *indicators.Frame, p config.Params) Result {
	n := f.Len()
	res := Result{Decisions: make([]Decision, 0, n)}
	if n == 0 {
		return res
	}

	m := NewMachine(p)
	res.Decisions = append(res.Decisions, Decision{Index: 0, Bar: f.Bars[0], Stance: Flat})
	for i := 1; i < n; i++ {
		res.Decisions = append(res.Decisions, m.Step(f.Row(i)))
	}

	res.Trades = append(res.Trades, m.Trades()...)
	if t, ok := m.Pending(f.Row(n - 1)); ok {
		res.Trades = append(res.Trades, t)
	}
	res.Final = m.Stance()
	return res
}

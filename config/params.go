package config

import "fmt"

// Params is the full parameter set of the indicator pipeline and the
// position state machine. It is passed by value and never mutated.
type Params struct {
	Bollinger BollingerParams `json:"bollinger" yaml:"bollinger"`
	ATR       ATRParams       `json:"atr" yaml:"atr"`
	ADX       ADXParams       `json:"adx" yaml:"adx"`
	KAMA      KAMAParams      `json:"kama" yaml:"kama"`
	TSI       TSIParams       `json:"tsi" yaml:"tsi"`

	// ATRThreshold splits bars into the high-volatility branch
	// (ATR > threshold) and the low-volatility branch.
	ATRThreshold float64 `json:"atr_threshold" yaml:"atr_threshold"`

	HighVol Targets `json:"high_vol" yaml:"high_vol"`
	LowVol  Targets `json:"low_vol" yaml:"low_vol"`

	// TieBreak decides which level is reported as hit when a bar touches
	// both take-profit and stop-loss. Either way the position closes.
	TieBreak TieBreak `json:"tie_break" yaml:"tie_break"`
}

type BollingerParams struct {
	Window        int     `json:"window" yaml:"window"`
	Width         float64 `json:"width" yaml:"width"` // band width in standard deviations
	TrendWindow   int     `json:"trend_window" yaml:"trend_window"`
	UpperQuantile float64 `json:"upper_quantile" yaml:"upper_quantile"`
	LowerQuantile float64 `json:"lower_quantile" yaml:"lower_quantile"`
}

type ATRParams struct {
	// Period is both the center of mass of the smoothing and the number of
	// true-range samples required before ATR is defined.
	Period int `json:"period" yaml:"period"`
}

type ADXParams struct {
	Period     int     `json:"period" yaml:"period"` // smoothing alpha = 1/Period
	RLag       int     `json:"r_lag" yaml:"r_lag"`
	Threshold  float64 `json:"threshold" yaml:"threshold"`
	RThreshold float64 `json:"r_threshold" yaml:"r_threshold"`
}

type KAMAParams struct {
	Period        int     `json:"period" yaml:"period"`
	Fast          int     `json:"fast" yaml:"fast"`
	Slow          int     `json:"slow" yaml:"slow"`
	TrendWindow   int     `json:"trend_window" yaml:"trend_window"`
	UpperQuantile float64 `json:"upper_quantile" yaml:"upper_quantile"`
	LowerQuantile float64 `json:"lower_quantile" yaml:"lower_quantile"`
}

// FastSC and SlowSC are the smoothing constants 2/(n+1).
func (k KAMAParams) FastSC() float64 { return 2.0 / float64(k.Fast+1) }
func (k KAMAParams) SlowSC() float64 { return 2.0 / float64(k.Slow+1) }

type TSIParams struct {
	Long          int     `json:"long" yaml:"long"`
	Short         int     `json:"short" yaml:"short"`
	Signal        int     `json:"signal" yaml:"signal"`
	TrendWindow   int     `json:"trend_window" yaml:"trend_window"`
	UpperQuantile float64 `json:"upper_quantile" yaml:"upper_quantile"`
	LowerQuantile float64 `json:"lower_quantile" yaml:"lower_quantile"`
}

// Targets are the take-profit and stop-loss multipliers applied to the
// entry close, per direction.
type Targets struct {
	LongTP  float64 `json:"long_tp" yaml:"long_tp"`
	LongSL  float64 `json:"long_sl" yaml:"long_sl"`
	ShortTP float64 `json:"short_tp" yaml:"short_tp"`
	ShortSL float64 `json:"short_sl" yaml:"short_sl"`
}

type TieBreak string

const (
	StopLossFirst   TieBreak = "stop_loss"
	TakeProfitFirst TieBreak = "take_profit"
)

// DefaultParams returns the reference parameterisation.
func DefaultParams() Params {
	return Params{
		Bollinger: BollingerParams{
			Window:        10,
			Width:         2,
			TrendWindow:   6,
			UpperQuantile: 0.80,
			LowerQuantile: 0.20,
		},
		ATR: ATRParams{Period: 14},
		ADX: ADXParams{
			Period:     6,
			RLag:       4,
			Threshold:  25,
			RThreshold: 25,
		},
		KAMA: KAMAParams{
			Period:        14,
			Fast:          4,
			Slow:          30,
			TrendWindow:   10,
			UpperQuantile: 0.95,
			LowerQuantile: 0.05,
		},
		TSI: TSIParams{
			Long:          10,
			Short:         4,
			Signal:        7,
			TrendWindow:   7,
			UpperQuantile: 0.60,
			LowerQuantile: 0.40,
		},
		ATRThreshold: 1200,
		HighVol: Targets{
			LongTP:  1.05,
			LongSL:  0.98,
			ShortTP: 0.95,
			ShortSL: 1.02,
		},
		LowVol: Targets{
			LongTP:  1.02,
			LongSL:  0.99,
			ShortTP: 0.98,
			ShortSL: 1.01,
		},
		TieBreak: StopLossFirst,
	}
}

// Validate checks windows are positive, quantiles lie in [0,1] and every
// target sits on the correct side of the entry price.
func (p Params) Validate() error {
	windows := []struct {
		name string
		v    int
	}{
		{"bollinger.window", p.Bollinger.Window},
		{"bollinger.trend_window", p.Bollinger.TrendWindow},
		{"atr.period", p.ATR.Period},
		{"adx.period", p.ADX.Period},
		{"adx.r_lag", p.ADX.RLag},
		{"kama.period", p.KAMA.Period},
		{"kama.fast", p.KAMA.Fast},
		{"kama.slow", p.KAMA.Slow},
		{"kama.trend_window", p.KAMA.TrendWindow},
		{"tsi.long", p.TSI.Long},
		{"tsi.short", p.TSI.Short},
		{"tsi.signal", p.TSI.Signal},
		{"tsi.trend_window", p.TSI.TrendWindow},
	}
	for _, w := range windows {
		if w.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", w.name, w.v)
		}
	}

	quantiles := []struct {
		name string
		v    float64
	}{
		{"bollinger.upper_quantile", p.Bollinger.UpperQuantile},
		{"bollinger.lower_quantile", p.Bollinger.LowerQuantile},
		{"kama.upper_quantile", p.KAMA.UpperQuantile},
		{"kama.lower_quantile", p.KAMA.LowerQuantile},
		{"tsi.upper_quantile", p.TSI.UpperQuantile},
		{"tsi.lower_quantile", p.TSI.LowerQuantile},
	}
	for _, q := range quantiles {
		if q.v < 0 || q.v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", q.name, q.v)
		}
	}

	if p.Bollinger.Width <= 0 {
		return fmt.Errorf("bollinger.width must be positive")
	}
	if p.KAMA.Fast >= p.KAMA.Slow {
		return fmt.Errorf("kama.fast must be less than kama.slow (got %d/%d)", p.KAMA.Fast, p.KAMA.Slow)
	}
	if p.ATRThreshold < 0 {
		return fmt.Errorf("atr_threshold must not be negative")
	}
	if err := p.HighVol.validate("high_vol"); err != nil {
		return err
	}
	if err := p.LowVol.validate("low_vol"); err != nil {
		return err
	}

	switch p.TieBreak {
	case StopLossFirst, TakeProfitFirst:
	default:
		return fmt.Errorf("tie_break must be %q or %q, got %q", StopLossFirst, TakeProfitFirst, p.TieBreak)
	}
	return nil
}

func (t Targets) validate(name string) error {
	if t.LongTP <= 1 || t.LongSL >= 1 || t.LongSL <= 0 {
		return fmt.Errorf("%s: long targets need long_tp > 1 > long_sl > 0", name)
	}
	if t.ShortTP >= 1 || t.ShortTP <= 0 || t.ShortSL <= 1 {
		return fmt.Errorf("%s: short targets need short_sl > 1 > short_tp > 0", name)
	}
	return nil
}

package journal

import (
	"time"

	"github.com/rustyeddy/regime/market"
	"github.com/rustyeddy/regime/strategy"
)

var day0 = time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)

func sampleRun(id string, created time.Time) RunRecord {
	return RunRecord{
		RunID:        id,
		Created:      created,
		Dataset:      "btc_3d",
		Start:        day0,
		End:          day0.Add(30 * 72 * time.Hour),
		Bars:         31,
		Params:       []byte(`{"atr_threshold":1200}`),
		Trades:       3,
		Wins:         2,
		Losses:       1,
		WinRate:      66.666667,
		ReturnPct:    4.5,
		MaxDDPct:     1.25,
		ProfitFactor: 3.2,
		FinalStance:  "LONG",
		ResultsFile:  "results.csv",
	}
}

func sampleTrade(id, runID string, entry time.Time) TradeRecord {
	return TradeRecord{
		TradeID:    id,
		RunID:      runID,
		Side:       "LONG",
		EntryTime:  entry,
		EntryPrice: 10000,
		ExitTime:   entry.Add(144 * time.Hour),
		ExitPrice:  10200,
		TP:         10200,
		SL:         9900,
		Reason:     "take_profit",
		ReturnPct:  2,
	}
}

func sampleDecisions() []strategy.Decision {
	bar := func(i int, c float64) market.Bar {
		return market.Bar{
			Time:   day0.Add(time.Duration(i) * 72 * time.Hour),
			Open:   c - 10,
			High:   c + 50,
			Low:    c - 50,
			Close:  c,
			Volume: 12.5,
		}
	}
	return []strategy.Decision{
		{Index: 0, Bar: bar(0, 10000), Stance: strategy.Flat},
		{Index: 1, Bar: bar(1, 10000), Action: strategy.EnterLong, TP: 10200, SL: 9900, Stance: strategy.Long},
		{Index: 2, Bar: bar(2, 10210), Stance: strategy.Flat, Exit: strategy.TakeProfit},
		{Index: 3, Bar: bar(3, 10100), Action: strategy.EnterShort, TP: 9898, SL: 10201, Stance: strategy.Short, HighVol: true},
	}
}

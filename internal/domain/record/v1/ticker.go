package v1

import "time"

// Ticker is a top-of-book quote snapshot.
type Ticker struct {
	Time       time.Time
	Symbol     string
	Bid        float64
	BidSize    float64
	Ask        float64
	AskSize    float64
	Change     float64
	ChangePerc float64
	LastPrice  float64
	Volume     float64
	High       float64
	Low        float64
}

// TickerFromDatum constructs a validated Ticker from a feed datum.
func TickerFromDatum(symbol string, at time.Time, datum map[string]any) (*Ticker, error) {
	sym, err := resolveSymbol(symbol, datum)
	if err != nil {
		return nil, err
	}

	t := &Ticker{
		Time:   resolveTime(at, datum),
		Symbol: sym,
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"bid", &t.Bid},
		{"bid_size", &t.BidSize},
		{"ask", &t.Ask},
		{"ask_size", &t.AskSize},
		{"change", &t.Change},
		{"change_perc", &t.ChangePerc},
		{"last_price", &t.LastPrice},
		{"volume", &t.Volume},
		{"high", &t.High},
		{"low", &t.Low},
	}
	for _, f := range fields {
		if *f.dst, err = floatField(datum, f.name); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Kind implements Record.
func (t *Ticker) Kind() Kind { return KindTicker }

// GetSymbol implements Record.
func (t *Ticker) GetSymbol() string { return t.Symbol }

// GetTime implements Record.
func (t *Ticker) GetTime() time.Time { return t.Time }

// Fields implements Record.
func (t *Ticker) Fields() map[string]any {
	return map[string]any{
		"time":        epoch(t.Time),
		"symbol":      t.Symbol,
		"bid":         t.Bid,
		"bid_size":    t.BidSize,
		"ask":         t.Ask,
		"ask_size":    t.AskSize,
		"change":      t.Change,
		"change_perc": t.ChangePerc,
		"last_price":  t.LastPrice,
		"volume":      t.Volume,
		"high":        t.High,
		"low":         t.Low,
	}
}

package v1

import "time"

// Candle is one OHLCV candle. Its time is the interval start supplied by the
// feed when present, not the receipt time.
type Candle struct {
	Time   time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleFromDatum constructs a validated Candle from a feed datum.
func CandleFromDatum(symbol string, at time.Time, datum map[string]any) (*Candle, error) {
	sym, err := resolveSymbol(symbol, datum)
	if err != nil {
		return nil, err
	}

	c := &Candle{
		Time:   resolveTime(at, datum),
		Symbol: sym,
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"open", &c.Open},
		{"high", &c.High},
		{"low", &c.Low},
		{"close", &c.Close},
		{"volume", &c.Volume},
	}
	for _, f := range fields {
		if *f.dst, err = floatField(datum, f.name); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Kind implements Record.
func (c *Candle) Kind() Kind { return KindCandle }

// GetSymbol implements Record.
func (c *Candle) GetSymbol() string { return c.Symbol }

// GetTime implements Record.
func (c *Candle) GetTime() time.Time { return c.Time }

// Fields implements Record.
func (c *Candle) Fields() map[string]any {
	return map[string]any{
		"time":   epoch(c.Time),
		"symbol": c.Symbol,
		"open":   c.Open,
		"high":   c.High,
		"low":    c.Low,
		"close":  c.Close,
		"volume": c.Volume,
	}
}

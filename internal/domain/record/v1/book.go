package v1

import "time"

// BookLevel is one aggregated order-book price level.
type BookLevel struct {
	Time   time.Time
	Symbol string
	Price  float64
	SigFig float64
	Volume float64
}

// BookLevelFromDatum constructs a validated BookLevel from a feed datum.
func BookLevelFromDatum(symbol string, at time.Time, datum map[string]any) (*BookLevel, error) {
	sym, err := resolveSymbol(symbol, datum)
	if err != nil {
		return nil, err
	}

	b := &BookLevel{
		Time:   resolveTime(at, datum),
		Symbol: sym,
	}

	if b.Price, err = floatField(datum, "price"); err != nil {
		return nil, err
	}
	if b.SigFig, err = floatField(datum, "sig_fig"); err != nil {
		return nil, err
	}
	if b.Volume, err = floatField(datum, "volume"); err != nil {
		return nil, err
	}

	return b, nil
}

// Kind implements Record.
func (b *BookLevel) Kind() Kind { return KindBook }

// GetSymbol implements Record.
func (b *BookLevel) GetSymbol() string { return b.Symbol }

// GetTime implements Record.
func (b *BookLevel) GetTime() time.Time { return b.Time }

// Fields implements Record.
func (b *BookLevel) Fields() map[string]any {
	return map[string]any{
		"time":    epoch(b.Time),
		"symbol":  b.Symbol,
		"price":   b.Price,
		"sig_fig": b.SigFig,
		"volume":  b.Volume,
	}
}

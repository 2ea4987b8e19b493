package v1

import "time"

// Trade is one executed trade.
type Trade struct {
	Time    time.Time
	Symbol  string
	TradeID int64
	Amount  float64
	Price   float64
}

// TradeFromDatum constructs a validated Trade from a feed datum.
func TradeFromDatum(symbol string, at time.Time, datum map[string]any) (*Trade, error) {
	sym, err := resolveSymbol(symbol, datum)
	if err != nil {
		return nil, err
	}

	t := &Trade{
		Time:   resolveTime(at, datum),
		Symbol: sym,
	}

	if t.TradeID, err = intField(datum, "id"); err != nil {
		return nil, err
	}
	if t.Amount, err = floatField(datum, "amount"); err != nil {
		return nil, err
	}
	if t.Price, err = floatField(datum, "price"); err != nil {
		return nil, err
	}

	return t, nil
}

// Kind implements Record.
func (t *Trade) Kind() Kind { return KindTrade }

// GetSymbol implements Record.
func (t *Trade) GetSymbol() string { return t.Symbol }

// GetTime implements Record.
func (t *Trade) GetTime() time.Time { return t.Time }

// Fields implements Record.
func (t *Trade) Fields() map[string]any {
	return map[string]any{
		"time":   epoch(t.Time),
		"symbol": t.Symbol,
		"id":     t.TradeID,
		"amount": t.Amount,
		"price":  t.Price,
	}
}

package v1

import "time"

// RawBookEvent is a single raw order-book event keyed by the exchange order id.
type RawBookEvent struct {
	Time    time.Time
	Symbol  string
	OrderID int64
	Price   float64
	Amount  float64
}

// RawBookEventFromDatum constructs a validated RawBookEvent from a feed datum.
func RawBookEventFromDatum(symbol string, at time.Time, datum map[string]any) (*RawBookEvent, error) {
	sym, err := resolveSymbol(symbol, datum)
	if err != nil {
		return nil, err
	}

	r := &RawBookEvent{
		Time:   resolveTime(at, datum),
		Symbol: sym,
	}

	if r.OrderID, err = intField(datum, "id"); err != nil {
		return nil, err
	}
	if r.Price, err = floatField(datum, "price"); err != nil {
		return nil, err
	}
	if r.Amount, err = floatField(datum, "amount"); err != nil {
		return nil, err
	}

	return r, nil
}

// Kind implements Record.
func (r *RawBookEvent) Kind() Kind { return KindRawBook }

// GetSymbol implements Record.
func (r *RawBookEvent) GetSymbol() string { return r.Symbol }

// GetTime implements Record.
func (r *RawBookEvent) GetTime() time.Time { return r.Time }

// Fields implements Record.
func (r *RawBookEvent) Fields() map[string]any {
	return map[string]any{
		"time":   epoch(r.Time),
		"symbol": r.Symbol,
		"id":     r.OrderID,
		"price":  r.Price,
		"amount": r.Amount,
	}
}

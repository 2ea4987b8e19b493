package v1

import (
	"fmt"
	"time"

	"github.com/switch527/coin-base/pkg/errors"
)

// MaxSymbolLength bounds the symbol identifier column.
const MaxSymbolLength = 8

func invalidRecord(message, field string) *errors.ErrorDetails {
	return errors.NewErrorDetails(message, string(errors.InvalidRecordError), field)
}

// floatField extracts a required numeric field from a datum. JSON decoding
// hands every number over as float64, but ints are accepted too so adapters
// can build datums by hand.
func floatField(datum map[string]any, field string) (float64, error) {
	v, ok := datum[field]
	if !ok {
		return 0, invalidRecord(fmt.Sprintf("missing required field %q", field), field)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, invalidRecord(fmt.Sprintf("field %q is not numeric", field), field)
}

// intField extracts a required integer field (sequence ids) from a datum.
func intField(datum map[string]any, field string) (int64, error) {
	n, err := floatField(datum, field)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// resolveSymbol prefers the symbol carried in the datum over the stream's own,
// then validates it.
func resolveSymbol(symbol string, datum map[string]any) (string, error) {
	if s, ok := datum["symbol"].(string); ok && s != "" {
		symbol = s
	}

	if symbol == "" {
		return "", invalidRecord("symbol is empty", "symbol")
	}
	if len(symbol) > MaxSymbolLength {
		return "", invalidRecord(fmt.Sprintf("symbol %q exceeds %d characters", symbol, MaxSymbolLength), "symbol")
	}
	return symbol, nil
}

// resolveTime is the receipt time unless the payload carries its own semantic
// time, e.g. a candle's interval start, as an epoch seconds value.
func resolveTime(at time.Time, datum map[string]any) time.Time {
	v, ok := datum["time"]
	if !ok {
		return at
	}

	switch ts := v.(type) {
	case float64:
		sec := int64(ts)
		nsec := int64((ts - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec)
	case int64:
		return time.Unix(ts, 0)
	case time.Time:
		return ts
	}
	return at
}

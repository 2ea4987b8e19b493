package v1

import (
	"context"
	"time"
)

// Record is a single immutable market-data value. A record is constructed
// once by a feed consumer, validated at creation, and never mutated after.
type Record interface {
	Kind() Kind
	GetSymbol() string
	GetTime() time.Time

	// Fields renders every persisted field as a map, with time as an epoch
	// seconds value. This is the shape query responses are built from.
	Fields() map[string]any
}

// Store is the persistence contract one record kind's repository fulfils.
//
//go:generate mockgen -source=record.go -destination=mock/record_mock.go -package=mock
type Store interface {
	// Insert appends a record within the transaction embedded in ctx, if any.
	Insert(ctx context.Context, rec Record) error

	// SelectRange returns the field maps of every row with
	// symbol IN symbols AND since <= time <= until, ordered by time ascending.
	SelectRange(ctx context.Context, symbols []string, since, until time.Time) ([]map[string]any, error)
}

// FromDatum constructs and validates a record of the given kind from a feed
// datum. An error means the datum is malformed and must be dropped before it
// ever reaches the queue.
func FromDatum(kind Kind, symbol string, at time.Time, datum map[string]any) (Record, error) {
	switch kind {
	case KindTicker:
		return TickerFromDatum(symbol, at, datum)
	case KindBook:
		return BookLevelFromDatum(symbol, at, datum)
	case KindRawBook:
		return RawBookEventFromDatum(symbol, at, datum)
	case KindTrade:
		return TradeFromDatum(symbol, at, datum)
	case KindCandle:
		return CandleFromDatum(symbol, at, datum)
	}
	_, err := ParseKind(string(kind))
	return nil, err
}

func epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

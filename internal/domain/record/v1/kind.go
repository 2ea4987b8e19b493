package v1

import (
	"fmt"

	"github.com/switch527/coin-base/pkg/errors"
)

// Kind identifies one of the five record kinds. Its string value doubles as
// the store table name and the feed data-type tag.
type Kind string

const (
	// KindTicker is the top-of-book quote stream.
	KindTicker Kind = "tickers"
	// KindBook is the aggregated order-book level stream.
	KindBook Kind = "books"
	// KindRawBook is the raw order-book event stream.
	KindRawBook Kind = "raw_books"
	// KindTrade is the executed trade stream.
	KindTrade Kind = "trades"
	// KindCandle is the OHLCV candle stream.
	KindCandle Kind = "candles"
)

// Kinds lists every record kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindTicker, KindBook, KindRawBook, KindTrade, KindCandle}
}

// ParseKind validates a kind tag coming from the feed or a query.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTicker, KindBook, KindRawBook, KindTrade, KindCandle:
		return Kind(s), nil
	}
	return "", errors.NewErrorDetails(
		fmt.Sprintf("unknown record kind %q", s),
		string(errors.InvalidQueryKindError),
		"kind",
	)
}

// Table returns the store table name for the kind.
func (k Kind) Table() string {
	return string(k)
}

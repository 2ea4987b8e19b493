package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	pkgerrors "github.com/switch527/coin-base/pkg/errors"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		assertFn func(t *testing.T, kind Kind, err error)
	}{
		{
			name:  "success: trades",
			input: "trades",
			assertFn: func(t *testing.T, kind Kind, err error) {
				assert.NoError(t, err)
				assert.Equal(t, KindTrade, kind)
			},
		},
		{
			name:  "success: raw_books",
			input: "raw_books",
			assertFn: func(t *testing.T, kind Kind, err error) {
				assert.NoError(t, err)
				assert.Equal(t, KindRawBook, kind)
			},
		},
		{
			name:  "error: unknown kind",
			input: "unknown",
			assertFn: func(t *testing.T, kind Kind, err error) {
				assert.Error(t, err)
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.InvalidQueryKindError)))
			},
		},
		{
			name:  "error: singular form is not accepted",
			input: "trade",
			assertFn: func(t *testing.T, kind Kind, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := ParseKind(tc.input)
			tc.assertFn(t, kind, err)
		})
	}
}

func TestTradeFromDatum(t *testing.T) {
	now := time.Unix(1700000000, 0)

	testCases := []struct {
		name     string
		symbol   string
		datum    map[string]any
		assertFn func(t *testing.T, trade *Trade, err error)
	}{
		{
			name:   "success",
			symbol: "BTCUSD",
			datum:  map[string]any{"id": float64(1), "amount": 0.5, "price": 50000.0},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "BTCUSD", trade.Symbol)
				assert.Equal(t, int64(1), trade.TradeID)
				assert.Equal(t, 0.5, trade.Amount)
				assert.Equal(t, 50000.0, trade.Price)
				assert.Equal(t, now, trade.Time)
			},
		},
		{
			name:   "success: datum symbol wins over stream symbol",
			symbol: "BTCUSD",
			datum:  map[string]any{"symbol": "ETHUSD", "id": float64(2), "amount": 1.0, "price": 3000.0},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "ETHUSD", trade.Symbol)
			},
		},
		{
			name:   "success: payload time wins over receipt time",
			symbol: "BTCUSD",
			datum:  map[string]any{"time": float64(1600000000), "id": float64(3), "amount": 1.0, "price": 100.0},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.NoError(t, err)
				assert.Equal(t, time.Unix(1600000000, 0), trade.Time)
			},
		},
		{
			name:   "error: missing price",
			symbol: "BTCUSD",
			datum:  map[string]any{"id": float64(1), "amount": 0.5},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.Error(t, err)
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.InvalidRecordError)))
				assert.Nil(t, trade)
			},
		},
		{
			name:   "error: non-numeric amount",
			symbol: "BTCUSD",
			datum:  map[string]any{"id": float64(1), "amount": "0.5", "price": 50000.0},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.Error(t, err)
				assert.Nil(t, trade)
			},
		},
		{
			name:   "error: empty symbol",
			symbol: "",
			datum:  map[string]any{"id": float64(1), "amount": 0.5, "price": 50000.0},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.Error(t, err)
			},
		},
		{
			name:   "error: symbol too long",
			symbol: "BTCUSDLONG",
			datum:  map[string]any{"id": float64(1), "amount": 0.5, "price": 50000.0},
			assertFn: func(t *testing.T, trade *Trade, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade, err := TradeFromDatum(tc.symbol, now, tc.datum)
			tc.assertFn(t, trade, err)
		})
	}
}

func TestTickerFromDatum(t *testing.T) {
	now := time.Now()

	full := map[string]any{
		"bid": 1.0, "bid_size": 2.0, "ask": 3.0, "ask_size": 4.0,
		"change": 5.0, "change_perc": 6.0, "last_price": 7.0,
		"volume": 8.0, "high": 9.0, "low": 10.0,
	}

	ticker, err := TickerFromDatum("BTCUSD", now, full)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, ticker.Bid)
	assert.Equal(t, 10.0, ticker.Low)
	assert.Equal(t, KindTicker, ticker.Kind())

	// every field is required
	for field := range full {
		partial := map[string]any{}
		for k, v := range full {
			if k != field {
				partial[k] = v
			}
		}
		_, err := TickerFromDatum("BTCUSD", now, partial)
		assert.Error(t, err, "expected error when %q is missing", field)
	}
}

func TestCandleFromDatum(t *testing.T) {
	start := float64(1700000000)
	candle, err := CandleFromDatum("BTCUSD", time.Now(), map[string]any{
		"time": start, "open": 1.0, "high": 2.0, "low": 0.5, "close": 1.5, "volume": 100.0,
	})
	assert.NoError(t, err)
	assert.Equal(t, time.Unix(1700000000, 0), candle.Time)
	assert.Equal(t, 1.5, candle.Close)
}

func TestFromDatumDispatch(t *testing.T) {
	now := time.Unix(1700000000, 0)

	rec, err := FromDatum(KindBook, "BTCUSD", now, map[string]any{
		"price": 50000.0, "sig_fig": 5.0, "volume": 1.25,
	})
	assert.NoError(t, err)
	assert.Equal(t, KindBook, rec.Kind())
	assert.Equal(t, "BTCUSD", rec.GetSymbol())

	rec, err = FromDatum(KindRawBook, "BTCUSD", now, map[string]any{
		"id": float64(42), "price": 50000.0, "amount": -0.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, KindRawBook, rec.Kind())

	_, err = FromDatum(Kind("nope"), "BTCUSD", now, map[string]any{})
	assert.Error(t, err)
}

func TestFieldsRendersEpochTime(t *testing.T) {
	at := time.Unix(1700000000, 500000000)
	trade, err := TradeFromDatum("BTCUSD", at, map[string]any{
		"id": float64(7), "amount": 0.25, "price": 123.0,
	})
	assert.NoError(t, err)

	fields := trade.Fields()
	assert.InDelta(t, 1700000000.5, fields["time"], 1e-6)
	assert.Equal(t, "BTCUSD", fields["symbol"])
	assert.Equal(t, int64(7), fields["id"])
	assert.NotContains(t, fields, "_id")
}

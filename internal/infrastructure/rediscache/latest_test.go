package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	pkgerrors "github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/switch527/coin-base/pkg/redis"
	redis_mock "github.com/switch527/coin-base/pkg/redis/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestLatestCache_Set(t *testing.T) {
	trade := &v1.Trade{
		Time:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Symbol:  "BTCUSD",
		TradeID: 42,
		Amount:  0.1,
		Price:   50000,
	}

	testCases := []struct {
		name   string
		mockFn func(client *redis_mock.MockClient)
	}{
		{
			name: "success",
			mockFn: func(client *redis_mock.MockClient) {
				client.EXPECT().
					Set(gomock.Any(), "latest:trades:BTCUSD", gomock.Any(), time.Minute).
					DoAndReturn(func(_ context.Context, _ string, value any, _ time.Duration) error {
						var fields map[string]any
						assert.NoError(t, json.Unmarshal(value.([]byte), &fields))
						assert.Equal(t, "BTCUSD", fields["symbol"])
						assert.Equal(t, 50000.0, fields["price"])
						return nil
					})
			},
		},
		{
			name: "set failure is swallowed",
			mockFn: func(client *redis_mock.MockClient) {
				client.EXPECT().
					Set(gomock.Any(), "latest:trades:BTCUSD", gomock.Any(), time.Minute).
					Return(errors.New("connection reset"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redis_mock.NewMockClient(ctrl)
			tc.mockFn(client)

			cache := NewLatestCache(client, time.Minute, logger.NewNop())
			cache.Set(context.Background(), trade)
		})
	}
}

func TestLatestCache_Get(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(client *redis_mock.MockClient)
		assertFn func(t *testing.T, fields map[string]any, err error)
	}{
		{
			name: "success",
			mockFn: func(client *redis_mock.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "latest:tickers:BTCUSD").
					Return(`{"symbol":"BTCUSD","last_price":50000}`, nil)
			},
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "BTCUSD", fields["symbol"])
				assert.Equal(t, 50000.0, fields["last_price"])
			},
		},
		{
			name: "missing key maps to not found",
			mockFn: func(client *redis_mock.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "latest:tickers:BTCUSD").
					Return("", redis.Nil)
			},
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.Nil(t, fields)
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.GeneralNotFoundError)))
			},
		},
		{
			name: "redis failure",
			mockFn: func(client *redis_mock.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "latest:tickers:BTCUSD").
					Return("", errors.New("connection reset"))
			},
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.Nil(t, fields)
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.RedisGetError)))
			},
		},
		{
			name: "corrupt payload",
			mockFn: func(client *redis_mock.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "latest:tickers:BTCUSD").
					Return("{not json", nil)
			},
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.Nil(t, fields)
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.RedisGetError)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redis_mock.NewMockClient(ctrl)
			tc.mockFn(client)

			cache := NewLatestCache(client, time.Minute, logger.NewNop())
			fields, err := cache.Get(context.Background(), v1.KindTicker, "BTCUSD")
			tc.assertFn(t, fields, err)
		})
	}
}

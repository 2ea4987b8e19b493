package query

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	recordmock "github.com/switch527/coin-base/internal/domain/record/v1/mock"
	cachemock "github.com/switch527/coin-base/internal/infrastructure/rediscache/mock"
	pkgerrors "github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Range(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(time.Hour)

	testCases := []struct {
		name     string
		kind     string
		since    time.Time
		until    time.Time
		mockFn   func(store *recordmock.MockStore)
		assertFn func(t *testing.T, result []map[string]any, err error)
	}{
		{
			name:  "success with explicit window",
			kind:  "trades",
			since: since,
			until: until,
			mockFn: func(store *recordmock.MockStore) {
				store.EXPECT().
					SelectRange(gomock.Any(), []string{"BTCUSD"}, since, until).
					Return([]map[string]any{{"symbol": "BTCUSD", "price": 50000.0}}, nil)
			},
			assertFn: func(t *testing.T, result []map[string]any, err error) {
				assert.NoError(t, err)
				assert.Len(t, result, 1)
				assert.Equal(t, "BTCUSD", result[0]["symbol"])
			},
		},
		{
			name: "zero bounds default to the last day",
			kind: "trades",
			mockFn: func(store *recordmock.MockStore) {
				store.EXPECT().
					SelectRange(gomock.Any(), []string{"BTCUSD"}, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ []string, from, to time.Time) ([]map[string]any, error) {
						assert.WithinDuration(t, time.Now().Add(-DefaultWindow), from, 5*time.Second)
						assert.WithinDuration(t, time.Now(), to, 5*time.Second)
						return []map[string]any{}, nil
					})
			},
			assertFn: func(t *testing.T, result []map[string]any, err error) {
				assert.NoError(t, err)
				assert.Empty(t, result)
			},
		},
		{
			name:   "unknown kind rejected before the store is touched",
			kind:   "sandwiches",
			mockFn: func(store *recordmock.MockStore) {},
			assertFn: func(t *testing.T, result []map[string]any, err error) {
				assert.Nil(t, result)
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.InvalidQueryKindError)))
			},
		},
		{
			name:  "store failure surfaces",
			kind:  "trades",
			since: since,
			until: until,
			mockFn: func(store *recordmock.MockStore) {
				store.EXPECT().
					SelectRange(gomock.Any(), gomock.Any(), since, until).
					Return(nil, errors.New("connection lost"))
			},
			assertFn: func(t *testing.T, result []map[string]any, err error) {
				assert.Nil(t, result)
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := recordmock.NewMockStore(ctrl)
			tc.mockFn(store)

			svc := NewService(map[v1.Kind]v1.Store{v1.KindTrade: store}, nil, logger.NewNop())
			result, err := svc.Range(context.Background(), tc.kind, []string{"BTCUSD"}, tc.since, tc.until)
			tc.assertFn(t, result, err)
		})
	}
}

func TestService_Latest(t *testing.T) {
	testCases := []struct {
		name     string
		kind     string
		cacheFn  func(cache *cachemock.MockLatestCache)
		noCache  bool
		assertFn func(t *testing.T, fields map[string]any, err error)
	}{
		{
			name: "success",
			kind: "tickers",
			cacheFn: func(cache *cachemock.MockLatestCache) {
				cache.EXPECT().
					Get(gomock.Any(), v1.KindTicker, "BTCUSD").
					Return(map[string]any{"last_price": 50000.0}, nil)
			},
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 50000.0, fields["last_price"])
			},
		},
		{
			name:    "unknown kind",
			kind:    "sandwiches",
			cacheFn: func(cache *cachemock.MockLatestCache) {},
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.InvalidQueryKindError)))
			},
		},
		{
			name:    "cache disabled reports not found",
			kind:    "tickers",
			noCache: true,
			assertFn: func(t *testing.T, fields map[string]any, err error) {
				assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.GeneralNotFoundError)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var svc *Service
			if tc.noCache {
				svc = NewService(nil, nil, logger.NewNop())
			} else {
				cache := cachemock.NewMockLatestCache(ctrl)
				tc.cacheFn(cache)
				svc = NewService(nil, cache, logger.NewNop())
			}

			fields, err := svc.Latest(context.Background(), tc.kind, "BTCUSD")
			tc.assertFn(t, fields, err)
		})
	}
}

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	recordmock "github.com/switch527/coin-base/internal/domain/record/v1/mock"
	cachemock "github.com/switch527/coin-base/internal/infrastructure/rediscache/mock"
	"github.com/switch527/coin-base/internal/queue"
	"github.com/switch527/coin-base/pkg/logger"
	pgmock "github.com/switch527/coin-base/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func pushTrades(q *queue.Queue, n int) {
	for i := 0; i < n; i++ {
		q.Push(&v1.Trade{
			Time:    time.Now(),
			Symbol:  "BTCUSD",
			TradeID: int64(i),
			Amount:  1,
			Price:   50000,
		})
	}
}

func TestWorker_RunCycle(t *testing.T) {
	testCases := []struct {
		name     string
		records  int
		mockFn   func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache)
		assertFn func(t *testing.T, err error, q *queue.Queue)
	}{
		{
			name:    "commits after every ten records plus the remainder",
			records: 25,
			mockFn: func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache) {
				tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) {
					return ctx, nil
				}).Times(3)
				store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(25)
				tx.EXPECT().Commit(gomock.Any()).Return(nil).Times(3)
				cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(25)
			},
			assertFn: func(t *testing.T, err error, q *queue.Queue) {
				assert.NoError(t, err)
				assert.Equal(t, 0, q.Len())
			},
		},
		{
			name:    "empty queue performs no transaction work",
			records: 0,
			mockFn:  func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache) {},
			assertFn: func(t *testing.T, err error, q *queue.Queue) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "exact multiple commits without a trailing empty commit",
			records: 20,
			mockFn: func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache) {
				tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) {
					return ctx, nil
				}).Times(2)
				store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(20)
				tx.EXPECT().Commit(gomock.Any()).Return(nil).Times(2)
				cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(20)
			},
			assertFn: func(t *testing.T, err error, q *queue.Queue) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "failed commit drops the batch and the cycle keeps going",
			records: 15,
			mockFn: func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache) {
				tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) {
					return ctx, nil
				}).Times(2)
				store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(15)
				gomock.InOrder(
					tx.EXPECT().Commit(gomock.Any()).Return(errors.New("deadlock")),
					tx.EXPECT().Commit(gomock.Any()).Return(nil),
				)
				cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(5)
			},
			assertFn: func(t *testing.T, err error, q *queue.Queue) {
				assert.Error(t, err)
				assert.Equal(t, 0, q.Len())
			},
		},
		{
			name:    "insert failure rolls back the open batch",
			records: 3,
			mockFn: func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache) {
				tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) {
					return ctx, nil
				}).Times(2)
				gomock.InOrder(
					store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("bad row")),
					store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
					store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
				)
				tx.EXPECT().Rollback(gomock.Any()).Return(nil)
				tx.EXPECT().Commit(gomock.Any()).Return(nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(2)
			},
			assertFn: func(t *testing.T, err error, q *queue.Queue) {
				assert.Error(t, err)
				assert.Equal(t, 0, q.Len())
			},
		},
		{
			name:    "begin failure requeues the record",
			records: 1,
			mockFn: func(store *recordmock.MockStore, tx *pgmock.MockTransaction, cache *cachemock.MockLatestCache) {
				tx.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("pool exhausted"))
			},
			assertFn: func(t *testing.T, err error, q *queue.Queue) {
				assert.Error(t, err)
				assert.Equal(t, 1, q.Len())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := recordmock.NewMockStore(ctrl)
			tx := pgmock.NewMockTransaction(ctrl)
			cache := cachemock.NewMockLatestCache(ctrl)
			tc.mockFn(store, tx, cache)

			q := queue.New()
			pushTrades(q, tc.records)

			worker := NewWorker(Config{
				Queue:       q,
				Stores:      map[v1.Kind]v1.Store{v1.KindTrade: store},
				Transaction: tx,
				Cache:       cache,
				CommitEvery: 10,
				Logger:      logger.NewNop(),
			})

			err := worker.RunCycle(context.Background())
			tc.assertFn(t, err, q)
		})
	}
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tx := pgmock.NewMockTransaction(ctrl)

	worker := NewWorker(Config{
		Queue:         queue.New(),
		Stores:        map[v1.Kind]v1.Store{},
		Transaction:   tx,
		CommitEvery:   10,
		FlushInterval: 10 * time.Millisecond,
		Logger:        logger.NewNop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

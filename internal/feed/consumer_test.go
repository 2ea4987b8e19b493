package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/feed/mock"
	"github.com/switch527/coin-base/internal/queue"
	"github.com/switch527/coin-base/pkg/logger"
	"go.uber.org/mock/gomock"
)

func TestConsumerStream(t *testing.T) {
	validTrade := map[string]any{"id": float64(1), "amount": 0.5, "price": 50000.0}
	invalidTrade := map[string]any{"id": float64(2)}

	testCases := []struct {
		name     string
		mockFn   func(conn *mock.MockConnectivity, cancel context.CancelFunc)
		assertFn func(t *testing.T, q *queue.Queue, err error)
	}{
		{
			name: "success: valid datums are enqueued until cancellation",
			mockFn: func(conn *mock.MockConnectivity, cancel context.CancelFunc) {
				conn.EXPECT().Get(gomock.Any(), "BTCUSD", v1.KindTrade).Return(validTrade, nil)
				conn.EXPECT().Get(gomock.Any(), "BTCUSD", v1.KindTrade).DoAndReturn(
					func(ctx context.Context, symbol string, kind v1.Kind) (map[string]any, error) {
						cancel()
						return validTrade, nil
					})
			},
			assertFn: func(t *testing.T, q *queue.Queue, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 2, q.Len())
			},
		},
		{
			name: "success: invalid datum is dropped, stream continues",
			mockFn: func(conn *mock.MockConnectivity, cancel context.CancelFunc) {
				conn.EXPECT().Get(gomock.Any(), "BTCUSD", v1.KindTrade).Return(invalidTrade, nil)
				conn.EXPECT().Get(gomock.Any(), "BTCUSD", v1.KindTrade).DoAndReturn(
					func(ctx context.Context, symbol string, kind v1.Kind) (map[string]any, error) {
						cancel()
						return validTrade, nil
					})
			},
			assertFn: func(t *testing.T, q *queue.Queue, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, q.Len())
			},
		},
		{
			name: "error: get failure is fatal for the stream",
			mockFn: func(conn *mock.MockConnectivity, cancel context.CancelFunc) {
				conn.EXPECT().Get(gomock.Any(), "BTCUSD", v1.KindTrade).Return(nil, errors.New("stream broken"))
			},
			assertFn: func(t *testing.T, q *queue.Queue, err error) {
				assert.Error(t, err)
				assert.Equal(t, 0, q.Len())
			},
		},
		{
			name: "success: get error after cancellation is not a failure",
			mockFn: func(conn *mock.MockConnectivity, cancel context.CancelFunc) {
				conn.EXPECT().Get(gomock.Any(), "BTCUSD", v1.KindTrade).DoAndReturn(
					func(ctx context.Context, symbol string, kind v1.Kind) (map[string]any, error) {
						cancel()
						return nil, errors.New("connection closed")
					})
			},
			assertFn: func(t *testing.T, q *queue.Queue, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conn := mock.NewMockConnectivity(ctrl)
			tc.mockFn(conn, cancel)

			q := queue.New()
			consumer := NewConsumer(conn, q, logger.NewNop())
			err := consumer.Stream(ctx, "BTCUSD", v1.KindTrade)
			tc.assertFn(t, q, err)
		})
	}
}

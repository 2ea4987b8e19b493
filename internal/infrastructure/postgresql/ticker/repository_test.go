package ticker

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	mock "github.com/switch527/coin-base/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTickerRepository_Insert(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(ticker *v1.Ticker, mock *mock.MockPostgreSQLClient)
		assertFn func(t *testing.T, err error)
		ticker   *v1.Ticker
	}{
		{
			name: "success",
			mockFn: func(ticker *v1.Ticker, mock *mock.MockPostgreSQLClient) {
				mock.EXPECT().Exec(gomock.Any(), insertQuery,
					ticker.Time, ticker.Symbol, ticker.Bid, ticker.BidSize, ticker.Ask, ticker.AskSize,
					ticker.Change, ticker.ChangePerc, ticker.LastPrice, ticker.Volume, ticker.High, ticker.Low).Return(nil)
			},
			ticker: &v1.Ticker{
				Time:      time.Now(),
				Symbol:    "BTCUSD",
				Bid:       49999,
				BidSize:   1.2,
				Ask:       50001,
				AskSize:   0.8,
				LastPrice: 50000,
				Volume:    123.4,
				High:      51000,
				Low:       49000,
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(ticker *v1.Ticker, mock *mock.MockPostgreSQLClient) {
				mock.EXPECT().Exec(gomock.Any(), insertQuery,
					ticker.Time, ticker.Symbol, ticker.Bid, ticker.BidSize, ticker.Ask, ticker.AskSize,
					ticker.Change, ticker.ChangePerc, ticker.LastPrice, ticker.Volume, ticker.High, ticker.Low).
					Return(errors.New("error"))
			},
			ticker: &v1.Ticker{
				Time:   time.Now(),
				Symbol: "BTCUSD",
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := mock.NewMockPostgreSQLClient(ctrl)
			tc.mockFn(tc.ticker, mock)

			repo := NewRepository(mock)
			err := repo.Insert(context.Background(), tc.ticker)
			tc.assertFn(t, err)
		})
	}
}

func TestTickerRepository_SelectRange(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(time.Hour)
	testCases := []struct {
		name     string
		mockFn   func(mock *mock.MockPostgreSQLClient, mockRows *mock.MockRowsInterface)
		assertFn func(t *testing.T, err error, result []map[string]any)
		symbols  []string
	}{
		{
			name: "success - multiple symbols",
			mockFn: func(mock *mock.MockPostgreSQLClient, mockRows *mock.MockRowsInterface) {
				mock.EXPECT().Query(gomock.Any(), selectRangeQuery, []string{"BTCUSD", "ETHUSD"}, since, until).Return(mockRows, nil)

				mockRows.EXPECT().Next().Return(true)
				mockRows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*time.Time) = since.Add(time.Minute)
					*dest[1].(*string) = "ETHUSD"
					*dest[2].(*float64) = 2999.0
					*dest[3].(*float64) = 5.0
					*dest[4].(*float64) = 3001.0
					*dest[5].(*float64) = 4.0
					*dest[6].(*float64) = 12.0
					*dest[7].(*float64) = 0.4
					*dest[8].(*float64) = 3000.0
					*dest[9].(*float64) = 800.0
					*dest[10].(*float64) = 3100.0
					*dest[11].(*float64) = 2900.0
					return nil
				})
				mockRows.EXPECT().Next().Return(false)
				mockRows.EXPECT().Err().Return(nil)
				mockRows.EXPECT().Close()
			},
			symbols: []string{"BTCUSD", "ETHUSD"},
			assertFn: func(t *testing.T, err error, result []map[string]any) {
				assert.NoError(t, err)
				assert.Len(t, result, 1)
				assert.Equal(t, "ETHUSD", result[0]["symbol"])
				assert.Equal(t, 3000.0, result[0]["last_price"])
				assert.Equal(t, 2999.0, result[0]["bid"])
			},
		},
		{
			name: "success - no rows",
			mockFn: func(mock *mock.MockPostgreSQLClient, mockRows *mock.MockRowsInterface) {
				mock.EXPECT().Query(gomock.Any(), selectRangeQuery, []string{"BTCUSD"}, since, until).Return(mockRows, nil)

				mockRows.EXPECT().Next().Return(false)
				mockRows.EXPECT().Err().Return(nil)
				mockRows.EXPECT().Close()
			},
			symbols: []string{"BTCUSD"},
			assertFn: func(t *testing.T, err error, result []map[string]any) {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Len(t, result, 0)
			},
		},
		{
			name: "error - query fails",
			mockFn: func(mock *mock.MockPostgreSQLClient, mockRows *mock.MockRowsInterface) {
				mock.EXPECT().Query(gomock.Any(), selectRangeQuery, gomock.Any(), since, until).
					Return(nil, errors.New("query failed"))
			},
			symbols: []string{"BTCUSD"},
			assertFn: func(t *testing.T, err error, result []map[string]any) {
				assert.Error(t, err)
				assert.Nil(t, result)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mock.NewMockPostgreSQLClient(ctrl)
			mockRows := mock.NewMockRowsInterface(ctrl)

			tc.mockFn(mockClient, mockRows)

			repo := NewRepository(mockClient)
			result, err := repo.SelectRange(context.Background(), tc.symbols, since, until)
			tc.assertFn(t, err, result)
		})
	}
}

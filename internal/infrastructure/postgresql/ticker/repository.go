// Package ticker persists top-of-book quote snapshots.
package ticker

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/pkg/postgresql"
)

const (
	insertQuery = `INSERT INTO tickers (time, symbol, bid, bid_size, ask, ask_size, change, change_perc, last_price, volume, high, low)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	selectRangeQuery = `SELECT time, symbol, bid, bid_size, ask, ask_size, change, change_perc, last_price, volume, high, low
			  FROM tickers
			  WHERE symbol = ANY($1) AND time >= $2 AND time <= $3
			  ORDER BY time ASC`
)

// Repository represents the repository for ticker records.
type Repository struct {
	client postgresql.PostgreSQLClient
}

var _ v1.Store = (*Repository)(nil)

// NewRepository creates a new ticker repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert appends one ticker row, inside the transaction embedded in ctx if any.
func (r *Repository) Insert(ctx context.Context, rec v1.Record) error {
	ticker, ok := rec.(*v1.Ticker)
	if !ok {
		return fmt.Errorf("ticker repository cannot store %T", rec)
	}

	err := r.client.Exec(ctx, insertQuery,
		ticker.Time, ticker.Symbol, ticker.Bid, ticker.BidSize, ticker.Ask, ticker.AskSize,
		ticker.Change, ticker.ChangePerc, ticker.LastPrice, ticker.Volume, ticker.High, ticker.Low)
	if err != nil {
		return fmt.Errorf("failed to store ticker: %w", err)
	}

	return nil
}

// SelectRange returns field maps for every ticker in the inclusive window,
// ordered by time ascending.
func (r *Repository) SelectRange(ctx context.Context, symbols []string, since, until time.Time) ([]map[string]any, error) {
	rows, err := r.client.Query(ctx, selectRangeQuery, symbols, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		ticker := &v1.Ticker{}
		err := rows.Scan(&ticker.Time, &ticker.Symbol, &ticker.Bid, &ticker.BidSize,
			&ticker.Ask, &ticker.AskSize, &ticker.Change, &ticker.ChangePerc,
			&ticker.LastPrice, &ticker.Volume, &ticker.High, &ticker.Low)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		result = append(result, ticker.Fields())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// Package candle persists OHLCV candles.
package candle

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/pkg/postgresql"
)

const (
	insertQuery = `INSERT INTO candles (time, symbol, open, high, low, close, volume)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectRangeQuery = `SELECT time, symbol, open, high, low, close, volume
			  FROM candles
			  WHERE symbol = ANY($1) AND time >= $2 AND time <= $3
			  ORDER BY time ASC`
)

// Repository represents the repository for candle records.
type Repository struct {
	client postgresql.PostgreSQLClient
}

var _ v1.Store = (*Repository)(nil)

// NewRepository creates a new candle repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert appends one candle row, inside the transaction embedded in ctx if any.
func (r *Repository) Insert(ctx context.Context, rec v1.Record) error {
	candle, ok := rec.(*v1.Candle)
	if !ok {
		return fmt.Errorf("candle repository cannot store %T", rec)
	}

	err := r.client.Exec(ctx, insertQuery,
		candle.Time, candle.Symbol, candle.Open, candle.High, candle.Low, candle.Close, candle.Volume)
	if err != nil {
		return fmt.Errorf("failed to store candle: %w", err)
	}

	return nil
}

// SelectRange returns field maps for every candle in the inclusive window,
// ordered by time ascending.
func (r *Repository) SelectRange(ctx context.Context, symbols []string, since, until time.Time) ([]map[string]any, error) {
	rows, err := r.client.Query(ctx, selectRangeQuery, symbols, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query candles: %w", err)
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		candle := &v1.Candle{}
		err := rows.Scan(&candle.Time, &candle.Symbol, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candle: %w", err)
		}
		result = append(result, candle.Fields())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

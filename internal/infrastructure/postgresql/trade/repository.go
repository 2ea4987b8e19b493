// Package trade persists executed trades.
package trade

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/pkg/postgresql"
)

const (
	insertQuery = `INSERT INTO trades (time, symbol, id, amount, price)
			  VALUES ($1, $2, $3, $4, $5)`

	selectRangeQuery = `SELECT time, symbol, id, amount, price
			  FROM trades
			  WHERE symbol = ANY($1) AND time >= $2 AND time <= $3
			  ORDER BY time ASC`
)

// Repository represents the repository for trade records.
type Repository struct {
	client postgresql.PostgreSQLClient
}

var _ v1.Store = (*Repository)(nil)

// NewRepository creates a new trade repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert appends one trade row, inside the transaction embedded in ctx if any.
func (r *Repository) Insert(ctx context.Context, rec v1.Record) error {
	trade, ok := rec.(*v1.Trade)
	if !ok {
		return fmt.Errorf("trade repository cannot store %T", rec)
	}

	err := r.client.Exec(ctx, insertQuery,
		trade.Time, trade.Symbol, trade.TradeID, trade.Amount, trade.Price)
	if err != nil {
		return fmt.Errorf("failed to store trade: %w", err)
	}

	return nil
}

// SelectRange returns field maps for every trade in the inclusive window,
// ordered by time ascending.
func (r *Repository) SelectRange(ctx context.Context, symbols []string, since, until time.Time) ([]map[string]any, error) {
	rows, err := r.client.Query(ctx, selectRangeQuery, symbols, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		trade := &v1.Trade{}
		err := rows.Scan(&trade.Time, &trade.Symbol, &trade.TradeID, &trade.Amount, &trade.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		result = append(result, trade.Fields())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

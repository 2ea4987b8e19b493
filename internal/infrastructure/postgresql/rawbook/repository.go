// Package rawbook persists raw order-book events.
package rawbook

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/pkg/postgresql"
)

const (
	insertQuery = `INSERT INTO raw_books (time, symbol, id, price, amount)
			  VALUES ($1, $2, $3, $4, $5)`

	selectRangeQuery = `SELECT time, symbol, id, price, amount
			  FROM raw_books
			  WHERE symbol = ANY($1) AND time >= $2 AND time <= $3
			  ORDER BY time ASC`
)

// Repository represents the repository for raw book events.
type Repository struct {
	client postgresql.PostgreSQLClient
}

var _ v1.Store = (*Repository)(nil)

// NewRepository creates a new raw-book repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert appends one raw-book row, inside the transaction embedded in ctx if any.
func (r *Repository) Insert(ctx context.Context, rec v1.Record) error {
	event, ok := rec.(*v1.RawBookEvent)
	if !ok {
		return fmt.Errorf("raw-book repository cannot store %T", rec)
	}

	err := r.client.Exec(ctx, insertQuery,
		event.Time, event.Symbol, event.OrderID, event.Price, event.Amount)
	if err != nil {
		return fmt.Errorf("failed to store raw book event: %w", err)
	}

	return nil
}

// SelectRange returns field maps for every raw-book event in the inclusive
// window, ordered by time ascending.
func (r *Repository) SelectRange(ctx context.Context, symbols []string, since, until time.Time) ([]map[string]any, error) {
	rows, err := r.client.Query(ctx, selectRangeQuery, symbols, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw books: %w", err)
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		event := &v1.RawBookEvent{}
		err := rows.Scan(&event.Time, &event.Symbol, &event.OrderID, &event.Price, &event.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raw book event: %w", err)
		}
		result = append(result, event.Fields())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

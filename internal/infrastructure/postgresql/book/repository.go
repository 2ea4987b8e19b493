// Package book persists aggregated order-book levels.
package book

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/pkg/postgresql"
)

const (
	insertQuery = `INSERT INTO books (time, symbol, price, sig_fig, volume)
			  VALUES ($1, $2, $3, $4, $5)`

	selectRangeQuery = `SELECT time, symbol, price, sig_fig, volume
			  FROM books
			  WHERE symbol = ANY($1) AND time >= $2 AND time <= $3
			  ORDER BY time ASC`
)

// Repository represents the repository for book-level records.
type Repository struct {
	client postgresql.PostgreSQLClient
}

var _ v1.Store = (*Repository)(nil)

// NewRepository creates a new book repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert appends one book-level row, inside the transaction embedded in ctx if any.
func (r *Repository) Insert(ctx context.Context, rec v1.Record) error {
	level, ok := rec.(*v1.BookLevel)
	if !ok {
		return fmt.Errorf("book repository cannot store %T", rec)
	}

	err := r.client.Exec(ctx, insertQuery,
		level.Time, level.Symbol, level.Price, level.SigFig, level.Volume)
	if err != nil {
		return fmt.Errorf("failed to store book level: %w", err)
	}

	return nil
}

// SelectRange returns field maps for every book level in the inclusive
// window, ordered by time ascending.
func (r *Repository) SelectRange(ctx context.Context, symbols []string, since, until time.Time) ([]map[string]any, error) {
	rows, err := r.client.Query(ctx, selectRangeQuery, symbols, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		level := &v1.BookLevel{}
		err := rows.Scan(&level.Time, &level.Symbol, &level.Price, &level.SigFig, &level.Volume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book level: %w", err)
		}
		result = append(result, level.Fields())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// Package feed pulls market data from the exchange connectivity layer and
// buffers it for persistence.
package feed

import (
	"context"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
)

// Connectivity is the contract the exchange connectivity layer fulfils.
// Protocol handshake, subscription management and message decoding all live
// behind it; this service only pulls decoded datums.
//
//go:generate mockgen -source=connectivity.go -destination=mock/connectivity_mock.go -package=mock
type Connectivity interface {
	// Connect establishes the upstream feed. A failure here is fatal for
	// startup, nothing needs to be cleaned up.
	Connect(ctx context.Context) error

	// Symbols enumerates the trading symbols the feed advertises.
	Symbols() []string

	// DataTypes enumerates the record kinds the feed advertises.
	DataTypes() []v1.Kind

	// Get blocks until the next datum for the given (symbol, kind) stream is
	// available. It returns a field-name to value mapping aligned with the
	// kind's schema. Get must unblock with an error once Shutdown is called.
	Get(ctx context.Context, symbol string, kind v1.Kind) (map[string]any, error)

	// Shutdown releases upstream resources. Called exactly once per
	// successful Connect.
	Shutdown() error
}

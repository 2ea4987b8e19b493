package postgresql

import (
	"context"
	_ "embed"

	pgclient "github.com/switch527/coin-base/pkg/postgresql"
)

//go:embed migrations/001_create_tables.sql
var createTablesSQL string

// EnsureSchema creates the market data tables if they do not exist yet.
// It is safe to call on every startup.
func EnsureSchema(ctx context.Context, client pgclient.PostgreSQLClient) error {
	return client.Exec(ctx, createTablesSQL)
}

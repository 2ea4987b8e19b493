package bootstrap

import (
	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	bookInfra "github.com/switch527/coin-base/internal/infrastructure/postgresql/book"
	candleInfra "github.com/switch527/coin-base/internal/infrastructure/postgresql/candle"
	rawbookInfra "github.com/switch527/coin-base/internal/infrastructure/postgresql/rawbook"
	tickerInfra "github.com/switch527/coin-base/internal/infrastructure/postgresql/ticker"
	tradeInfra "github.com/switch527/coin-base/internal/infrastructure/postgresql/trade"
	"github.com/switch527/coin-base/pkg/postgresql"
)

// Repository collects one store per record kind plus the shared transaction
// wrapper.
type Repository struct {
	Stores      map[v1.Kind]v1.Store
	Transaction postgresql.Transaction
}

// registerRepository registers the per-kind stores.
func (b *Bootstrap) registerRepository() {
	b.Repository.Stores = map[v1.Kind]v1.Store{
		v1.KindTicker:  tickerInfra.NewRepository(b.Postgres),
		v1.KindBook:    bookInfra.NewRepository(b.Postgres),
		v1.KindRawBook: rawbookInfra.NewRepository(b.Postgres),
		v1.KindTrade:   tradeInfra.NewRepository(b.Postgres),
		v1.KindCandle:  candleInfra.NewRepository(b.Postgres),
	}
	b.Repository.Transaction = postgresql.NewTransaction(b.Postgres)
}

package bootstrap

import (
	"github.com/switch527/coin-base/internal/persistence"
	archiveUc "github.com/switch527/coin-base/internal/usecase/archive"
	queryUc "github.com/switch527/coin-base/internal/usecase/query"
)

// Usecase collects the capture and query sides of the service.
type Usecase struct {
	Archive *archiveUc.Service
	Query   *queryUc.Service
}

// registerUsecase registers the usecases.
func (b *Bootstrap) registerUsecase() {
	worker := persistence.NewWorker(persistence.Config{
		Queue:         b.Queue,
		Stores:        b.Repository.Stores,
		Transaction:   b.Repository.Transaction,
		Cache:         b.Cache,
		CommitEvery:   b.Config.Archiver.CommitEvery,
		FlushInterval: b.Config.Archiver.FlushInterval,
		Logger:        b.Logger,
	})

	b.Usecase.Archive = archiveUc.NewService(b.Connectivity, b.Queue, worker, b.Postgres, b.Logger)
	b.Usecase.Query = queryUc.NewService(b.Repository.Stores, b.Cache, b.Logger)
}

// Package bootstrap wires repositories, usecases and the API together.
package bootstrap

import (
	"github.com/switch527/coin-base/internal/feed"
	"github.com/switch527/coin-base/internal/infrastructure/rediscache"
	"github.com/switch527/coin-base/internal/queue"
	"github.com/switch527/coin-base/pkg/config"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/switch527/coin-base/pkg/postgresql"
)

// Bootstrap holds every assembled component of the service.
type Bootstrap struct {
	Repository Repository
	Usecase    Usecase
	API        API
	Logger     logger.Interface

	Config       *config.Config
	Postgres     postgresql.PostgreSQLClient
	Connectivity feed.Connectivity
	Cache        rediscache.LatestCache
	Queue        *queue.Queue
}

// BootstrapConfig carries the externally constructed dependencies.
type BootstrapConfig struct {
	Config       *config.Config
	Postgres     postgresql.PostgreSQLClient
	Connectivity feed.Connectivity
	Cache        rediscache.LatestCache
	Logger       logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.Config = config.Config
	b.Postgres = config.Postgres
	b.Connectivity = config.Connectivity
	b.Cache = config.Cache
	b.Logger = config.Logger
	b.Queue = queue.New()

	b.registerRepository()
	b.registerUsecase()
	b.registerAPI()

	return *b
}

package bootstrap

import (
	"github.com/switch527/coin-base/internal/api"
)

// API holds the HTTP front.
type API struct {
	Server *api.Server
}

// registerAPI registers the HTTP server and its routes.
func (b *Bootstrap) registerAPI() {
	handler := api.NewHandler(b.Usecase.Query, b.Logger)
	b.API.Server = api.NewServer(handler, b.Config.App.Port, b.Logger)
}

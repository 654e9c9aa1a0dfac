package orm

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/config"
	"github.com/polkiloo/customers/internal/domain/repository"
)

// Module exposes a lazily connecting factory for the gorm customer backend.
var Module = fx.Provide(newFactory)

// Factory opens the gorm backend on demand.
type Factory func() (repository.CustomerRepository, error)

type storageParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newFactory(p storageParams) Factory {
	return func() (repository.CustomerRepository, error) {
		storage, err := New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				storage.Close()
				return nil
			},
		})
		return storage.Customers(), nil
	}
}

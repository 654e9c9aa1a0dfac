package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/config"
	"github.com/polkiloo/customers/internal/domain/repository"
)

// Module exposes a lazily connecting factory for the SQL customer backend.
var Module = fx.Provide(newFactory)

// Factory opens the SQL backend on demand. Connecting happens only for the backend selected at start-up.
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
		storage, err := newStorage(p)
		if err != nil {
			return nil, err
		}
		registerLifecycle(p.Lifecycle, storage)
		return storage.Customers(), nil
	}
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

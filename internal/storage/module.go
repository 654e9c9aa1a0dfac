// Package storage selects the customer backend once at process start.
package storage

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/config"
	"github.com/polkiloo/customers/internal/domain/repository"
	"github.com/polkiloo/customers/internal/storage/orm"
	"github.com/polkiloo/customers/internal/storage/postgres"
)

// Module wires both backend factories and exposes the configured CustomerRepository.
var Module = fx.Options(
	postgres.Module,
	orm.Module,
	fx.Provide(newCustomerRepository),
)

type selectorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	SQL    postgres.Factory
	ORM    orm.Factory
}

func newCustomerRepository(p selectorParams) (repository.CustomerRepository, error) {
	var open func() (repository.CustomerRepository, error)
	switch p.Config.CustomerStore {
	case config.StoreSQL, "":
		open = p.SQL
	case config.StoreORM:
		open = p.ORM
	default:
		return nil, fmt.Errorf("unknown customer store %q", p.Config.CustomerStore)
	}

	repo, err := open()
	if err != nil {
		return nil, fmt.Errorf("open %s customer store: %w", p.Config.CustomerStore, err)
	}
	p.Logger.Info("customer store ready", slog.String("backend", p.Config.CustomerStore))
	return repo, nil
}

package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/adapter/objectstore"
	"github.com/polkiloo/customers/internal/app"
	"github.com/polkiloo/customers/internal/config"
	"github.com/polkiloo/customers/internal/logger"
	"github.com/polkiloo/customers/internal/pkg/auth"
	"github.com/polkiloo/customers/internal/server/http/handlers"
	"github.com/polkiloo/customers/internal/server/http/router"
	"github.com/polkiloo/customers/internal/storage"
	"github.com/polkiloo/customers/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		objectstore.Module,
		usecase.Module,
		fx.Provide(func(f *app.CustomerFacade) handlers.CustomersFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

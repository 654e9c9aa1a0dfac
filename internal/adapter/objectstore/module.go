package objectstore

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/config"
)

// Module exposes the S3 backed object store to the fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	return NewS3Store(p.Ctx, Options{
		Region:    p.Config.S3Region,
		Endpoint:  p.Config.S3Endpoint,
		AccessKey: p.Config.S3AccessKey,
		SecretKey: p.Config.S3SecretKey,
		PathStyle: p.Config.S3PathStyle,
	}, p.Logger)
}

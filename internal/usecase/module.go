package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/adapter/objectstore"
	"github.com/polkiloo/customers/internal/config"
	"github.com/polkiloo/customers/internal/domain/repository"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCustomerUseCase,
	NewAuthUseCase,
)

type customerParams struct {
	fx.In

	Customers repository.CustomerRepository
	Hasher    pkgAuth.PasswordHasher
	Images    objectstore.Store
	Config    *config.Config
	Logger    *slog.Logger
}

func newCustomerUseCase(p customerParams) *CustomerUseCase {
	return NewCustomerUseCase(p.Customers, p.Hasher, p.Images, p.Config.S3Bucket, p.Logger)
}

package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/customers/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenIssuer),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type issuerParams struct {
	fx.In

	Config *config.Config
}

func newTokenIssuer(p issuerParams) TokenIssuer {
	return NewJWTIssuer(p.Config.JWTSecret, Options{
		Issuer: p.Config.JWTIssuer,
		TTL:    p.Config.TokenTTL,
	})
}

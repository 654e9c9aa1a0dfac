package handlers

import (
	"context"

	"github.com/polkiloo/customers/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) (model.Customer, string, error)
	Login(ctx context.Context, email, password string) (model.Customer, string, error)
	Authenticate(ctx context.Context, token string) (model.Customer, error)
}

// CustomerFacade encapsulates customer operations exposed via HTTP.
type CustomerFacade interface {
	Customers(ctx context.Context) ([]model.Customer, error)
	Customer(ctx context.Context, id int64) (model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, update model.CustomerUpdate) (model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	UploadProfileImage(ctx context.Context, id int64, data []byte) (string, error)
	ProfileImage(ctx context.Context, id int64) ([]byte, error)
}

// CustomersFacade aggregates the full set of operations used across handlers.
type CustomersFacade interface {
	AuthFacade
	CustomerFacade
}

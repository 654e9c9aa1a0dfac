package app

import (
	"context"

	"github.com/polkiloo/customers/internal/domain/model"
	"github.com/polkiloo/customers/internal/usecase"
)

// CustomerFacade exposes customer and auth use cases to the transport layer.
type CustomerFacade struct {
	auth      *usecase.AuthUseCase
	customers *usecase.CustomerUseCase
}

func NewCustomerFacade(auth *usecase.AuthUseCase, customers *usecase.CustomerUseCase) *CustomerFacade {
	return &CustomerFacade{auth: auth, customers: customers}
}

func (f *CustomerFacade) Register(ctx context.Context, reg model.Registration) (model.Customer, string, error) {
	return f.auth.Register(ctx, reg)
}

func (f *CustomerFacade) Login(ctx context.Context, email, password string) (model.Customer, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *CustomerFacade) Authenticate(ctx context.Context, token string) (model.Customer, error) {
	return f.auth.Authenticate(ctx, token)
}

func (f *CustomerFacade) Customers(ctx context.Context) ([]model.Customer, error) {
	return f.customers.List(ctx)
}

func (f *CustomerFacade) Customer(ctx context.Context, id int64) (model.Customer, error) {
	return f.customers.Get(ctx, id)
}

func (f *CustomerFacade) UpdateCustomer(ctx context.Context, id int64, update model.CustomerUpdate) (model.Customer, error) {
	return f.customers.Update(ctx, id, update)
}

func (f *CustomerFacade) DeleteCustomer(ctx context.Context, id int64) error {
	return f.customers.DeleteByID(ctx, id)
}

func (f *CustomerFacade) UploadProfileImage(ctx context.Context, id int64, data []byte) (string, error) {
	return f.customers.UploadProfileImage(ctx, id, data)
}

func (f *CustomerFacade) ProfileImage(ctx context.Context, id int64) ([]byte, error) {
	return f.customers.ProfileImage(ctx, id)
}

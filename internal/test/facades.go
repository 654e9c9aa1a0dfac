package test

import (
	"context"

	"github.com/polkiloo/customers/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, model.Registration) (model.Customer, string, error)
	LoginFn        func(context.Context, string, string) (model.Customer, string, error)
	AuthenticateFn func(context.Context, string) (model.Customer, error)
}

// Register returns a customer and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, reg model.Registration) (model.Customer, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return model.Customer{ID: 1, Name: reg.Name, Email: reg.Email, Age: reg.Age, Gender: reg.Gender}, "token", nil
}

// Login returns a customer and token for successful login scenarios.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (model.Customer, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return model.Customer{ID: 1, Email: email}, "token", nil
}

// Authenticate resolves any token to customer 1.
func (s AuthFacadeStub) Authenticate(ctx context.Context, token string) (model.Customer, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	return model.Customer{ID: 1, Email: "stub@example.com"}, nil
}

// CustomerFacadeStub provides controllable behaviour for customer endpoints.
type CustomerFacadeStub struct {
	CustomersFn    func(context.Context) ([]model.Customer, error)
	CustomerFn     func(context.Context, int64) (model.Customer, error)
	UpdateFn       func(context.Context, int64, model.CustomerUpdate) (model.Customer, error)
	DeleteFn       func(context.Context, int64) error
	UploadImageFn  func(context.Context, int64, []byte) (string, error)
	ProfileImageFn func(context.Context, int64) ([]byte, error)
}

// Customers returns predefined customers.
func (s CustomerFacadeStub) Customers(ctx context.Context) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx)
	}
	return []model.Customer{{ID: 1, Name: "Alex", Email: "alex@example.com", Age: 30, Gender: model.GenderMale}}, nil
}

// Customer returns a customer with the requested id.
func (s CustomerFacadeStub) Customer(ctx context.Context, id int64) (model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, id)
	}
	return model.Customer{ID: id, Name: "Alex", Email: "alex@example.com", Age: 30, Gender: model.GenderMale}, nil
}

// UpdateCustomer applies update fields to a default customer.
func (s CustomerFacadeStub) UpdateCustomer(ctx context.Context, id int64, update model.CustomerUpdate) (model.Customer, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	c := model.Customer{ID: id, Name: "Alex", Email: "alex@example.com", Age: 30, Gender: model.GenderMale}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Age != nil {
		c.Age = *update.Age
	}
	return c, nil
}

// DeleteCustomer executes configured delete handler.
func (s CustomerFacadeStub) DeleteCustomer(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// UploadProfileImage returns a fixed image id.
func (s CustomerFacadeStub) UploadProfileImage(ctx context.Context, id int64, data []byte) (string, error) {
	if s.UploadImageFn != nil {
		return s.UploadImageFn(ctx, id, data)
	}
	return "image-id", nil
}

// ProfileImage returns fixed image bytes.
func (s CustomerFacadeStub) ProfileImage(ctx context.Context, id int64) ([]byte, error) {
	if s.ProfileImageFn != nil {
		return s.ProfileImageFn(ctx, id)
	}
	return []byte("image"), nil
}

// CustomersFacadeStub aggregates facade dependencies for HTTP layer tests.
type CustomersFacadeStub struct {
	AuthFacadeStub
	CustomerFacadeStub
}

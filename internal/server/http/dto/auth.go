package dto

import (
	"strings"

	"github.com/polkiloo/customers/internal/domain/model"
)

// RegistrationRequest describes the customer registration payload.
type RegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// ToModel converts request into a domain registration.
func (r RegistrationRequest) ToModel() model.Registration {
	return model.Registration{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Age:      r.Age,
		Gender:   model.Gender(strings.ToUpper(strings.TrimSpace(r.Gender))),
	}
}

// LoginRequest describes username/password payload. Username is the customer email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated customer.
type LoginResponse struct {
	Token    string       `json:"token"`
	Customer CustomerView `json:"customer"`
}

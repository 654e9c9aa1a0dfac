package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
	"github.com/polkiloo/customers/internal/domain/repository"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
)

// AuthUseCase handles registration, login and token based authentication.
type AuthUseCase struct {
	customers *CustomerUseCase
	repo      repository.CustomerRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.TokenIssuer
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(customers *CustomerUseCase, repo repository.CustomerRepository, hasher pkgAuth.PasswordHasher, tokens pkgAuth.TokenIssuer) *AuthUseCase {
	return &AuthUseCase{customers: customers, repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a customer and issues its first token.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) (model.Customer, string, error) {
	customer, err := u.customers.Add(ctx, reg)
	if err != nil {
		return model.Customer{}, "", err
	}

	token, err := u.tokens.IssueToken(customer.Email, model.RoleUser)
	if err != nil {
		return model.Customer{}, "", err
	}
	return customer, token, nil
}

// Login validates credentials and returns the customer with a fresh token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (model.Customer, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Customer{}, "", domainErrors.ErrInvalidCredentials
	}

	customer, found, err := u.repo.SelectByEmail(ctx, email)
	if err != nil {
		return model.Customer{}, "", err
	}
	if !found {
		return model.Customer{}, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.hasher.Compare(customer.PasswordHash, password); err != nil {
		return model.Customer{}, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(customer.Email, model.RoleUser)
	if err != nil {
		return model.Customer{}, "", err
	}
	return customer, token, nil
}

// Authenticate resolves the customer a bearer token was issued for.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (model.Customer, error) {
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Customer{}, pkgAuth.ErrInvalidToken
	}

	customer, found, err := u.repo.SelectByEmail(ctx, claims.Subject)
	if err != nil {
		return model.Customer{}, err
	}
	if !found || !u.tokens.Validate(token, customer.Email) {
		return model.Customer{}, pkgAuth.ErrInvalidToken
	}
	return customer, nil
}

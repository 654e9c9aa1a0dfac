package test

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/customers/internal/domain/model"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

const tokenPrefix = "token:"

// TokenIssuerStub issues "token:<subject>" tokens unless overridden.
type TokenIssuerStub struct {
	IssueFn    func(string, ...string) (string, error)
	ParseFn    func(string) (*pkgAuth.Claims, error)
	ValidateFn func(string, string) bool
}

// IssueToken returns deterministic tokens for tests.
func (s TokenIssuerStub) IssueToken(subject string, scopes ...string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(subject, scopes...)
	}
	return tokenPrefix + subject, nil
}

// ParseToken parses previously issued token strings.
func (s TokenIssuerStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	subject, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok || subject == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.Claims{
		Scopes:           []string{model.RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}, nil
}

// Validate checks token subject.
func (s TokenIssuerStub) Validate(token, subject string) bool {
	if s.ValidateFn != nil {
		return s.ValidateFn(token, subject)
	}
	claims, err := s.ParseToken(token)
	return err == nil && claims.Subject == subject
}

// AuthenticatorStub implements the bearer middleware contract.
type AuthenticatorStub struct {
	Customer model.Customer
	Err      error
	Fn       func(context.Context, string) (model.Customer, error)
}

// Authenticate either delegates to override or returns predefined result.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (model.Customer, error) {
	if s.Fn != nil {
		return s.Fn(ctx, token)
	}
	if s.Err != nil {
		return model.Customer{}, s.Err
	}
	return s.Customer, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.TokenIssuer = TokenIssuerStub{}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers expired, tampered and malformed tokens alike.
var ErrInvalidToken = errors.New("invalid auth token")

const (
	DefaultTTL    = 30 * 24 * time.Hour
	DefaultIssuer = "customers-api"
)

// Claims is the payload carried by issued tokens.
type Claims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens with a process-wide symmetric key.
// Changing the key invalidates every token issued with the previous one.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer builds JWTIssuer with provided secret and options.
func NewJWTIssuer(secret string, opts Options) *JWTIssuer {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issuer := opts.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// IssueToken returns a signed token for subject, valid for the configured TTL.
func (s *JWTIssuer) IssueToken(subject string, scopes ...string) (string, error) {
	now := s.now()
	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies signature, issuer and expiry and returns the embedded claims.
func (s *JWTIssuer) ParseToken(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate reports whether token is valid and was issued for subject.
func (s *JWTIssuer) Validate(token, subject string) bool {
	claims, err := s.ParseToken(token)
	if err != nil {
		return false
	}
	return claims.Subject == subject
}

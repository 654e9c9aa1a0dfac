package auth

import "time"

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	IssueToken(subject string, scopes ...string) (string, error)
	ParseToken(token string) (*Claims, error)
	Validate(token, subject string) bool
}

// Options tunes token issuance.
type Options struct {
	Issuer string
	TTL    time.Duration
}

package jwtx

import (
	"time"

	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Services can override them through configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// DefaultTwoFactorTokenTTL is the default lifetime for the pending token
	// handed out while a second factor is outstanding.
	DefaultTwoFactorTokenTTL = 2 * time.Minute
)

// TokenClass says which endpoint family will accept a token.
type TokenClass string

const (
	ClassAccess    TokenClass = "access"
	ClassRefresh   TokenClass = "refresh"
	ClassTwoFactor TokenClass = "two_factor"
)

// Claims are the claims carried by every token this service signs. Which of
// the custom fields are populated depends on Class:
//
//	access:     sub, role, scope, verified
//	refresh:    sub
//	two_factor: sub
type Claims struct {
	jwt.RegisteredClaims

	// Class restricts where the token may be presented.
	Class TokenClass `json:"cls"`

	// Role is the single privilege tier, e.g. "ROLE_ADMIN".
	Role string `json:"role,omitempty"`

	// Scope lists fine-grained permissions, e.g. ["games:write"].
	Scope []string `json:"scope,omitempty"`

	// Verified reports whether every factor the account requires was
	// presented. Only access tokens carry it.
	Verified *bool `json:"verified,omitempty"`
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(
	subject, role string,
	scope []string,
	verified bool,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	if len(scope) == 0 {
		scope = nil
	}
	return Claims{
		RegisteredClaims: newRegisteredClaims(subject, issuer, ttl, now),
		Class:            ClassAccess,
		Role:             role,
		Scope:            scope,
		Verified:         &verified,
	}
}

// NewRefreshClaims builds claims for a long-lived refresh token. Refresh
// tokens never carry authority.
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: newRegisteredClaims(subject, issuer, ttl, now),
		Class:            ClassRefresh,
	}
}

// NewTwoFactorClaims builds claims for the pending token that only the
// second-factor endpoint accepts.
func NewTwoFactorClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: newRegisteredClaims(subject, issuer, ttl, now),
		Class:            ClassTwoFactor,
	}
}

func newRegisteredClaims(subject, issuer string, ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two tokens
// minted within the same second for the same subject still differ by it.
func NewJTI() string {
	// Only a non-positive size errors, crypto/rand itself can't fail.
	jti, _ := cryptox.GenerateToken(cryptox.TokenSize128)
	return jti
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateClass checks the token was minted for the expected use.
func (c *Claims) ValidateClass(expected TokenClass) error {
	if c.Class != expected {
		return ErrClass
	}
	return nil
}

// ValidateExpiryAt ensures the token hasn't expired (exp) and isn't used
// before nbf, judged at the given instant.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// IsVerified is a nil-safe read of the verified claim.
func (c *Claims) IsVerified() bool {
	return c.Verified != nil && *c.Verified
}

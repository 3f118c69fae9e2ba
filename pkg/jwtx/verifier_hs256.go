package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates JWTs signed with a shared HMAC-SHA256 secret.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewVerifierHS256 creates a verifier for the given shared secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) *HS256Verifier {
	cp := make([]byte, len(secret))
	copy(cp, secret)
	return &HS256Verifier{secret: cp, opts: opts}
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	return parseAndValidate(tokenStr, jwt.SigningMethodHS256.Alg(), v.opts, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
}

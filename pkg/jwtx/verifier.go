package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration

	// Now is the verifier's clock. Nil means time.Now.
	Now func() time.Time
}

func (o VerifyOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// ErrInvalidToken is wrapped by every verification failure, so callers only
// need one errors.Is check to reject a token.
var ErrInvalidToken = errors.New("jwtx: invalid or expired token")

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrUnknownKID   = errors.New("jwtx: unknown kid")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrClass        = errors.New("jwtx: token class mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

func invalid(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidToken, cause)
}

// parseAndValidate runs the shared parse/verify pipeline for a single
// algorithm. Signature and expiry are both enforced by the parser using the
// verifier's clock.
func parseAndValidate(tokenStr, alg string, opts VerifyOptions, keyFunc jwt.Keyfunc) (Claims, error) {
	now := opts.now()
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{alg}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(opts.Leeway),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, invalid(ErrExpired)
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, invalid(ErrNotYetValid)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, invalid(ErrInvalidSig)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, invalid(ErrMalformed)
		case errors.Is(err, ErrUnknownKID):
			return Claims{}, invalid(ErrUnknownKID)
		default:
			return Claims{}, invalid(err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, invalid(ErrInvalidClaim)
	}

	if err := claims.ValidateIssuer(opts.Issuer); err != nil {
		return Claims{}, invalid(err)
	}
	if claims.Subject == "" || claims.Class == "" {
		return Claims{}, invalid(ErrInvalidClaim)
	}

	return *claims, nil
}

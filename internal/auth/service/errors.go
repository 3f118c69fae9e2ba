package service

import "errors"

// Authentication failure conditions. The HTTP layer maps each onto a response
// category, anything else becomes a server error.
var (
	ErrMethodNotSupported    = errors.New("authentication method not supported")
	ErrMissingCredentials    = errors.New("missing credentials")
	ErrBadCredentials        = errors.New("bad credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// Misconfigured accounts. These are server errors, never client errors.
var (
	ErrNoRoleAssigned = errors.New("principal has no role authority")
	ErrAmbiguousRole  = errors.New("principal has more than one role authority")
)

// ErrUnsupportedCredentials is returned when an authenticator is handed a
// credential type it doesn't understand, which is a wiring bug.
var ErrUnsupportedCredentials = errors.New("unsupported credential type")

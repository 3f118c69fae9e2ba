package authsdk

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/arcade/pkg/httpx"
)

// Error categories carried in the "error" field of a failure body.
const (
	ErrorCodeMethodNotSupported = "method_not_supported"
	ErrorCodeMissingCredentials = "missing_credentials"
	ErrorCodeBadCredentials     = "bad_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// AuthError is a categorised authentication failure. The server writes it with
// WriteError and the client decodes failure bodies back into it.
type AuthError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the failure category, e.g. "bad_credentials"
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Timestamp is when the server produced the error. Zero on the
	// predefined values.
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on category so a decoded response compares equal to the
// predefined value it was written from.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

// WriteError writes the error as a JSON body stamped with the current time.
// 401 responses also advertise the Bearer scheme.
func (e *AuthError) WriteError(w http.ResponseWriter) {
	e.WriteErrorAt(w, time.Now())
}

// WriteErrorAt is WriteError with an explicit timestamp.
func (e *AuthError) WriteErrorAt(w http.ResponseWriter, now time.Time) {
	if e.StatusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="arcade"`)
	}
	body := *e
	body.Timestamp = now.UTC()
	httpx.WriteJSON(w, e.StatusCode, body)
}

var (
	// ErrMethodNotSupported is returned when a token endpoint sees anything
	// other than POST.
	ErrMethodNotSupported = &AuthError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMethodNotSupported,
		Description: "authentication method not supported",
	}

	// ErrMissingCredentials is returned when a required credential is empty
	// or the body can't be read.
	ErrMissingCredentials = &AuthError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingCredentials,
		Description: "missing credentials",
	}

	// ErrBadCredentials covers every credential rejection. Callers can't tell
	// an unknown user from a wrong password or code.
	ErrBadCredentials = &AuthError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeBadCredentials,
		Description: "bad credentials",
	}

	// ErrInvalidToken is returned by protected endpoints when the bearer token
	// is missing, invalid, expired or of the wrong class.
	ErrInvalidToken = &AuthError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrRateLimited is returned when a client has made too many attempts.
	ErrRateLimited = &AuthError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimited,
		Description: "too many requests, please try again later",
	}

	// ErrServerError is returned when the service can't complete the request,
	// including accounts that are misconfigured.
	ErrServerError = &AuthError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

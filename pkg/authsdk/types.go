package authsdk

import (
	"time"

	"github.com/aussiebroadwan/arcade/pkg/jwtx"
)

// Token types reported in TokenPayload.TokenType.
const (
	TokenTypeBearer    = "Bearer"
	TokenTypeTwoFactor = "two_factor_pending"
)

// ScopeSeparator joins scopes in TokenPayload.Scope.
const ScopeSeparator = ";"

// ============================================================================
// Token Types
// ============================================================================

// TokenRequest is the body of POST /token.
type TokenRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"hunter22"`
}

// TwoFactorRequest is the body of POST /token/2fa. The pending token travels
// in the Authorization header.
type TwoFactorRequest struct {
	Code string `json:"code" example:"123456"`
}

// TokenPayload is the success body of both token endpoints.
type TokenPayload struct {
	// TokenType is "Bearer" for full credentials and "two_factor_pending" when
	// AccessToken is only good for POST /token/2fa.
	TokenType string `json:"token_type" example:"Bearer"`

	AccessToken string    `json:"access_token"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`

	// RefreshToken is empty when a second factor is still required.
	RefreshToken string `json:"refresh_token"`

	// Scope is the ";"-joined scope list of the access token.
	Scope string `json:"scope" example:"games:read;games:write"`
}

// RequiresSecondFactor reports whether the payload carries a pending token.
func (p TokenPayload) RequiresSecondFactor() bool {
	return p.TokenType == TokenTypeTwoFactor
}

// ============================================================================
// Account Types
// ============================================================================

// MeResponse describes the caller of GET /v1/me, read straight from the
// access token.
type MeResponse struct {
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	Scope     []string  `json:"scope"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the credential store connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the public keys for verifying access tokens. Empty
// when the service signs with a shared secret.
type JWKSResponse jwtx.JWKS

package domain

import (
	"strings"
	"time"
)

// User is a row of the credential store.
type User struct {
	ID           int64
	Username     string
	PasswordHash string     // argon2 encoded
	Authorities  []string   // ordered, e.g. ["ROLE_PLAYER", "games:read"]
	MFAEnabled   *time.Time // Timestamp when MFA was enabled (nullable)
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UsesSecondFactor reports whether logins must be completed with a TOTP code.
func (u User) UsesSecondFactor() bool {
	return u.MFAEnabled != nil && u.MFASecret != nil && *u.MFASecret != ""
}

// JoinAuthorities encodes authorities for storage.
func JoinAuthorities(a []string) string {
	return strings.Join(a, " ")
}

// SplitAuthorities decodes stored authorities, keeping order and duplicates.
func SplitAuthorities(s string) []string {
	return strings.Fields(s)
}

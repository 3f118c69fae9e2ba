package domain

import (
	"time"

	"github.com/aussiebroadwan/arcade/pkg/jwtx"
)

// SecurityToken is a signed token plus the timestamps it was minted with.
type SecurityToken struct {
	Class     jwtx.TokenClass
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedTokens is what a successful authentication produces. Refresh is nil
// and Scopes empty when Access is a two-factor pending token.
type IssuedTokens struct {
	Access  SecurityToken
	Refresh *SecurityToken
	Scopes  []string
}

// Pending reports whether these tokens only allow completing the second factor.
func (t IssuedTokens) Pending() bool {
	return t.Access.Class == jwtx.ClassTwoFactor
}

package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
)

// TokenIssuer mints the tokens handed out by a successful authentication.
type TokenIssuer struct {
	Signer       jwtx.Signer
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	TwoFactorTTL time.Duration

	// Now is the issuing clock. Nil means time.Now.
	Now func() time.Time
}

func (s *TokenIssuer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueTwoFactor mints the pending token that only POST /token/2fa accepts.
func (s *TokenIssuer) IssueTwoFactor(p domain.Principal) (domain.IssuedTokens, error) {
	claims := jwtx.NewTwoFactorClaims(p.Subject(), s.Issuer, s.TwoFactorTTL, s.now())

	pending, err := s.mint(claims)
	if err != nil {
		return domain.IssuedTokens{}, err
	}
	return domain.IssuedTokens{Access: pending}, nil
}

// IssueFull mints an access token carrying the principal's role and scopes,
// plus a refresh token. Nothing is signed unless the authorities partition
// cleanly.
func (s *TokenIssuer) IssueFull(p domain.Principal) (domain.IssuedTokens, error) {
	role, scopes, err := PartitionAuthorities(p.Authorities)
	if err != nil {
		return domain.IssuedTokens{}, fmt.Errorf("issue tokens for %s: %w", p.Subject(), err)
	}

	now := s.now()
	access, err := s.mint(jwtx.NewAccessClaims(p.Subject(), role, scopes, p.Verified, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.IssuedTokens{}, err
	}
	refresh, err := s.mint(jwtx.NewRefreshClaims(p.Subject(), s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.IssuedTokens{}, err
	}

	return domain.IssuedTokens{
		Access:  access,
		Refresh: &refresh,
		Scopes:  scopes,
	}, nil
}

func (s *TokenIssuer) mint(claims jwtx.Claims) (domain.SecurityToken, error) {
	value, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.SecurityToken{}, fmt.Errorf("sign %s token: %w", claims.Class, err)
	}
	return domain.SecurityToken{
		Class:     claims.Class,
		Value:     value,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

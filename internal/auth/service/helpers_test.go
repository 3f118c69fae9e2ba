package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

const testIssuer = "arcade-auth"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// testClock is a fixed, second-aligned instant so claims round-trip exactly.
var testClock = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestHasher(t *testing.T) *cryptox.PasswordHasher {
	t.Helper()
	h, err := cryptox.NewPasswordHasher("test-pepper")
	require.NoError(t, err)
	return h
}

func newTestIssuer(t *testing.T, now func() time.Time) *TokenIssuer {
	t.Helper()
	signer, err := jwtx.NewSignerHS256("", testSecret)
	require.NoError(t, err)
	return &TokenIssuer{
		Signer:       signer,
		Issuer:       testIssuer,
		AccessTTL:    jwtx.DefaultAccessTokenTTL,
		RefreshTTL:   jwtx.DefaultRefreshTokenTTL,
		TwoFactorTTL: jwtx.DefaultTwoFactorTokenTTL,
		Now:          now,
	}
}

func newTestVerifier(now func() time.Time) jwtx.Verifier {
	return jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Issuer: testIssuer, Now: now})
}

func fixedNow() time.Time { return testClock }

// seedUser stores a user with the given password and, when mfaSecret is set,
// an enabled TOTP second factor.
func seedUser(t *testing.T, s *sqlite.Store, h *cryptox.PasswordHasher, username, password, mfaSecret string, authorities ...string) domain.User {
	t.Helper()
	ctx := t.Context()

	hash, err := h.Hash(password)
	require.NoError(t, err)
	id, err := s.Users().CreateUser(ctx, domain.User{Username: username, PasswordHash: hash, Authorities: authorities})
	require.NoError(t, err)

	if mfaSecret != "" {
		require.NoError(t, s.Users().SetMFASecret(ctx, id, mfaSecret))
		require.NoError(t, s.Users().EnableMFA(ctx, id, testClock))
	}

	u, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	return u
}

func totpCode(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(secret, at, totpOpts)
	require.NoError(t, err)
	return code
}

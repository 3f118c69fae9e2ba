package cryptox_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newHasher(t *testing.T, pepper string) *cryptox.PasswordHasher {
	t.Helper()
	h, err := cryptox.NewPasswordHasher(pepper)
	require.NoError(t, err)
	return h
}

func TestPasswordHasher_UniqueSalts(t *testing.T) {
	h := newHasher(t, "pepper")

	hash1, err := h.Hash("hunter22")
	require.NoError(t, err)
	hash2, err := h.Hash("hunter22")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "same password should produce different hashes")
	require.True(t, strings.HasPrefix(hash1, "$argon2id$v=19$m=19456,t=2,p=1$"))
}

func TestPasswordHasher_Verify(t *testing.T) {
	h := newHasher(t, "pepper")

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, h.Verify("correct horse battery staple", hash))
	require.ErrorIs(t, h.Verify("Correct horse battery staple", hash), cryptox.ErrPasswordMismatch)
	require.ErrorIs(t, h.Verify("", hash), cryptox.ErrPasswordMismatch)
}

func TestPasswordHasher_PepperMatters(t *testing.T) {
	hash, err := newHasher(t, "pepper-a").Hash("s3cret")
	require.NoError(t, err)

	err = newHasher(t, "pepper-b").Verify("s3cret", hash)
	require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
}

func TestPasswordHasher_InvalidHashFormat(t *testing.T) {
	h := newHasher(t, "pepper")

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "password"},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$nonsense$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"bad hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("password", tt.hash), cryptox.ErrInvalidHash)
		})
	}
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	h := newHasher(t, "pepper")
	require.NotPanics(t, func() { h.VerifyDummy("anything") })
}

package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestEdDSASignAndVerify(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	kid := "test-key-eddsa"

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NotNil(t, signer)
	require.NoError(t, signer.Validate())
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, kid, signer.KID())

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(
		"456",
		"ROLE_USER",
		[]string{"games:read", "platforms:read"},
		false,
		exampleIssuer,
		5*time.Minute,
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	jwks := keyset.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.NotEmpty(t, jwks.Keys[0].X)

	verifier := jwtx.NewVerifierEdDSA(keyset, jwtx.VerifyOptions{Issuer: exampleIssuer})

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)

	require.Equal(t, claims.Issuer, parsed.Issuer)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Role, parsed.Role)
	require.Equal(t, claims.Scope, parsed.Scope)
	require.False(t, parsed.IsVerified())
	require.NotEmpty(t, parsed.ID)
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewRefreshClaims("789", exampleIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	verifier := jwtx.NewVerifierEdDSA(keyset, jwtx.VerifyOptions{Issuer: "wrong-issuer"})

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForUnknownKey(t *testing.T) {
	pemKey1, _ := cryptox.GenerateEd25519Key()
	signer1, _ := jwtx.NewSignerEdDSA("key1", pemKey1)

	pemKey2, _ := cryptox.GenerateEd25519Key()
	signer2, _ := jwtx.NewSignerEdDSA("key2", pemKey2)

	token, _ := signer1.Sign(jwtx.NewTwoFactorClaims("1", exampleIssuer, time.Minute, time.Now()))

	// Keyset only contains key2
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer2))

	verifier := jwtx.NewVerifierEdDSA(keyset, jwtx.VerifyOptions{})

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
}

func TestEdDSAVerifyFailsForHS256Token(t *testing.T) {
	hs, err := jwtx.NewSignerHS256("eddsa-key", testSecret)
	require.NoError(t, err)

	token, err := hs.Sign(jwtx.NewRefreshClaims("1", exampleIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("eddsa-key", pemKey)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	// Same kid, different algorithm: the parser must refuse it.
	_, err = jwtx.NewVerifierEdDSA(keyset, jwtx.VerifyOptions{}).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestEdDSAValidateFailsForInvalidKey(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("test", []byte("not-a-pem-key"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid PEM")
}

func TestNewVerifierFor(t *testing.T) {
	hs, err := jwtx.NewSignerHS256("", testSecret)
	require.NoError(t, err)

	v, err := jwtx.NewVerifierFor(hs, nil, jwtx.VerifyOptions{})
	require.NoError(t, err)
	require.IsType(t, &jwtx.HS256Verifier{}, v)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	ed, err := jwtx.NewSignerEdDSA("k", pemKey)
	require.NoError(t, err)

	v, err = jwtx.NewVerifierFor(ed, jwtx.NewKeySet(), jwtx.VerifyOptions{})
	require.NoError(t, err)
	require.IsType(t, &jwtx.EdDSAVerifier{}, v)
}

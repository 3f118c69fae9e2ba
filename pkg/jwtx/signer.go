package jwtx

import "fmt"

// Supported signing algorithms.
const (
	AlgHS256 = "HS256"
	AlgEdDSA = "EdDSA"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	Validate() error
}

// PublicSigner is a Signer whose verification key may be published in a JWKS.
type PublicSigner interface {
	Signer
	PublicJWK() JWK
}

// NewSignerHS256 creates an HMAC-SHA256 signer over a shared secret.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	s := newHS256Signer(kid, secret)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSignerEdDSA creates an EdDSA signer from PEM bytes.
// Ed25519 keys must be in PKCS8 format.
func NewSignerEdDSA(kid string, pemKey []byte) (PublicSigner, error) {
	return newEdDSASigner(kid, pemKey)
}

// NewVerifierFor returns the verifier matching a signer's algorithm. HS256
// verifiers reuse the shared secret; EdDSA verifiers read from keys.
func NewVerifierFor(s Signer, keys *KeySet, opts VerifyOptions) (Verifier, error) {
	switch signer := s.(type) {
	case *HS256Signer:
		return NewVerifierHS256(signer.secret, opts), nil
	case *EdDSASigner:
		return NewVerifierEdDSA(keys, opts), nil
	default:
		return nil, fmt.Errorf("jwtx: no verifier for algorithm %q", s.Alg())
	}
}

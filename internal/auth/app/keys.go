package app

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
)

// AuthKeys is everything token signing and verification needs.
type AuthKeys struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	KeySet   *jwtx.KeySet
}

// InitAuthKeys loads the signing key for the configured algorithm, creating
// and persisting one on first start so tokens survive restarts.
//
//   - HS256: AUTH_SECRET if set, otherwise a 256-bit secret kept in
//     AUTH_SECRET_FILE. Nothing is published in the JWKS.
//   - EdDSA: an Ed25519 key kept in AUTH_SIGNING_KEY_FILE. The public half is
//     published in the JWKS under a kid derived from the key.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*AuthKeys, error) {
	keys := &AuthKeys{KeySet: jwtx.NewKeySet()}
	opts := jwtx.VerifyOptions{Issuer: cfg.Issuer}

	switch cfg.Algorithm {
	case jwtx.AlgHS256:
		secret := []byte(cfg.Secret)
		if len(secret) == 0 {
			var err error
			secret, err = cryptox.LoadOrCreateSecret(cfg.SecretFile, jwtx.MinHS256SecretSize)
			if err != nil {
				return nil, fmt.Errorf("failed to load HS256 secret: %w", err)
			}
		}

		signer, err := jwtx.NewSignerHS256("", secret)
		if err != nil {
			return nil, err
		}
		keys.Signer = signer

	case jwtx.AlgEdDSA:
		pemKey, err := loadOrCreateEd25519(cfg.SigningKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load Ed25519 key: %w", err)
		}

		sum := sha256.Sum256(pemKey)
		signer, err := jwtx.NewSignerEdDSA(hex.EncodeToString(sum[:8]), pemKey)
		if err != nil {
			return nil, err
		}
		if err := keys.KeySet.AddSigner(signer); err != nil {
			return nil, err
		}
		keys.Signer = signer

	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}

	if err := keys.Signer.Validate(); err != nil {
		return nil, err
	}

	verifier, err := jwtx.NewVerifierFor(keys.Signer, keys.KeySet, opts)
	if err != nil {
		return nil, err
	}
	keys.Verifier = verifier

	logger.Info("signing key loaded",
		"algorithm", keys.Signer.Alg(),
		"kid", keys.Signer.KID(),
		"published_keys", keys.KeySet.Len(),
		"issuer", cfg.Issuer,
	)
	return keys, nil
}

func loadOrCreateEd25519(path string) ([]byte, error) {
	path = filepath.Clean(path)

	pemKey, err := os.ReadFile(path)
	if err == nil {
		return pemKey, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	pemKey, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return nil, err
	}
	return pemKey, nil
}

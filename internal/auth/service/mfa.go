package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP parameters. Authenticator apps assume these, so they are fixed.
const (
	totpPeriod = 30
	totpSkew   = 1
)

var totpOpts = totp.ValidateOpts{
	Period:    totpPeriod,
	Skew:      totpSkew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled for this user")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
)

// ValidateTOTP checks code against secret at the given time, allowing one
// period of clock drift either way.
func ValidateTOTP(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totpOpts)
	return err == nil && ok
}

// MFAService manages TOTP enrolment for operators.
type MFAService struct {
	Store  store.Store
	Issuer string // Issuer name shown in authenticator apps, e.g. "Arcade"

	// Now is the TOTP clock. Nil means time.Now.
	Now func() time.Time
}

func (s *MFAService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnrollTOTP generates a TOTP secret for the user and returns it along with an
// otpauth URL. This does NOT enable MFA yet, a code must be confirmed first.
func (s *MFAService) EnrollTOTP(ctx context.Context, username string) (domain.MFAEnrollment, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u.MFAEnabled != nil {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Username,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().SetMFASecret(ctx, u.ID, key.Secret()); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return domain.MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: u.Username,
	}, nil
}

// ConfirmTOTP enables MFA once the user proves their app produces valid codes.
func (s *MFAService) ConfirmTOTP(ctx context.Context, username, code string) error {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u.MFAEnabled != nil {
		return ErrMFAAlreadyEnabled
	}
	if u.MFASecret == nil || *u.MFASecret == "" {
		return ErrMFANotEnrolled
	}

	now := s.now()
	if !ValidateTOTP(code, *u.MFASecret, now) {
		return ErrInvalidTOTPCode
	}
	return s.Store.Users().EnableMFA(ctx, u.ID, now)
}

// DisableTOTP turns MFA off and forgets the secret.
func (s *MFAService) DisableTOTP(ctx context.Context, username string) error {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	return s.Store.Users().DisableMFA(ctx, u.ID)
}

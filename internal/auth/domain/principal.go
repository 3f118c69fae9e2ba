package domain

import "strconv"

// Principal is the identity an authenticator vouches for. Token issuance only
// ever reads it.
type Principal struct {
	ID       int64
	Username string

	// SecondFactor is set when the account has TOTP enabled.
	SecondFactor bool

	// Verified is true once every factor the account requires has been
	// presented.
	Verified bool

	// Authorities holds one role marker and any number of scopes, in the
	// order they were assigned.
	Authorities []string
}

// Subject is the token subject for this principal.
func (p Principal) Subject() string {
	return strconv.FormatInt(p.ID, 10)
}

// PrincipalFromUser derives the principal for a user who has just passed
// their password check.
func PrincipalFromUser(u User) Principal {
	mfa := u.UsesSecondFactor()
	return Principal{
		ID:           u.ID,
		Username:     u.Username,
		SecondFactor: mfa,
		Verified:     !mfa,
		Authorities:  append([]string(nil), u.Authorities...),
	}
}

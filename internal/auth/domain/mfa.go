package domain

// MFAEnrollment is handed to an operator after TOTP is enabled for a user.
type MFAEnrollment struct {
	Secret  string // Base32 encoded secret for TOTP
	URL     string // otpauth:// URL for QR code generation
	Issuer  string // Issuer name shown by authenticator apps
	Account string // Account name, the username
}

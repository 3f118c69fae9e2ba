/*
Package authsdk holds the wire contract of the arcade authentication service
and a small client for it.

# Flows

Primary login exchanges a username and password for tokens:

	client := authsdk.NewClient("https://auth.example.com")
	tok, err := client.Token(ctx, "alice", "hunter22")

When the account has a second factor enabled the payload's TokenType is
TokenTypeTwoFactor, AccessToken holds a short-lived pending token and
RefreshToken is empty. Complete the login with the one-time code:

	if tok.RequiresSecondFactor() {
		tok, err = client.CompleteTwoFactor(ctx, tok.AccessToken, code)
	}

# Errors

Every failure response decodes into an *AuthError. Compare against the
predefined values with errors.Is, which matches on the error category:

	if errors.Is(err, authsdk.ErrBadCredentials) {
		// wrong username, password, pending token or code
	}
*/
package authsdk

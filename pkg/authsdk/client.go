package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the arcade authentication service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Token performs the primary login.
func (c *Client) Token(ctx context.Context, username, password string) (*TokenPayload, error) {
	var out TokenPayload
	err := c.postJSON(ctx, "/token", "", TokenRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteTwoFactor exchanges a pending token and one-time code for full
// credentials.
func (c *Client) CompleteTwoFactor(ctx context.Context, pendingToken, code string) (*TokenPayload, error) {
	var out TokenPayload
	err := c.postJSON(ctx, "/token/2fa", pendingToken, TwoFactorRequest{Code: code}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the identity behind an access token.
func (c *Client) Me(ctx context.Context, accessToken string) (*MeResponse, error) {
	var out MeResponse
	if err := c.get(ctx, "/v1/me", accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJWKS retrieves the JSON Web Key Set for token verification.
func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	var out JWKSResponse
	if err := c.get(ctx, "/.well-known/jwks.json", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/readyz", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, path, bearer string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, bearer, out)
}

func (c *Client) get(ctx context.Context, path, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, bearer, out)
}

func (c *Client) do(req *http.Request, bearer string, out any) error {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseErrorResponse turns a non-200 body into an *AuthError. Bodies that
// aren't in our format still produce one, keyed on the status code.
func parseErrorResponse(status int, raw []byte) error {
	var ae AuthError
	if err := json.Unmarshal(raw, &ae); err != nil || ae.Code == "" {
		return &AuthError{
			StatusCode:  status,
			Code:        fallbackCode(status),
			Description: strings.TrimSpace(string(raw)),
		}
	}
	ae.StatusCode = status
	return &ae
}

func fallbackCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return ErrorCodeInvalidToken
	case http.StatusTooManyRequests:
		return ErrorCodeRateLimited
	default:
		return ErrorCodeServerError
	}
}

// IsAuthError reports whether err is an *AuthError and returns it.
func IsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

//go:build e2e

package auth_test

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, account provisioning through the CLI, and
 * assertions.
 */

const (
	testImageName = "arcade-auth-test:latest"
	binaryPath    = "/auth"

	playerUsername = "alice"
	playerPassword = "hunter22!"
	adminUsername  = "bob"
	adminPassword  = "correct-horse"
)

var playerAuthorities = []string{"ROLE_PLAYER", "games:read", "games:write"}

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// authContainer is a running auth service.
type authContainer struct {
	container testcontainers.Container
	baseURL   string
	client    *authsdk.Client
}

// baseEnv is the environment every container gets. Rate limits are relaxed
// because tests make many rapid requests.
func baseEnv() map[string]string {
	return map[string]string{
		"AUTH_DATABASE_FILE":          "/data/auth.db",
		"AUTH_PEPPER_FILE":            "/data/pepper",
		"AUTH_SECRET_FILE":            "/data/jwt-secret",
		"AUTH_SIGNING_KEY_FILE":       "/data/signing-key.pem",
		"AUTH_ISSUER":                 "arcade-auth",
		"ENV":                         "test",
		"LOG_LEVEL":                   "info",
		"LOG_FORMAT":                  "json",
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
	}
}

// setupAuthContainer starts the auth service with baseEnv plus overrides. An
// empty override value removes the variable.
func setupAuthContainer(t *testing.T, overrides map[string]string) *authContainer {
	t.Helper()
	ctx := context.Background()

	env := baseEnv()
	maps.Copy(env, overrides)
	maps.DeleteFunc(env, func(_, v string) bool { return v == "" })

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return &authContainer{
		container: container,
		baseURL:   baseURL,
		client:    authsdk.NewClient(baseURL),
	}
}

// cli runs an admin subcommand inside the container and returns its output.
func (c *authContainer) cli(t *testing.T, args ...string) string {
	t.Helper()

	code, reader, err := c.container.Exec(t.Context(), append([]string{binaryPath}, args...), tcexec.Multiplexed())
	require.NoError(t, err)

	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Zero(t, code, "auth %s failed: %s", strings.Join(args, " "), out)
	return string(out)
}

// createUser provisions an account through the CLI.
func (c *authContainer) createUser(t *testing.T, username, password string, authorities ...string) {
	t.Helper()
	args := []string{"user", "create", username, "--password", password}
	for _, a := range authorities {
		args = append(args, "--authority", a)
	}
	c.cli(t, args...)
}

// enableTOTP enrols and confirms a second factor, returning the secret.
func (c *authContainer) enableTOTP(t *testing.T, username string) string {
	t.Helper()

	var secret string
	for line := range strings.Lines(c.cli(t, "user", "enroll-totp", username)) {
		if s, ok := strings.CutPrefix(strings.TrimSpace(line), "secret: "); ok {
			secret = s
		}
	}
	require.NotEmpty(t, secret, "enroll-totp printed no secret")

	c.cli(t, "user", "confirm-totp", username, totpNow(t, secret))
	return secret
}

func totpNow(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

// assertFullCredentials verifies a token payload carries usable credentials.
func assertFullCredentials(t *testing.T, p *authsdk.TokenPayload) {
	t.Helper()
	require.NotNil(t, p)
	require.Equal(t, authsdk.TokenTypeBearer, p.TokenType)
	require.NotEmpty(t, p.AccessToken, "Access token should not be empty")
	require.NotEmpty(t, p.RefreshToken, "Refresh token should not be empty")
	require.True(t, p.ExpiresAt.After(p.IssuedAt))
}

// assertAuthError checks err is an AuthError with the given status and code.
func assertAuthError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := authsdk.IsAuthError(err)
	require.True(t, ok, "expected an AuthError, got %v", err)
	require.Equal(t, status, ae.StatusCode)
	require.Equal(t, code, ae.Code)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

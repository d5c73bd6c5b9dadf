package auth_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for identity service end-to-end tests.
 * This includes container setup, account operations, and assertions.
 */

const (
	testImageName = "identity-auth-test:latest"

	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	userPassword  = "User1234!"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete. Under -short every test skips, so no image is built.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

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

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

func baseEnv() map[string]string {
	return map[string]string{
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"AUTH_KEY_MODE":      "ephemeral",
		"AUTH_KEY_ID":        "identity-e2e-key",
		"AUTH_DATABASE_FILE": "/tmp/auth.db",
		"PEPPER_FILE":        "/tmp/pepper",
		"COOKIE_SECURE":      "false",
		"ADMIN_EMAIL":        adminEmail,
		"ADMIN_PASSWORD":     adminPassword,
	}
}

// relaxedRateLimits raises every limit; tests make many rapid requests from
// one address.
func relaxedRateLimits(env map[string]string) map[string]string {
	for _, profile := range []string{"STRICT", "MODERATE", "LENIENT"} {
		env["RATELIMIT_"+profile+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+profile+"_BURST"] = "1000"
	}
	return env
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupAuthContainer starts the service with relaxed rate limits.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, relaxedRateLimits(baseEnv()))
}

// setupAuthContainerWithDefaultRateLimits starts the service with production
// rate limits, for tests that check the limits themselves.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func newClient(t *testing.T, baseURL string) *authsdk.SDKClient {
	t.Helper()
	c, err := authsdk.NewSDKClient(baseURL)
	require.NoError(t, err)
	return c
}

// loginAdmin returns a client signed in as the bootstrapped admin.
func loginAdmin(t *testing.T, baseURL string) *authsdk.SDKClient {
	t.Helper()
	c := newClient(t, baseURL)
	_, err := c.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err, "bootstrapped admin should be able to log in")
	return c
}

// registerCustomer returns a client signed in as a fresh customer.
func registerCustomer(t *testing.T, baseURL, email string) (*authsdk.SDKClient, int64) {
	t.Helper()
	c := newClient(t, baseURL)
	id, err := c.Register(t.Context(), authsdk.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  userPassword,
	})
	require.NoError(t, err, "register should succeed")
	require.Positive(t, id)
	return c, id
}

// assertStatus checks that err is an API error with the given status.
func assertStatus(t *testing.T, err error, status int, context string) *authsdk.APIError {
	t.Helper()
	require.Error(t, err, context)
	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr), "%s - expected an API error, got: %v", context, err)
	require.Equal(t, status, apiErr.StatusCode, "%s - %s", context, apiErr.Error())
	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

//go:build e2e

package portal_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/portalgate/pkg/portalsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for portal service end-to-end tests.
 * This includes container setup, the seed data set and assertions.
 */

const (
	testImageName = "portalgate-test:latest"
	seedPath      = "/data/seed.yaml"
)

// Every account in the seed uses "<name>-pw" as password.
const seedYAML = `
customers:
  - id: c1
    name: Acme
users:
  - {id: u-admin, name: Ada, email: ada@example.com, password: ada-pw, role: master_admin}
  - {id: u-sub, name: Sid, email: sid@example.com, password: sid-pw, role: sub_admin}
  - {id: u-carl, name: Carl, email: carl@example.com, password: carl-pw, role: client, customer_id: c1}
  - {id: u-pia, name: Pia, email: pia@example.com, password: pia-pw, role: client_project, customer_id: c1, project_id: p1}
  - {id: u-eve, name: Eve, email: eve@example.com, password: eve-pw, role: employee, employee_id: e1}
  - {id: u-otto, name: Otto, email: otto@example.com, password: otto-pw, role: employee, employee_id: e2, employee_status: inactive}
  - {id: u-sam, name: Sam, email: sam@example.com, password: sam-pw, role: sales, sales_rep_id: s1}
  - {id: u-sue, name: Sue, email: sue@example.com, password: sue-pw, role: support}
projects:
  - {id: p1, customer_id: c1, sales_rep_id: s1, name: Website, members: [e1]}
tasks:
  - {id: t1, project_id: p1, title: Design, customer_visible: true, assignees: [e1]}
  - {id: t2, project_id: p1, title: Internal, assignees: [e1]}
timesheets:
  - {id: ts1, employee_id: e1, status: submitted}
leave_requests:
  - {id: lr1, employee_id: e1, status: pending}
payroll_items:
  - {id: pi1, employee_id: e1, amount_cents: 250000}
licenses:
  - {id: l1, subscription_id: sub1, customer_id: c1, sales_rep_id: s1}
documents:
  - {id: d1, name: Brief, uploaded_by: u-carl, project_id: p1}
`

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Portal Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Portal Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/portal/Dockerfile",
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

// setupPortalContainer starts the seeded portal service and returns its base URL.
func setupPortalContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"SEED_FILE":  seedPath,
			"ENV":        "test",
			"LOG_LEVEL":  "info",
			"LOG_FORMAT": "json",
			// Tests log in many times from one address; the per-IP limits
			// must not mask the login throttle under test.
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
			"RATELIMIT_LENIENT_REQUESTS":  "1000",
			"RATELIMIT_LENIENT_BURST":     "1000",
		},
		Files: []testcontainers.ContainerFile{
			{
				Reader:            strings.NewReader(seedYAML),
				ContainerFilePath: seedPath,
				FileMode:          0o644,
			},
		},
		WaitingFor: wait.ForHTTP("/livez").
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

func newClient(t *testing.T, baseURL string) *portalsdk.SDKClient {
	t.Helper()
	client, err := portalsdk.NewSDKClient(baseURL)
	require.NoError(t, err)
	return client
}

// login logs in on portal with a fresh client and requires success.
func login(t *testing.T, baseURL, portal, email, password string) *portalsdk.SDKClient {
	t.Helper()
	client := newClient(t, baseURL)
	outcome, err := client.Login(t.Context(), portal, email, password, "")
	require.NoError(t, err)
	require.True(t, outcome.Succeeded, "login of %s on %s went back to %s", email, portal, outcome.Location)
	return client
}

// loginPage fetches the login form of the client's last portal so flashed
// errors can be asserted.
func loginPage(t *testing.T, client *portalsdk.SDKClient, path string) string {
	t.Helper()
	resp, err := client.HTTPClient.Get(client.BaseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func assertHealthy(t *testing.T, health *portalsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected API error, got %v", err)
	require.Equal(t, code, apiErr.StatusCode)
}

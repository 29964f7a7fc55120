package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	porthttp "github.com/aussiebroadwan/portalgate/internal/portal/http"

	"github.com/aussiebroadwan/portalgate/internal/portal/events"
	"github.com/aussiebroadwan/portalgate/internal/portal/guard"
	"github.com/aussiebroadwan/portalgate/internal/portal/policy"
	"github.com/aussiebroadwan/portalgate/internal/portal/recaptcha"
	"github.com/aussiebroadwan/portalgate/internal/portal/service"
	"github.com/aussiebroadwan/portalgate/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/portalgate/internal/portal/throttle"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
	"github.com/aussiebroadwan/portalgate/pkg/portalsdk"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var seed = service.SeedData{
	Customers: []service.SeedCustomer{{ID: "c1", Name: "Acme"}},
	Users: []service.SeedUser{
		{ID: "u-admin", Name: "Ada", Email: "ada@example.com", Password: "pw-ada", Role: "master_admin"},
		{ID: "u-carl", Name: "Carl", Email: "carl@example.com", Password: "pw-carl", Role: "client", CustomerID: "c1"},
		{ID: "u-eve", Name: "Eve", Email: "eve@example.com", Password: "pw-eve", Role: "employee", EmployeeID: "e1"},
		{ID: "u-otto", Name: "Otto", Email: "otto@example.com", Password: "pw-otto", Role: "employee", EmployeeID: "e2"},
	},
	Projects:     []service.SeedProject{{ID: "p1", CustomerID: "c1", Name: "Site", Members: []string{"e1"}}},
	Tasks:        []service.SeedTask{{ID: "t1", ProjectID: "p1", Title: "Design", Assignees: []string{"e1"}}},
	Timesheets:   []service.SeedTimesheet{{ID: "ts1", EmployeeID: "e1", Status: "submitted"}},
	PayrollItems: []service.SeedPayrollItem{{ID: "pi2", EmployeeID: "e2", AmountCents: 120000}},
	Documents:    []service.SeedDocument{{ID: "d1", Name: "Brief", UploadedBy: "u-carl", ProjectID: "p1"}},
}

type harness struct {
	srv   *httptest.Server
	store *sqlite.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, (&service.SeedService{Store: st}).Seed(ctx, seed))

	bus := events.NewBus()
	tracker := &service.SessionTracker{Store: st}
	tracker.Register(bus)

	guards := make(map[string]service.Guard)
	for name, g := range guard.NewSet(st) {
		guards[name] = g
	}

	sessions := &websession.Manager{Store: st, Key: []byte("0123456789abcdef0123456789abcdef")}
	router := porthttp.NewRouter("test", st, sessions, slogx.Discard())
	router.LoginService = &service.LoginService{
		Store:     st,
		Guards:    guards,
		Throttle:  throttle.NewLimiter(5, time.Minute),
		Recaptcha: recaptcha.Noop{},
		Events:    bus,
	}
	router.Tracker = tracker
	router.Gate = policy.NewGate(nil)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &harness{srv: srv, store: st}
}

func (h *harness) client(t *testing.T) *portalsdk.SDKClient {
	t.Helper()
	c, err := portalsdk.NewSDKClient(h.srv.URL)
	require.NoError(t, err)
	return c
}

func (h *harness) loginAs(t *testing.T, portal, email, password string) *portalsdk.SDKClient {
	t.Helper()
	c := h.client(t)
	out, err := c.Login(context.Background(), portal, email, password, "")
	require.NoError(t, err)
	require.True(t, out.Succeeded, "login %s on %s went to %s", email, portal, out.Location)
	return c
}

func getBody(t *testing.T, c *portalsdk.SDKClient, path string) string {
	t.Helper()
	resp, err := c.HTTPClient.Get(c.BaseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got %v", err)
	require.Equal(t, code, apiErr.StatusCode)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	ctx := context.Background()

	live, err := c.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestClientLoginRedirects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		redirect string
		want     string
	}{
		{"default", "", "/client/dashboard"},
		{"local path", "/client/invoices", "/client/invoices"},
		{"absolute url", "https://evil.example/steal", "/client/dashboard"},
		{"protocol relative", "//evil.example", "/client/dashboard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := h.client(t)
			out, err := c.Login(ctx, "web", "Carl@Example.com", "pw-carl", tc.redirect)
			require.NoError(t, err)
			require.True(t, out.Succeeded)
			require.Equal(t, tc.want, out.Location)
		})
	}

	c := h.loginAs(t, "web", "carl@example.com", "pw-carl")
	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "u-carl", me.UserID)
	require.Equal(t, "web", me.Portal)
	require.Equal(t, "c1", me.CustomerID)
	require.False(t, me.IsAdmin)
}

func TestAdminPortalRejectsClient(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.client(t)

	out, err := c.Login(ctx, "admin", "carl@example.com", "pw-carl", "")
	require.NoError(t, err)
	require.False(t, out.Succeeded)
	require.Equal(t, "/admin/login", out.Location)

	body := getBody(t, c, "/admin/login")
	require.Contains(t, body, service.MsgRejected)
	require.Contains(t, body, "carl@example.com")

	// The flash is gone on the next render.
	require.NotContains(t, getBody(t, c, "/admin/login"), service.MsgRejected)

	// The guard login was undone.
	_, err = c.Me(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestInvalidCredentials(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	out, err := c.Login(context.Background(), "web", "carl@example.com", "wrong", "")
	require.NoError(t, err)
	require.False(t, out.Succeeded)
	require.Equal(t, "/login", out.Location)
	require.Contains(t, getBody(t, c, "/login"), service.MsgInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	_, err := c.Login(context.Background(), "web", "not-an-email", "", "")
	requireStatus(t, err, http.StatusUnprocessableEntity)

	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "validation_failed", apiErr.Code)
	require.Contains(t, apiErr.Fields, "email")
	require.Contains(t, apiErr.Fields, "password")
}

func TestLoginThrottle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.client(t)

	for range 5 {
		out, err := c.Login(ctx, "employee", "eve@example.com", "wrong", "")
		require.NoError(t, err)
		require.False(t, out.Succeeded)
	}

	// Correct credentials are refused while locked out.
	out, err := c.Login(ctx, "employee", "eve@example.com", "pw-eve", "")
	require.NoError(t, err)
	require.False(t, out.Succeeded)
	require.Contains(t, getBody(t, c, "/employee/login"), "Too many login attempts")

	// Other portals keep their own counter.
	other := h.loginAs(t, "web", "carl@example.com", "pw-carl")
	_, err = other.Me(ctx)
	require.NoError(t, err)
}

func TestLoginThrottleIgnoresForwardedFor(t *testing.T) {
	h := newHarness(t)
	noFollow := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	post := func(password, forwardedFor string) string {
		form := url.Values{"email": {"eve@example.com"}, "password": {password}}
		req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/employee/login", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", forwardedFor)

		resp, err := noFollow.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)
		return resp.Header.Get("Location")
	}

	for range 5 {
		require.Equal(t, "/employee/login", post("wrong", "10.0.0.1"))
	}

	// A fresh forwarded address from an untrusted peer is the same client.
	require.Equal(t, "/employee/login", post("pw-eve", "10.0.0.99"))
}

func TestMeRequiresLogin(t *testing.T) {
	h := newHarness(t)
	_, err := h.client(t).Me(context.Background())
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestEmployeeResourceAccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.loginAs(t, "employee", "eve@example.com", "pw-eve")

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "employee", me.ActorType)
	require.Equal(t, "e1", me.EmployeeID)

	task, err := c.GetTask(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Design", task.Title)
	require.Equal(t, []string{"e1"}, task.Assignees)

	_, err = c.GetProject(ctx, "p1")
	require.NoError(t, err)

	_, err = c.GetTimesheet(ctx, "ts1")
	require.NoError(t, err)

	// Someone else's payroll, and anything needing admin rights, is denied.
	_, err = c.GetPayrollItem(ctx, "pi2")
	require.True(t, portalsdk.IsForbidden(err), "got %v", err)

	title := "Renamed"
	_, err = c.UpdateTask(ctx, "t1", portalsdk.UpdateTaskRequest{Title: &title})
	require.True(t, portalsdk.IsForbidden(err), "got %v", err)

	_, err = c.ApproveTimesheet(ctx, "ts1")
	require.True(t, portalsdk.IsForbidden(err), "got %v", err)

	_, err = c.GetTask(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestAdminResourceWrites(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.loginAs(t, "admin", "ada@example.com", "pw-ada")

	title, status := "Design v2", "in_progress"
	task, err := c.UpdateTask(ctx, "t1", portalsdk.UpdateTaskRequest{Title: &title, Status: &status})
	require.NoError(t, err)
	require.Equal(t, "Design v2", task.Title)
	require.Equal(t, "in_progress", task.Status)

	bogus := "archived"
	_, err = c.UpdateTask(ctx, "t1", portalsdk.UpdateTaskRequest{Status: &bogus})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	ts, err := c.ApproveTimesheet(ctx, "ts1")
	require.NoError(t, err)
	require.Equal(t, "approved", ts.Status)

	pi, err := c.GetPayrollItem(ctx, "pi2")
	require.NoError(t, err)
	require.EqualValues(t, 120000, pi.AmountCents)

	require.NoError(t, c.DeleteTask(ctx, "t1"))
	_, err = c.GetTask(ctx, "t1")
	requireStatus(t, err, http.StatusNotFound)
}

func TestClientDocumentAccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	carl := h.loginAs(t, "web", "carl@example.com", "pw-carl")
	doc, err := carl.GetDocument(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, "p1", doc.ProjectID)

	// Otto is neither uploader nor a member of the document's project.
	otto := h.loginAs(t, "employee", "otto@example.com", "pw-otto")
	_, err = otto.GetDocument(ctx, "d1")
	require.True(t, portalsdk.IsForbidden(err), "got %v", err)
}

func TestLogoutClosesSessionRecord(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.loginAs(t, "employee", "eve@example.com", "pw-eve")

	n, err := h.store.SessionRecords().CountSessionRecords(ctx, "employee", "e1", "employee")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	open, err := h.store.SessionRecords().ListStaleSessionRecords(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, open, 1)

	location, err := c.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, "/employee/login", location)

	_, err = c.Me(ctx)
	requireStatus(t, err, http.StatusUnauthorized)

	open, err = h.store.SessionRecords().ListStaleSessionRecords(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, open)
}

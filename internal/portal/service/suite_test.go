package service

//go:generate mockgen -source=login.go -destination=mocks/mocks.go -package=mocks Guard,Throttle,LoginRecorder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/events"
	"github.com/aussiebroadwan/portalgate/internal/portal/service/mocks"
	"github.com/aussiebroadwan/portalgate/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyMigrations(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type LoginSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	guard    *mocks.MockGuard
	throttle *mocks.MockThrottle
	metrics  *mocks.MockLoginRecorder
	store    *sqlite.Store
	bus      *events.Bus
	logins   []events.LoginEvent
	logouts  []events.LogoutEvent
	service  *LoginService
}

func (s *LoginSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.guard = mocks.NewMockGuard(s.ctrl)
	s.throttle = mocks.NewMockThrottle(s.ctrl)
	s.metrics = mocks.NewMockLoginRecorder(s.ctrl)
	s.store = newTestStore(s.T())
	s.seedUsers()

	s.logins, s.logouts = nil, nil
	s.bus = events.NewBus()
	s.bus.SubscribeLogin(func(_ context.Context, e events.LoginEvent) error {
		s.logins = append(s.logins, e)
		return nil
	})
	s.bus.SubscribeLogout(func(_ context.Context, e events.LogoutEvent) error {
		s.logouts = append(s.logouts, e)
		return nil
	})

	guards := make(map[string]Guard)
	for _, d := range domain.Definitions() {
		guards[d.Guard] = s.guard
	}
	s.service = &LoginService{
		Store:    s.store,
		Guards:   guards,
		Throttle: s.throttle,
		Events:   s.bus,
		Metrics:  s.metrics,
	}
}

func (s *LoginSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLoginSuite(t *testing.T) {
	suite.Run(t, new(LoginSuite))
}

func strPtr(v string) *string { return &v }

// Test fixtures. Passwords are never checked here; the guard is mocked.
var (
	userAdmin  = domain.User{ID: "u-admin", Name: "Ada", Email: "ada@example.com", Role: domain.RoleMasterAdmin, Status: domain.StatusActive}
	userClient = domain.User{
		ID: "u-client", Name: "Carl", Email: "carl@example.com", Role: domain.RoleClient,
		Status: domain.StatusActive, CustomerID: strPtr("c1"),
	}
	userProject = domain.User{
		ID: "u-project", Name: "Pia", Email: "pia@example.com", Role: domain.RoleClientProject,
		Status: domain.StatusActive, CustomerID: strPtr("c1"), ProjectID: strPtr("p1"),
	}
	userProjectInactive = domain.User{
		ID: "u-project-off", Name: "Otto", Email: "otto@example.com", Role: domain.RoleClientProject,
		Status: domain.StatusInactive, CustomerID: strPtr("c1"), ProjectID: strPtr("p1"),
	}
	userEmployee      = domain.User{ID: "u-emp", Name: "Eve", Email: "eve@example.com", Role: domain.RoleEmployee, Status: domain.StatusActive}
	userEmployeeOff   = domain.User{ID: "u-emp-off", Name: "Ian", Email: "ian@example.com", Role: domain.RoleEmployee, Status: domain.StatusActive}
	userEmployeeLoose = domain.User{ID: "u-emp-loose", Name: "Lou", Email: "lou@example.com", Role: domain.RoleEmployee, Status: domain.StatusActive}
	userSales         = domain.User{ID: "u-sales", Name: "Sam", Email: "sam@example.com", Role: domain.RoleSales, Status: domain.StatusActive}
	userSupport       = domain.User{ID: "u-support", Name: "Sue", Email: "sue@example.com", Role: domain.RoleSupport, Status: domain.StatusActive}
)

func (s *LoginSuite) seedUsers() {
	ctx := context.Background()
	r := s.Require()

	r.NoError(s.store.Customers().CreateCustomer(ctx, domain.Customer{ID: "c1", Name: "Acme"}))
	for _, u := range []domain.User{
		userAdmin, userClient, userProject, userProjectInactive,
		userEmployee, userEmployeeOff, userEmployeeLoose, userSales, userSupport,
	} {
		u.PasswordHash = "unused"
		r.NoError(s.store.Users().CreateUser(ctx, u))
	}
	r.NoError(s.store.Employees().CreateEmployee(ctx, domain.Employee{
		ID: "e1", UserID: strPtr(userEmployee.ID), Name: "Eve", Status: domain.StatusActive,
	}))
	r.NoError(s.store.Employees().CreateEmployee(ctx, domain.Employee{
		ID: "e2", UserID: strPtr(userEmployeeOff.ID), Name: "Ian", Status: domain.StatusInactive,
	}))
	r.NoError(s.store.SalesReps().CreateSalesRep(ctx, domain.SalesRepresentative{
		ID: "s1", UserID: strPtr(userSales.ID), Name: "Sam", Status: domain.StatusActive,
	}))
}

func (s *LoginSuite) newSession() *websession.Session {
	sess, err := websession.New()
	s.Require().NoError(err)
	return sess
}

func (s *LoginSuite) expectOutcome(portal domain.Portal, outcome string) {
	s.metrics.EXPECT().LoginAttempt(portal.String(), outcome, gomock.Any()).Times(1)
}

// expectAttempt makes the guard accept the credentials and remember u the
// way the real guard does.
func (s *LoginSuite) expectAttempt(portal domain.Portal, u domain.User) {
	s.guard.EXPECT().
		Attempt(gomock.Any(), gomock.Any(), u.Email, "secret").
		DoAndReturn(func(_ context.Context, sess *websession.Session, _, _ string) (domain.User, bool, error) {
			sess.Put("login_"+domain.GuardFor(portal), u.ID)
			return u, true, nil
		})
}

package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/metrics"
	"github.com/aussiebroadwan/portalgate/internal/portal/throttle"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
)

const testIP = "203.0.113.9"

func loginReq(portal domain.Portal, email string) LoginRequest {
	return LoginRequest{
		Portal:    portal.String(),
		Email:     email,
		Password:  "secret",
		IP:        testIP,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

type failingVerifier struct{}

func (failingVerifier) Verify(context.Context, string, string, string) error {
	return errors.New("score too low")
}

func (s *LoginSuite) TestValidationFailsBeforeThrottle() {
	sess := s.newSession()
	s.expectOutcome(domain.PortalWeb, metrics.OutcomeInvalid)

	res, err := s.service.Authenticate(context.Background(), LoginRequest{Email: "not-an-email"}, sess)

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "email")
	s.Contains(verr.Fields, "password")
	s.False(res.OK)
	s.Equal("web", sess.Portal())
}

func (s *LoginSuite) TestThrottledNeverCallsGuard() {
	sess := s.newSession()
	key := throttle.KeyFor(domain.PortalWeb, userClient.Email, testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(true)
	s.throttle.EXPECT().AvailableIn(key).Return(42 * time.Second)
	s.expectOutcome(domain.PortalWeb, metrics.OutcomeThrottled)

	res, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalWeb, userClient.Email), sess)
	s.Require().NoError(err)
	s.False(res.OK)
	s.Equal(ReasonThrottled, res.Reason)
	s.Equal("Too many login attempts. Please try again in 42 seconds.", res.Error)
	s.Equal(userClient.Email, res.Email)
	s.Empty(s.logins)
}

func (s *LoginSuite) TestRecaptchaFailsClosed() {
	sess := s.newSession()
	s.service.Recaptcha = failingVerifier{}
	key := throttle.KeyFor(domain.PortalAdmin, userAdmin.Email, testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.expectOutcome(domain.PortalAdmin, metrics.OutcomeRecaptcha)

	_, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalAdmin, userAdmin.Email), sess)
	s.Require().ErrorIs(err, ErrRecaptchaFailed)
}

func (s *LoginSuite) TestInvalidCredentials() {
	sess := s.newSession()
	key := throttle.KeyFor(domain.PortalWeb, "ghost@example.com", testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.guard.EXPECT().Attempt(gomock.Any(), sess, "ghost@example.com", "secret").Return(domain.User{}, false, nil)
	s.throttle.EXPECT().Hit(key).Times(1)
	s.throttle.EXPECT().Clear(gomock.Any()).Times(0)
	s.expectOutcome(domain.PortalWeb, metrics.OutcomeFailed)

	res, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalWeb, "ghost@example.com"), sess)
	s.Require().NoError(err)
	s.False(res.OK)
	s.Equal(MsgInvalidCredentials, res.Error)
	s.Equal(ReasonInvalidCredentials, res.Reason)
	s.Equal("ghost@example.com", res.Email)
}

func (s *LoginSuite) TestSuccessClearsThrottleOnce() {
	sess := s.newSession()
	before := sess.ID()
	key := throttle.KeyFor(domain.PortalWeb, userClient.Email, testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.expectAttempt(domain.PortalWeb, userClient)
	s.throttle.EXPECT().Clear(key).Times(1)
	s.throttle.EXPECT().Hit(gomock.Any()).Times(0)
	s.expectOutcome(domain.PortalWeb, metrics.OutcomeSuccess)

	res, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalWeb, userClient.Email), sess)
	s.Require().NoError(err)
	s.True(res.OK)
	s.Equal("/client/dashboard", res.Redirect)
	s.Equal(domain.ActorUser, res.Actor.Kind)

	s.NotEqual(before, sess.ID(), "session id must change on login")
	s.Equal("web", sess.Portal())
	s.Equal(userClient.ID, sess.Get("login_web"))

	s.Require().Len(s.logins, 1)
	s.Equal(sess.ID(), s.logins[0].SessionID)
	s.Equal(domain.GuardWeb, s.logins[0].Guard)
	s.Equal(testIP, s.logins[0].IP)
}

func (s *LoginSuite) TestRedirectParameter() {
	cases := []struct {
		name     string
		redirect string
		want     string
	}{
		{"same origin", "/client/invoices", "/client/invoices"},
		{"absolute url", "https://evil.example", "/client/dashboard"},
		{"protocol relative", "//evil.example/x", "/client/dashboard"},
		{"backslash", "/\\evil.example", "/client/dashboard"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			sess := s.newSession()
			key := throttle.KeyFor(domain.PortalWeb, userClient.Email, testIP)
			s.throttle.EXPECT().TooManyAttempts(key).Return(false)
			s.expectAttempt(domain.PortalWeb, userClient)
			s.throttle.EXPECT().Clear(key)
			s.expectOutcome(domain.PortalWeb, metrics.OutcomeSuccess)

			req := loginReq(domain.PortalWeb, userClient.Email)
			req.Redirect = tc.redirect
			res, err := s.service.Authenticate(context.Background(), req, sess)
			s.Require().NoError(err)
			s.Equal(tc.want, res.Redirect)
		})
	}
}

func (s *LoginSuite) TestClientProjectGoesToProject() {
	sess := s.newSession()
	key := throttle.KeyFor(domain.PortalWeb, userProject.Email, testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.expectAttempt(domain.PortalWeb, userProject)
	s.throttle.EXPECT().Clear(key)
	s.expectOutcome(domain.PortalWeb, metrics.OutcomeSuccess)

	res, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalWeb, userProject.Email), sess)
	s.Require().NoError(err)
	s.True(res.OK)
	s.Equal("/client/projects/p1", res.Redirect)
}

func (s *LoginSuite) TestPortalRejections() {
	cases := []struct {
		name    string
		portal  domain.Portal
		user    domain.User
		reason  string
		message string
	}{
		{"client on admin", domain.PortalAdmin, userClient, ReasonRoleNotAllowed, MsgRejected},
		{"admin on web", domain.PortalWeb, userAdmin, ReasonRoleNotAllowed, MsgRejected},
		{"inactive client project", domain.PortalWeb, userProjectInactive, ReasonAccountInactive, MsgInactive},
		{"client on employee", domain.PortalEmployee, userClient, ReasonRoleNotAllowed, MsgRejected},
		{"employee inactive", domain.PortalEmployee, userEmployeeOff, ReasonEmployeeInactive, MsgRejected},
		{"employee missing", domain.PortalEmployee, userEmployeeLoose, ReasonEmployeeMissing, MsgRejected},
		{"employee on sales", domain.PortalSales, userEmployee, ReasonRoleNotAllowed, MsgRejected},
		{"sales on support", domain.PortalSupport, userSales, ReasonRoleNotAllowed, MsgRejected},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			sess := s.newSession()
			sess.Put("unrelated", "value")
			before := sess.ID()
			key := throttle.KeyFor(tc.portal, tc.user.Email, testIP)

			s.throttle.EXPECT().TooManyAttempts(key).Return(false)
			s.expectAttempt(tc.portal, tc.user)
			s.guard.EXPECT().Logout(sess).Do(func(sess *websession.Session) {
				sess.Forget("login_" + domain.GuardFor(tc.portal))
			})
			s.throttle.EXPECT().Hit(key)
			s.throttle.EXPECT().Clear(gomock.Any()).Times(0)
			s.expectOutcome(tc.portal, metrics.OutcomeRejected)

			res, err := s.service.Authenticate(context.Background(), loginReq(tc.portal, tc.user.Email), sess)
			s.Require().NoError(err)
			s.False(res.OK)
			s.Equal(tc.reason, res.Reason)
			s.Equal(tc.message, res.Error)

			s.NotEqual(before, sess.ID(), "session must be regenerated")
			s.Empty(sess.Get("login_"+domain.GuardFor(tc.portal)), "guard must be logged out")
			s.Empty(sess.Get("unrelated"), "session must be invalidated")
			s.Equal(tc.portal.String(), sess.Portal())
			s.Empty(s.logins)
		})
	}
}

func (s *LoginSuite) TestAccessErrorResetsSession() {
	broken := newTestStore(s.T())
	s.Require().NoError(broken.Close())
	s.service.Access = &AccessChecker{Store: broken}

	sess := s.newSession()
	sess.Put("unrelated", "value")
	before := sess.ID()
	key := throttle.KeyFor(domain.PortalEmployee, userEmployee.Email, testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.expectAttempt(domain.PortalEmployee, userEmployee)
	s.guard.EXPECT().Logout(sess).Do(func(sess *websession.Session) {
		sess.Forget("login_" + domain.GuardEmployee)
	})
	s.throttle.EXPECT().Clear(gomock.Any()).Times(0)
	s.expectOutcome(domain.PortalEmployee, metrics.OutcomeError)

	res, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalEmployee, userEmployee.Email), sess)
	s.Require().Error(err)
	s.False(res.OK)

	s.NotEqual(before, sess.ID(), "session must be regenerated")
	s.Empty(sess.Get("login_"+domain.GuardEmployee))
	s.Empty(sess.Get("unrelated"), "session must be invalidated")
	s.Equal("employee", sess.Portal())
	s.Empty(s.logins)
}

func (s *LoginSuite) TestPortalActors() {
	cases := []struct {
		portal domain.Portal
		user   domain.User
		kind   domain.ActorKind
		target string
	}{
		{domain.PortalAdmin, userAdmin, domain.ActorUser, "/admin/dashboard"},
		{domain.PortalEmployee, userEmployee, domain.ActorEmployee, "/employee/dashboard"},
		{domain.PortalSales, userSales, domain.ActorSalesRep, "/sales/dashboard"},
		{domain.PortalSupport, userSupport, domain.ActorUser, "/support/tickets"},
	}
	for _, tc := range cases {
		s.Run(tc.portal.String(), func() {
			sess := s.newSession()
			key := throttle.KeyFor(tc.portal, tc.user.Email, testIP)
			s.throttle.EXPECT().TooManyAttempts(key).Return(false)
			s.expectAttempt(tc.portal, tc.user)
			s.throttle.EXPECT().Clear(key)
			s.expectOutcome(tc.portal, metrics.OutcomeSuccess)

			res, err := s.service.Authenticate(context.Background(), loginReq(tc.portal, tc.user.Email), sess)
			s.Require().NoError(err)
			s.True(res.OK)
			s.Equal(tc.kind, res.Actor.Kind)
			s.Equal(tc.target, res.Redirect)
		})
	}
}

func (s *LoginSuite) TestUnknownPortalFallsBackToWeb() {
	sess := s.newSession()
	key := throttle.KeyFor(domain.PortalWeb, userClient.Email, testIP)

	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.expectAttempt(domain.PortalWeb, userClient)
	s.throttle.EXPECT().Clear(key)
	s.expectOutcome(domain.PortalWeb, metrics.OutcomeSuccess)

	req := loginReq(domain.PortalWeb, userClient.Email)
	req.Portal = "partners"
	res, err := s.service.Authenticate(context.Background(), req, sess)
	s.Require().NoError(err)
	s.True(res.OK)
	s.Equal("web", sess.Portal())
}

func (s *LoginSuite) TestResolveAndLogout() {
	ctx := context.Background()
	sess := s.newSession()
	sess.Put(websession.KeyPortal, domain.PortalEmployee.String())
	sess.Put("login_employee", userEmployee.ID)
	sessionID := sess.ID()

	s.guard.EXPECT().UserID(sess).DoAndReturn(func(sess *websession.Session) string {
		return sess.Get("login_employee")
	}).Times(2)
	s.guard.EXPECT().Logout(sess)

	actor, err := s.service.Resolve(ctx, sess)
	s.Require().NoError(err)
	s.Equal(domain.ActorEmployee, actor.Kind)
	id, ok := actor.EmployeeID()
	s.True(ok)
	s.Equal("e1", id)

	path, err := s.service.Logout(ctx, sess)
	s.Require().NoError(err)
	s.Equal("/employee/login", path)

	s.Require().Len(s.logouts, 1)
	s.Equal(sessionID, s.logouts[0].SessionID)
	s.NotEqual(sessionID, sess.ID())
	s.Equal("employee", sess.Portal())
}

func (s *LoginSuite) TestResolveAnonymous() {
	sess := s.newSession()
	s.guard.EXPECT().UserID(sess).Return("")

	_, err := s.service.Resolve(context.Background(), sess)
	s.Require().ErrorIs(err, ErrUnauthenticated)
}

func (s *LoginSuite) TestAuthenticateRecordsSpan() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	s.service.Tracer = provider.Tracer("login-test")
	s.service.Recaptcha = failingVerifier{}

	key := throttle.KeyFor(domain.PortalSales, userSales.Email, testIP)
	s.throttle.EXPECT().TooManyAttempts(key).Return(false)
	s.expectOutcome(domain.PortalSales, metrics.OutcomeRecaptcha)

	_, err := s.service.Authenticate(context.Background(), loginReq(domain.PortalSales, userSales.Email), s.newSession())
	s.Require().ErrorIs(err, ErrRecaptchaFailed)

	spans := recorder.Ended()
	s.Require().Len(spans, 1)
	span := spans[0]
	s.Equal("login.authenticate", span.Name())
	s.Equal(codes.Error, span.Status().Code)

	attrs := map[attribute.Key]string{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value.AsString()
	}
	s.Equal("sales", attrs["login.portal"])
	s.Equal("sales", attrs["login.guard"])
	s.Equal(metrics.OutcomeRecaptcha, attrs["login.outcome"])
}

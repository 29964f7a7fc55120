// Package service holds the portal login flow, session tracking and
// background maintenance.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/events"
	"github.com/aussiebroadwan/portalgate/internal/portal/metrics"
	"github.com/aussiebroadwan/portalgate/internal/portal/recaptcha"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/internal/portal/throttle"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

// Guard authenticates credentials and remembers the user in the session.
type Guard interface {
	Attempt(ctx context.Context, sess *websession.Session, email, password string) (domain.User, bool, error)
	Logout(sess *websession.Session)
	UserID(sess *websession.Session) string
}

// Throttle counts failed attempts per key.
type Throttle interface {
	TooManyAttempts(key string) bool
	Hit(key string)
	AvailableIn(key string) time.Duration
	Clear(key string)
}

// LoginRecorder observes finished login attempts.
type LoginRecorder interface {
	LoginAttempt(portal, outcome string, d time.Duration)
}

var validate = validator.New()

type LoginRequest struct {
	Portal         string
	Email          string `validate:"required,email"`
	Password       string `validate:"required"`
	RecaptchaToken string
	Redirect       string
	IP             string
	UserAgent      string
}

// LoginResult is the outcome of one attempt. Error is safe to show, Reason
// is for logs only.
type LoginResult struct {
	OK       bool
	Error    string
	Reason   string
	Email    string
	Redirect string
	Actor    domain.Actor
}

type LoginService struct {
	Store     store.Store
	Guards    map[string]Guard
	Throttle  Throttle
	Recaptcha recaptcha.Verifier
	Events    *events.Bus
	Metrics   LoginRecorder
	Access    *AccessChecker
	Tracer    trace.Tracer
}

func (s *LoginService) tracer() trace.Tracer {
	if s.Tracer == nil {
		return otel.Tracer("portalgate/service")
	}
	return s.Tracer
}

func (s *LoginService) access() *AccessChecker {
	if s.Access == nil {
		return &AccessChecker{Store: s.Store}
	}
	return s.Access
}

func (s *LoginService) guard(p domain.Portal) (Guard, error) {
	name := domain.GuardFor(p)
	g, ok := s.Guards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGuard, name)
	}
	return g, nil
}

// Authenticate runs one login attempt for req.Portal. Only validation,
// reCAPTCHA and infrastructure failures are returned as errors; every other
// outcome is described by the result.
func (s *LoginService) Authenticate(ctx context.Context, req LoginRequest, sess *websession.Session) (res LoginResult, err error) {
	start := time.Now()
	p := domain.Normalize(req.Portal)
	req.Portal = p.String()
	req.Email = strings.TrimSpace(req.Email)

	ctx, span := s.tracer().Start(ctx, "login.authenticate", trace.WithAttributes(
		attribute.String("login.portal", p.String()),
		attribute.String("login.guard", domain.GuardFor(p)),
	))
	outcome := metrics.OutcomeSuccess
	defer func() {
		if err != nil && outcome == metrics.OutcomeSuccess {
			outcome = metrics.OutcomeError
		}
		span.SetAttributes(attribute.String("login.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if s.Metrics != nil {
			s.Metrics.LoginAttempt(p.String(), outcome, time.Since(start))
		}
	}()

	sess.Put(websession.KeyPortal, p.String())

	if verr := validateLogin(req); verr != nil {
		outcome = metrics.OutcomeInvalid
		return LoginResult{Email: req.Email}, verr
	}

	g, err := s.guard(p)
	if err != nil {
		return LoginResult{Email: req.Email}, err
	}

	key := throttle.KeyFor(p, req.Email, req.IP)
	if s.Throttle.TooManyAttempts(key) {
		outcome = metrics.OutcomeThrottled
		seconds := int(math.Ceil(s.Throttle.AvailableIn(key).Seconds()))
		return LoginResult{
			Error:  fmt.Sprintf(MsgThrottled, max(seconds, 1)),
			Reason: ReasonThrottled,
			Email:  req.Email,
		}, nil
	}

	if s.Recaptcha != nil {
		if rerr := s.Recaptcha.Verify(ctx, req.RecaptchaToken, domain.RecaptchaAction(p), req.IP); rerr != nil {
			outcome = metrics.OutcomeRecaptcha
			return LoginResult{Email: req.Email}, fmt.Errorf("%w: %w", ErrRecaptchaFailed, rerr)
		}
	}

	u, ok, err := g.Attempt(ctx, sess, req.Email, req.Password)
	if err != nil {
		return LoginResult{Email: req.Email}, fmt.Errorf("guard attempt: %w", err)
	}
	if !ok {
		outcome = metrics.OutcomeFailed
		s.Throttle.Hit(key)
		s.audit(ctx, ReasonInvalidCredentials, p, req)
		return LoginResult{
			Error:  MsgInvalidCredentials,
			Reason: ReasonInvalidCredentials,
			Email:  req.Email,
		}, nil
	}

	actor, rej, err := s.access().Check(ctx, p, u)
	if err != nil {
		g.Logout(sess)
		err = fmt.Errorf("portal access: %w", err)
		if ierr := sess.Invalidate(); ierr != nil {
			err = errors.Join(err, fmt.Errorf("invalidate session: %w", ierr))
		}
		sess.Put(websession.KeyPortal, p.String())
		return LoginResult{Email: req.Email}, err
	}
	if rej != nil {
		outcome = metrics.OutcomeRejected
		g.Logout(sess)
		if err := sess.Invalidate(); err != nil {
			return LoginResult{Email: req.Email}, fmt.Errorf("invalidate session: %w", err)
		}
		sess.Put(websession.KeyPortal, p.String())
		s.Throttle.Hit(key)
		s.audit(ctx, rej.Reason, p, req)
		return LoginResult{
			Error:  rej.Message,
			Reason: rej.Reason,
			Email:  req.Email,
		}, nil
	}

	if err := sess.Regenerate(); err != nil {
		g.Logout(sess)
		return LoginResult{Email: req.Email}, fmt.Errorf("regenerate session: %w", err)
	}
	sess.Put(websession.KeyPortal, p.String())
	s.Throttle.Clear(key)

	if s.Events != nil {
		s.Events.PublishLogin(ctx, events.LoginEvent{
			Actor:     actor,
			Portal:    p,
			Guard:     domain.GuardFor(p),
			SessionID: sess.ID(),
			IP:        req.IP,
			UserAgent: req.UserAgent,
		})
	}

	slogx.FromContext(ctx).Info("login succeeded",
		"portal", p.String(),
		"guard", domain.GuardFor(p),
		"user_id", u.ID,
		"actor", actor.TrackingType(),
	)

	return LoginResult{
		OK:       true,
		Email:    req.Email,
		Redirect: ResolveRedirect(p, actor, req.Redirect),
		Actor:    actor,
	}, nil
}

func (s *LoginService) audit(ctx context.Context, reason string, p domain.Portal, req LoginRequest) {
	slogx.Audit(ctx, "login rejected",
		"reason", reason,
		"portal", p.String(),
		"guard", domain.GuardFor(p),
		"email", req.Email,
		"ip", req.IP,
	)
}

// Resolve returns the actor logged in on the session's portal.
func (s *LoginService) Resolve(ctx context.Context, sess *websession.Session) (domain.Actor, error) {
	p := domain.Normalize(sess.Portal())
	g, err := s.guard(p)
	if err != nil {
		return domain.Actor{}, err
	}

	id := g.UserID(sess)
	if id == "" {
		return domain.Actor{}, ErrUnauthenticated
	}
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Actor{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.Actor{}, err
	}

	actor, rej, err := s.access().Check(ctx, p, u)
	if err != nil {
		return domain.Actor{}, err
	}
	if rej != nil {
		return domain.Actor{}, ErrUnauthenticated
	}
	return actor, nil
}

// Logout ends the portal guard's login and returns the login path of the
// portal. The logout event carries the session id the login was recorded
// under, so it is published before the session is invalidated.
func (s *LoginService) Logout(ctx context.Context, sess *websession.Session) (string, error) {
	p := domain.Normalize(sess.Portal())
	g, err := s.guard(p)
	if err != nil {
		return domain.LoginPath(p), err
	}

	actor, err := s.Resolve(ctx, sess)
	switch {
	case err == nil:
		if s.Events != nil {
			s.Events.PublishLogout(ctx, events.LogoutEvent{
				Actor:     actor,
				Portal:    p,
				Guard:     domain.GuardFor(p),
				SessionID: sess.ID(),
			})
		}
	case !errors.Is(err, ErrUnauthenticated):
		slogx.FromContext(ctx).Warn("resolve actor on logout", "error", err)
	}

	g.Logout(sess)
	if err := sess.Invalidate(); err != nil {
		return domain.LoginPath(p), fmt.Errorf("invalidate session: %w", err)
	}
	sess.Put(websession.KeyPortal, p.String())
	return domain.LoginPath(p), nil
}

func validateLogin(req LoginRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if _, seen := fields[name]; seen {
			continue
		}
		switch fe.Tag() {
		case "required":
			fields[name] = fmt.Sprintf("The %s field is required.", name)
		case "email":
			fields[name] = fmt.Sprintf("The %s must be a valid email address.", name)
		default:
			fields[name] = fmt.Sprintf("The %s field is invalid.", name)
		}
	}
	return &ValidationError{Fields: fields}
}

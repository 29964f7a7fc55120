// Package events is an in-process, synchronous publish/subscribe bus for
// authentication events.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
	"github.com/google/uuid"
)

// LoginEvent is published after a successful login.
type LoginEvent struct {
	ID        uuid.UUID
	Actor     domain.Actor
	Portal    domain.Portal
	Guard     string
	SessionID string
	IP        string
	UserAgent string
	At        time.Time
}

// LogoutEvent is published before the session is invalidated, so SessionID
// is still the id the login was recorded under.
type LogoutEvent struct {
	ID        uuid.UUID
	Actor     domain.Actor
	Portal    domain.Portal
	Guard     string
	SessionID string
	At        time.Time
}

type (
	LoginHandler  func(ctx context.Context, e LoginEvent) error
	LogoutHandler func(ctx context.Context, e LogoutEvent) error
)

// FailureHook observes handler errors, e.g. for metrics.
type FailureHook func(event string, err error)

// Bus dispatches events to handlers in subscription order. A failing
// handler is logged and never stops the publisher or later handlers.
type Bus struct {
	mu      sync.RWMutex
	login   []LoginHandler
	logout  []LogoutHandler
	OnError FailureHook
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) SubscribeLogin(h LoginHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.login = append(b.login, h)
}

func (b *Bus) SubscribeLogout(h LogoutHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logout = append(b.logout, h)
}

func (b *Bus) PublishLogin(ctx context.Context, e LoginEvent) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := append([]LoginHandler(nil), b.login...)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.report(ctx, "login", e.ID, h(ctx, e))
	}
}

func (b *Bus) PublishLogout(ctx context.Context, e LogoutEvent) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := append([]LogoutHandler(nil), b.logout...)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.report(ctx, "logout", e.ID, h(ctx, e))
	}
}

func (b *Bus) report(ctx context.Context, event string, id uuid.UUID, err error) {
	if err == nil {
		return
	}
	slogx.FromContext(ctx).Error("event handler failed",
		"event", event,
		"event_id", id.String(),
		"error", err,
	)
	if b.OnError != nil {
		b.OnError(event, err)
	}
}

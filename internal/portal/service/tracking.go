package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mssola/useragent"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/events"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/pkg/idx"
)

// Default guard allow-lists of the tracker. Login and logout coverage differ.
var (
	DefaultLoginGuards  = []string{"employee", "web", "client", "rep"}
	DefaultLogoutGuards = []string{"employee", "web", "sales", "support"}
)

// DefaultTouchInterval bounds how often a session refreshes last_seen_at.
const DefaultTouchInterval = time.Minute

// SessionTracker keeps Session Records and Daily Activity aggregates in step
// with login and logout events.
type SessionTracker struct {
	Store         store.Store
	LoginGuards   []string
	LogoutGuards  []string
	TouchInterval time.Duration
	Now           func() time.Time

	touched sync.Map // store.SessionKey -> time.Time
}

func (t *SessionTracker) now() time.Time {
	if t.Now != nil {
		return t.Now().UTC()
	}
	return time.Now().UTC()
}

func (t *SessionTracker) loginGuards() []string {
	if len(t.LoginGuards) == 0 {
		return DefaultLoginGuards
	}
	return t.LoginGuards
}

func (t *SessionTracker) logoutGuards() []string {
	if len(t.LogoutGuards) == 0 {
		return DefaultLogoutGuards
	}
	return t.LogoutGuards
}

// Register subscribes the tracker to bus.
func (t *SessionTracker) Register(bus *events.Bus) {
	bus.SubscribeLogin(t.OnLogin)
	bus.SubscribeLogout(t.OnLogout)
}

// UntrackedGuards lists guards whose logins are not recorded but whose
// logouts are still matched against a record.
func UntrackedGuards(loginGuards, logoutGuards []string) []string {
	var out []string
	for _, g := range logoutGuards {
		if !slices.Contains(loginGuards, g) {
			out = append(out, g)
		}
	}
	return out
}

func sessionKey(a domain.Actor, guard, sessionID string) store.SessionKey {
	return store.SessionKey{
		ActorType: a.TrackingType(),
		ActorID:   a.TrackingID(),
		Guard:     guard,
		SessionID: sessionID,
	}
}

func activityKey(k store.SessionKey, at time.Time) store.ActivityKey {
	return store.ActivityKey{
		ActorType: k.ActorType,
		ActorID:   k.ActorID,
		Guard:     k.Guard,
		Day:       domain.DayOf(at),
	}
}

// OnLogin records the session on first sight and bumps the day's session
// count exactly once. Repeated logins for the same session only refresh
// last_seen_at.
func (t *SessionTracker) OnLogin(ctx context.Context, e events.LoginEvent) error {
	if !slices.Contains(t.loginGuards(), e.Guard) {
		return nil
	}

	at := e.At.UTC()
	if at.IsZero() {
		at = t.now()
	}
	key := sessionKey(e.Actor, e.Guard, e.SessionID)
	rec := domain.SessionRecord{
		ID:         idx.New().String(),
		ActorType:  key.ActorType,
		ActorID:    key.ActorID,
		Guard:      key.Guard,
		SessionID:  key.SessionID,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		Device:     DeviceLabel(e.UserAgent),
		LoginAt:    at,
		LastSeenAt: at,
	}

	err := t.Store.WithTx(ctx, func(tx store.Tx) error {
		created, err := tx.SessionRecords().CreateSessionRecordIfAbsent(ctx, rec)
		if err != nil {
			return fmt.Errorf("create session record: %w", err)
		}
		if created {
			return tx.DailyActivity().RecordNewSession(ctx, activityKey(key, at), at)
		}

		existing, err := tx.SessionRecords().GetSessionRecord(ctx, key)
		if err != nil {
			return fmt.Errorf("load session record: %w", err)
		}
		if existing.Open() {
			if err := tx.SessionRecords().TouchSessionRecord(ctx, existing.ID, at); err != nil {
				return fmt.Errorf("touch session record: %w", err)
			}
		}
		return tx.DailyActivity().TouchActivity(ctx, activityKey(key, at), at)
	})
	if err != nil {
		return fmt.Errorf("track login %s/%s: %w", key.Guard, key.ActorID, err)
	}
	t.touched.Store(key, at)
	return nil
}

// OnLogout closes the open record of the session and adds its duration to
// the day's aggregate. Without an open record it does nothing.
func (t *SessionTracker) OnLogout(ctx context.Context, e events.LogoutEvent) error {
	if !slices.Contains(t.logoutGuards(), e.Guard) {
		return nil
	}

	at := e.At.UTC()
	if at.IsZero() {
		at = t.now()
	}
	key := sessionKey(e.Actor, e.Guard, e.SessionID)
	t.touched.Delete(key)

	err := t.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.SessionRecords().GetOpenSessionRecord(ctx, key)
		if err != nil {
			return err
		}
		return closeRecord(ctx, tx, rec, at)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("track logout %s/%s: %w", key.Guard, key.ActorID, err)
	}
	return nil
}

// closeRecord sets logout_at and active_seconds and credits the aggregate of
// the logout day.
func closeRecord(ctx context.Context, tx store.Tx, rec domain.SessionRecord, at time.Time) error {
	if at.Before(rec.LoginAt) {
		at = rec.LoginAt
	}
	seconds := int64(at.Sub(rec.LoginAt) / time.Second)

	if err := tx.SessionRecords().CloseSessionRecord(ctx, rec.ID, at, seconds); err != nil {
		return err
	}
	key := store.SessionKey{ActorType: rec.ActorType, ActorID: rec.ActorID, Guard: rec.Guard}
	return tx.DailyActivity().AddActiveSeconds(ctx, activityKey(key, at), seconds, at)
}

// Touch refreshes last_seen_at of an open session, at most once per
// TouchInterval. It reports whether the store was written.
func (t *SessionTracker) Touch(ctx context.Context, a domain.Actor, guard, sessionID string) (bool, error) {
	if !slices.Contains(t.loginGuards(), guard) {
		return false, nil
	}

	interval := t.TouchInterval
	if interval <= 0 {
		interval = DefaultTouchInterval
	}
	now := t.now()
	key := sessionKey(a, guard, sessionID)
	if last, ok := t.touched.Load(key); ok && now.Sub(last.(time.Time)) < interval {
		return false, nil
	}

	err := t.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.SessionRecords().GetOpenSessionRecord(ctx, key)
		if err != nil {
			return err
		}
		if err := tx.SessionRecords().TouchSessionRecord(ctx, rec.ID, now); err != nil {
			return err
		}
		return tx.DailyActivity().TouchActivity(ctx, activityKey(key, now), now)
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("touch session: %w", err)
	}
	t.touched.Store(key, now)
	return true, nil
}

// DeviceLabel turns a User-Agent header into "Browser on OS".
func DeviceLabel(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" && browser != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}
	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

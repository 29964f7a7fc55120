package websession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultCookieName = "portal_session"
	DefaultLifetime   = 2 * time.Hour
)

var ErrInvalidCookie = errors.New("websession: invalid cookie")

// Manager loads and persists sessions.
type Manager struct {
	Store      store.Store
	CookieName string
	Lifetime   time.Duration
	Secure     bool
	Key        []byte // HS256 signing key for the cookie
}

func (m *Manager) cookieName() string {
	if m.CookieName == "" {
		return DefaultCookieName
	}
	return m.CookieName
}

func (m *Manager) lifetime() time.Duration {
	if m.Lifetime <= 0 {
		return DefaultLifetime
	}
	return m.Lifetime
}

// Load returns the session referenced by the request cookie or a fresh one.
// A tampered, expired or unknown cookie silently yields a fresh session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	ctx := r.Context()

	cookie, err := r.Cookie(m.cookieName())
	if err != nil {
		return newSession()
	}

	token, err := m.decode(cookie.Value)
	if err != nil {
		slogx.FromContext(ctx).Debug("discarding session cookie", "error", err)
		return newSession()
	}

	row, err := m.Store.WebSessions().GetWebSession(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return newSession()
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !row.ExpiresAt.After(time.Now()) {
		return newSession()
	}

	return fromStored(token, row.Data), nil
}

// Save persists the session and writes the cookie. It must run before the
// response header is written.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	expires := time.Now().Add(m.lifetime())

	if s.oldToken != "" {
		if err := m.Store.WebSessions().DeleteWebSession(ctx, cryptox.FingerprintToken(s.oldToken)); err != nil {
			return fmt.Errorf("delete previous session: %w", err)
		}
		s.oldToken = ""
	}

	err := m.Store.WebSessions().SaveWebSession(ctx, domain.WebSession{
		ID:        s.ID(),
		Data:      s.data,
		ExpiresAt: expires,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.dirty = false

	value, err := m.encode(s.token, expires)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName(),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(m.lifetime().Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SaveIfDirty saves only when the session changed since it was loaded.
func (m *Manager) SaveIfDirty(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.dirty {
		return nil
	}
	return m.Save(ctx, w, s)
}

func (m *Manager) encode(token string, expires time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        token,
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Key)
}

func (m *Manager) decode(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims,
		func(*jwt.Token) (any, error) { return m.Key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	if claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}

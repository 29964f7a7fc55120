// Package guard authenticates users against the store and remembers them
// in the web session, one slot per guard name.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
)

var ErrNotLoggedIn = errors.New("guard: not logged in")

// SessionGuard checks email/password credentials and stores the user id in
// the session under "login_<name>".
type SessionGuard struct {
	Name  string
	Store store.Store
}

func (g *SessionGuard) sessionKey() string { return "login_" + g.Name }

// Attempt verifies the credentials and logs the user in on success. Unknown
// emails still pay for a hash so both failure paths take the same time.
func (g *SessionGuard) Attempt(ctx context.Context, sess *websession.Session, email, password string) (domain.User, bool, error) {
	u, err := g.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.BurnVerify(password)
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("guard %s: lookup user: %w", g.Name, err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("guard %s: verify password: %w", g.Name, err)
	}

	sess.Put(g.sessionKey(), u.ID)
	return u, true, nil
}

// Logout forgets the user of this guard. Other guards are untouched.
func (g *SessionGuard) Logout(sess *websession.Session) { sess.Forget(g.sessionKey()) }

// UserID returns the logged in user id or "".
func (g *SessionGuard) UserID(sess *websession.Session) string { return sess.Get(g.sessionKey()) }

// User loads the logged in user.
func (g *SessionGuard) User(ctx context.Context, sess *websession.Session) (domain.User, error) {
	id := g.UserID(sess)
	if id == "" {
		return domain.User{}, ErrNotLoggedIn
	}
	u, err := g.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotLoggedIn
	}
	return u, err
}

// NewSet builds one SessionGuard per distinct guard used by the portals.
func NewSet(st store.Store) map[string]*SessionGuard {
	set := make(map[string]*SessionGuard)
	for _, d := range domain.Definitions() {
		if _, ok := set[d.Guard]; !ok {
			set[d.Guard] = &SessionGuard{Name: d.Guard, Store: st}
		}
	}
	return set
}

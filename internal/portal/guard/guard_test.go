package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/guard"
	"github.com/aussiebroadwan/portalgate/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "guard-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func setup(t *testing.T) (*sqlite.Store, *websession.Session) {
	t.Helper()
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	hash, err := cryptox.HashPassword("hunter22")
	require.NoError(t, err)
	require.NoError(t, s.Users().CreateUser(ctx, domain.User{
		ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: hash, Role: domain.RoleClient,
	}))

	m := &websession.Manager{Store: s, Key: []byte("k")}
	sess, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	return s, sess
}

func TestAttempt(t *testing.T) {
	ctx := context.Background()
	s, sess := setup(t)
	g := &guard.SessionGuard{Name: domain.GuardWeb, Store: s}

	_, ok, err := g.Attempt(ctx, sess, "nobody@example.com", "hunter22")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = g.Attempt(ctx, sess, "alice@example.com", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, g.UserID(sess))

	u, ok, err := g.Attempt(ctx, sess, "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u1", u.ID)
	require.Equal(t, "u1", g.UserID(sess))

	loaded, err := g.User(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, "u1", loaded.ID)
}

func TestLogoutIsPerGuard(t *testing.T) {
	ctx := context.Background()
	s, sess := setup(t)
	set := guard.NewSet(s)
	require.Len(t, set, 4)

	_, ok, err := set[domain.GuardWeb].Attempt(ctx, sess, "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = set[domain.GuardSupport].Attempt(ctx, sess, "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.True(t, ok)

	set[domain.GuardWeb].Logout(sess)
	require.Empty(t, set[domain.GuardWeb].UserID(sess))
	require.Equal(t, "u1", set[domain.GuardSupport].UserID(sess))

	_, err = set[domain.GuardWeb].User(ctx, sess)
	require.ErrorIs(t, err, guard.ErrNotLoggedIn)
}

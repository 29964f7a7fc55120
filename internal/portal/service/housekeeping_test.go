package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

func TestHousekeepingClosesStaleSessions(t *testing.T) {
	ctx := context.Background()
	tr, st := newTracker(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, tr.OnLogin(ctx, loginAt(at, "stale")))
	require.NoError(t, tr.OnLogin(ctx, loginAt(at.Add(3*time.Hour), "fresh")))

	require.NoError(t, st.WebSessions().SaveWebSession(ctx, domain.WebSession{
		ID: "expired", Data: map[string]string{}, ExpiresAt: at.Add(time.Hour), UpdatedAt: at,
	}))
	require.NoError(t, st.WebSessions().SaveWebSession(ctx, domain.WebSession{
		ID: "live", Data: map[string]string{}, ExpiresAt: at.Add(24 * time.Hour), UpdatedAt: at,
	}))

	hk := NewHousekeepingService(st, slogx.Discard(), time.Minute, 2*time.Hour)
	hk.Now = func() time.Time { return at.Add(4 * time.Hour) }

	closed, expired := hk.RunOnce(ctx)
	require.Equal(t, 1, closed)
	require.EqualValues(t, 1, expired)

	rec, err := st.SessionRecords().GetSessionRecord(ctx, store.SessionKey{
		ActorType: "employee", ActorID: "e1", Guard: domain.GuardEmployee, SessionID: "stale",
	})
	require.NoError(t, err)
	require.False(t, rec.Open())
	require.True(t, rec.LogoutAt.Equal(rec.LastSeenAt))
	require.Zero(t, rec.ActiveSeconds)

	fresh, err := st.SessionRecords().GetOpenSessionRecord(ctx, store.SessionKey{
		ActorType: "employee", ActorID: "e1", Guard: domain.GuardEmployee, SessionID: "fresh",
	})
	require.NoError(t, err)
	require.True(t, fresh.Open())

	_, err = st.WebSessions().GetWebSession(ctx, "live")
	require.NoError(t, err)
	_, err = st.WebSessions().GetWebSession(ctx, "expired")
	require.ErrorIs(t, err, store.ErrNotFound)

	closed, expired = hk.RunOnce(ctx)
	require.Zero(t, closed)
	require.Zero(t, expired)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)
	hk := NewHousekeepingService(st, slogx.Discard(), 0, 0)
	require.Equal(t, 15*time.Minute, hk.Interval)
	require.Equal(t, 2*time.Hour, hk.StaleAfter)

	hk.Start()
	hk.Stop()
}

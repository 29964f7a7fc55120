package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/store"
)

const (
	DefaultHousekeepingInterval = 15 * time.Minute
	DefaultStaleAfter           = 2 * time.Hour
)

// HousekeepingService periodically closes abandoned Session Records and
// removes expired web sessions.
type HousekeepingService struct {
	Store      store.Store
	Logger     *slog.Logger
	Interval   time.Duration
	StaleAfter time.Duration
	Now        func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service.
// Non-positive durations fall back to the defaults.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, staleAfter time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}

	return &HousekeepingService{
		Store:      st,
		Logger:     logger,
		Interval:   interval,
		StaleAfter: staleAfter,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "stale_after", s.StaleAfter)
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RunOnce performs one cleanup pass. Each step is independent; a failure
// in one does not stop the other.
func (s *HousekeepingService) RunOnce(ctx context.Context) (closed int, expired int64) {
	now := s.now()
	s.Logger.Debug("starting housekeeping cleanup")

	stale, err := s.Store.SessionRecords().ListStaleSessionRecords(ctx, now.Add(-s.StaleAfter))
	if err != nil {
		s.Logger.Error("failed to list stale session records", "error", err)
	}
	for _, rec := range stale {
		// A stale session ends when it was last seen.
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			return closeRecord(ctx, tx, rec, rec.LastSeenAt)
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			// closed by a logout in the meantime
		case err != nil:
			s.Logger.Error("failed to close stale session record", "id", rec.ID, "error", err)
		default:
			closed++
		}
	}

	expired, err = s.Store.WebSessions().DeleteExpiredWebSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired web sessions", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"closed_sessions", closed,
		"expired_web_sessions", expired,
	)
	return closed, expired
}

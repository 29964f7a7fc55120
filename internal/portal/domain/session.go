package domain

import "time"

// SessionRecord is one tracked login session for an actor on a guard.
type SessionRecord struct {
	ID            string
	ActorType     string
	ActorID       string
	Guard         string
	SessionID     string
	IP            string
	UserAgent     string
	Device        string
	LoginAt       time.Time
	LastSeenAt    time.Time
	LogoutAt      *time.Time
	ActiveSeconds int64
}

func (r SessionRecord) Open() bool { return r.LogoutAt == nil }

// DailyActivity aggregates the sessions of an actor on one guard and day.
type DailyActivity struct {
	ActorType     string
	ActorID       string
	Guard         string
	Day           string // YYYY-MM-DD, UTC
	SessionsCount int
	ActiveSeconds int64
	FirstLoginAt  time.Time
	LastSeenAt    time.Time
}

// DayOf formats t as an aggregate day key.
func DayOf(t time.Time) string { return t.UTC().Format(time.DateOnly) }

// WebSession is the server side half of a browser session.
type WebSession struct {
	ID        string // fingerprint of the session token
	Data      map[string]string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
)

type sessionRecordsRepo struct {
	db DBTX
}

const sessionRecordColumns = `id, actor_type, actor_id, guard, session_id, ip, user_agent, device,
	login_at, last_seen_at, logout_at, active_seconds`

func scanSessionRecord(row interface{ Scan(...any) error }) (domain.SessionRecord, error) {
	var (
		rec               domain.SessionRecord
		loginAt, lastSeen string
		logoutAt          sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.ActorType, &rec.ActorID, &rec.Guard, &rec.SessionID,
		&rec.IP, &rec.UserAgent, &rec.Device, &loginAt, &lastSeen, &logoutAt, &rec.ActiveSeconds)
	if err != nil {
		return domain.SessionRecord{}, mapNotFound(err)
	}
	rec.LoginAt = parseTS(loginAt)
	rec.LastSeenAt = parseTS(lastSeen)
	rec.LogoutAt = mapNullTimePtr(logoutAt)
	return rec, nil
}

func (r *sessionRecordsRepo) CreateSessionRecordIfAbsent(ctx context.Context, rec domain.SessionRecord) (bool, error) {
	loginAt := orNow(rec.LoginAt)
	lastSeen := rec.LastSeenAt
	if lastSeen.IsZero() {
		lastSeen = loginAt
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO session_records (`+sessionRecordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, 0)
		 ON CONFLICT (actor_type, actor_id, guard, session_id) DO NOTHING`,
		rec.ID, rec.ActorType, rec.ActorID, rec.Guard, rec.SessionID,
		rec.IP, rec.UserAgent, rec.Device, ts(loginAt), ts(lastSeen),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *sessionRecordsRepo) GetSessionRecord(ctx context.Context, key store.SessionKey) (domain.SessionRecord, error) {
	return scanSessionRecord(r.db.QueryRowContext(ctx,
		`SELECT `+sessionRecordColumns+` FROM session_records
		  WHERE actor_type = ? AND actor_id = ? AND guard = ? AND session_id = ?`,
		key.ActorType, key.ActorID, key.Guard, key.SessionID,
	))
}

func (r *sessionRecordsRepo) GetOpenSessionRecord(ctx context.Context, key store.SessionKey) (domain.SessionRecord, error) {
	return scanSessionRecord(r.db.QueryRowContext(ctx,
		`SELECT `+sessionRecordColumns+` FROM session_records
		  WHERE actor_type = ? AND actor_id = ? AND guard = ? AND session_id = ? AND logout_at IS NULL`,
		key.ActorType, key.ActorID, key.Guard, key.SessionID,
	))
}

func (r *sessionRecordsRepo) TouchSessionRecord(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE session_records SET last_seen_at = max(last_seen_at, ?) WHERE id = ? AND logout_at IS NULL`,
		ts(at), id,
	))
}

func (r *sessionRecordsRepo) CloseSessionRecord(ctx context.Context, id string, logoutAt time.Time, activeSeconds int64) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE session_records
		    SET logout_at = ?, active_seconds = ?, last_seen_at = max(last_seen_at, ?)
		  WHERE id = ? AND logout_at IS NULL`,
		ts(logoutAt), activeSeconds, ts(logoutAt), id,
	))
}

func (r *sessionRecordsRepo) ListStaleSessionRecords(ctx context.Context, cutoff time.Time) ([]domain.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionRecordColumns+` FROM session_records
		  WHERE logout_at IS NULL AND last_seen_at < ?
		  ORDER BY last_seen_at`,
		ts(cutoff),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SessionRecord
	for rows.Next() {
		rec, err := scanSessionRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sessionRecordsRepo) CountSessionRecords(ctx context.Context, actorType, actorID, guard string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_records WHERE actor_type = ? AND actor_id = ? AND guard = ?`,
		actorType, actorID, guard,
	).Scan(&n)
	return n, err
}

type dailyActivityRepo struct {
	db DBTX
}

func (r *dailyActivityRepo) upsert(ctx context.Context, key store.ActivityKey, sessions int, seconds int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_activity
		    (actor_type, actor_id, guard, day, sessions_count, active_seconds, first_login_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (actor_type, actor_id, guard, day) DO UPDATE SET
		    sessions_count = sessions_count + excluded.sessions_count,
		    active_seconds = active_seconds + excluded.active_seconds,
		    last_seen_at   = max(last_seen_at, excluded.last_seen_at)`,
		key.ActorType, key.ActorID, key.Guard, key.Day, sessions, seconds, ts(at), ts(at),
	)
	return err
}

func (r *dailyActivityRepo) RecordNewSession(ctx context.Context, key store.ActivityKey, at time.Time) error {
	return r.upsert(ctx, key, 1, 0, at)
}

func (r *dailyActivityRepo) TouchActivity(ctx context.Context, key store.ActivityKey, at time.Time) error {
	return r.upsert(ctx, key, 0, 0, at)
}

func (r *dailyActivityRepo) AddActiveSeconds(ctx context.Context, key store.ActivityKey, seconds int64, at time.Time) error {
	return r.upsert(ctx, key, 0, seconds, at)
}

func (r *dailyActivityRepo) GetDailyActivity(ctx context.Context, key store.ActivityKey) (domain.DailyActivity, error) {
	var (
		a                   domain.DailyActivity
		firstLogin, lastSee string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT actor_type, actor_id, guard, day, sessions_count, active_seconds, first_login_at, last_seen_at
		   FROM daily_activity
		  WHERE actor_type = ? AND actor_id = ? AND guard = ? AND day = ?`,
		key.ActorType, key.ActorID, key.Guard, key.Day,
	).Scan(&a.ActorType, &a.ActorID, &a.Guard, &a.Day, &a.SessionsCount, &a.ActiveSeconds, &firstLogin, &lastSee)
	if err != nil {
		return domain.DailyActivity{}, mapNotFound(err)
	}
	a.FirstLoginAt = parseTS(firstLogin)
	a.LastSeenAt = parseTS(lastSee)
	return a, nil
}

type webSessionsRepo struct {
	db DBTX
}

func (r *webSessionsRepo) GetWebSession(ctx context.Context, id string) (domain.WebSession, error) {
	var (
		s                    domain.WebSession
		data                 string
		expiresAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, data, expires_at, updated_at FROM web_sessions WHERE id = ?`, id,
	).Scan(&s.ID, &data, &expiresAt, &updatedAt)
	if err != nil {
		return domain.WebSession{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(data), &s.Data); err != nil {
		return domain.WebSession{}, err
	}
	s.ExpiresAt = parseTS(expiresAt)
	s.UpdatedAt = parseTS(updatedAt)
	return s, nil
}

func (r *webSessionsRepo) SaveWebSession(ctx context.Context, s domain.WebSession) error {
	data, err := json.Marshal(s.Data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO web_sessions (id, data, expires_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		    data = excluded.data, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		s.ID, string(data), ts(s.ExpiresAt), ts(orNow(s.UpdatedAt)),
	)
	return err
}

func (r *webSessionsRepo) DeleteWebSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE id = ?`, id)
	return err
}

func (r *webSessionsRepo) DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, ts(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

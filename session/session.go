// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/term-mapper/auth"
	"github.com/danielhkuo/term-mapper/config"
)

// CookieName is the browser session cookie
const CookieName = "tm_session"

// Data is the state carried by one browser session. A zero Token means the
// session has not been saved yet.
type Data struct {
	Token           string
	UserID          int64
	Username        string
	IsAdmin         bool
	RatingSessionID int64
	ExpiresAt       time.Time
}

// LoggedIn reports whether an end user is attached to the session.
func (d *Data) LoggedIn() bool {
	return d.UserID != 0 && d.Username != ""
}

// HasRatingSession reports whether a rating session is in progress.
func (d *Data) HasRatingSession() bool {
	return d.RatingSessionID != 0
}

type row struct {
	TokenHash       string        `db:"token"`
	UserID          sql.NullInt64 `db:"user_id"`
	Username        string        `db:"username"`
	IsAdmin         bool          `db:"is_admin"`
	RatingSessionID sql.NullInt64 `db:"rating_session_id"`
	CreatedAt       time.Time     `db:"created_at"`
	ExpiresAt       time.Time     `db:"expires_at"`
}

// Manager stores browser sessions in the browser_sessions table.
type Manager struct {
	db     *sqlx.DB
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(db *sqlx.DB, cfg config.ServerConfig) *Manager {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	return &Manager{
		db:     db,
		ttl:    ttl,
		secure: cfg.SecureCookies,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Load returns the session named by the request cookie. A missing,
// malformed, unknown or expired cookie yields a fresh unsaved session.
func (m *Manager) Load(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return &Data{}, nil
	}
	if auth.ValidateSessionToken(cookie.Value) != nil {
		return &Data{}, nil
	}

	var rec row
	err = m.db.GetContext(r.Context(), &rec, m.db.Rebind(`
		SELECT token, user_id, username, is_admin, rating_session_id, created_at, expires_at
		FROM browser_sessions
		WHERE token = ? AND expires_at > ?
	`), auth.HashToken(cookie.Value), m.now())
	if errors.Is(err, sql.ErrNoRows) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load browser session: %w", err)
	}

	return &Data{
		Token:           cookie.Value,
		UserID:          rec.UserID.Int64,
		Username:        rec.Username,
		IsAdmin:         rec.IsAdmin,
		RatingSessionID: rec.RatingSessionID.Int64,
		ExpiresAt:       rec.ExpiresAt,
	}, nil
}

// Save persists d, extends its expiry and writes the cookie. A session
// without a token gets a new one.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, d *Data) error {
	if d.Token == "" {
		token, err := auth.GenerateSessionToken()
		if err != nil {
			return err
		}
		d.Token = token
	}

	now := m.now()
	d.ExpiresAt = now.Add(m.ttl)

	_, err := m.db.ExecContext(ctx, m.db.Rebind(`
		INSERT INTO browser_sessions (token, user_id, username, is_admin, rating_session_id, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (token) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			is_admin = excluded.is_admin,
			rating_session_id = excluded.rating_session_id,
			expires_at = excluded.expires_at
	`), auth.HashToken(d.Token), nullID(d.UserID), d.Username, d.IsAdmin, nullID(d.RatingSessionID), now, d.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save browser session: %w", err)
	}

	http.SetCookie(w, m.cookie(d.Token, int(m.ttl.Seconds())))
	return nil
}

// Rotate moves d to a new token, dropping the old row. Used on login.
func (m *Manager) Rotate(ctx context.Context, w http.ResponseWriter, d *Data) error {
	if d.Token != "" {
		if err := m.delete(ctx, d.Token); err != nil {
			return err
		}
	}
	d.Token = ""
	return m.Save(ctx, w, d)
}

// Destroy deletes the session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, d *Data) error {
	if d.Token != "" {
		if err := m.delete(ctx, d.Token); err != nil {
			return err
		}
	}
	*d = Data{}
	http.SetCookie(w, m.cookie("", -1))
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (m *Manager) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := m.db.ExecContext(ctx, m.db.Rebind(
		"DELETE FROM browser_sessions WHERE expires_at <= ?"), m.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

func (m *Manager) delete(ctx context.Context, token string) error {
	_, err := m.db.ExecContext(ctx, m.db.Rebind(
		"DELETE FROM browser_sessions WHERE token = ?"), auth.HashToken(token))
	if err != nil {
		return fmt.Errorf("failed to delete browser session: %w", err)
	}
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/danielhkuo/term-mapper/middleware"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

// SessionHandler drives a user's rating session: start, one term per page,
// submit, complete.
type SessionHandler struct {
	store    *store.Store
	sessions *session.Manager
	views    *views.Renderer
}

func NewSessionHandler(st *store.Store, sessions *session.Manager, v *views.Renderer) *SessionHandler {
	return &SessionHandler{store: st, sessions: sessions, views: v}
}

// Start handles POST /session/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := session.FromContext(ctx)
	count := middleware.FormInt(r, "count", models.DefaultSessionSize, 1, models.MaxSessionSize)

	sess, err := h.store.StartSession(ctx, d.UserID, count)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", d.UserID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	d.RatingSessionID = sess.ID
	if err := h.sessions.Save(ctx, w, d); err != nil {
		slog.Error("failed to save browser session", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	slog.Info("session started",
		"session_id", sess.ID,
		"user_id", d.UserID,
		"requested", count,
		"terms", sess.Length,
	)

	middleware.Redirect(w, r, "/session")
}

// View handles GET /session
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := session.FromContext(ctx)

	sess, ok := h.active(w, r, d)
	if !ok {
		return
	}
	if sess.Done() {
		middleware.Redirect(w, r, "/session/complete")
		return
	}

	term, err := h.store.CurrentTerm(ctx, sess)
	if errors.Is(err, store.ErrNotFound) {
		// Terms removed by an admin reset; step over all of them at once.
		from := sess.Cursor
		if err := h.store.SkipMissingTerms(ctx, sess); err != nil {
			slog.Error("failed to skip missing terms", "error", err, "session_id", sess.ID)
			h.views.Error(w, http.StatusInternalServerError, "Failed to load term")
			return
		}
		slog.Info("skipped deleted session terms", "session_id", sess.ID, "from", from, "to", sess.Cursor)
		if sess.Done() {
			middleware.Redirect(w, r, "/session/complete")
			return
		}
		term, err = h.store.CurrentTerm(ctx, sess)
	}
	if err != nil {
		slog.Error("failed to load current term", "error", err, "session_id", sess.ID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load term")
		return
	}

	h.views.Render(w, http.StatusOK, views.PageSession, views.SessionPage{
		Term:     term,
		Current:  sess.Cursor + 1,
		Total:    sess.Length,
		Progress: progress(sess.Cursor, sess.Length),
	})
}

// Submit handles POST /session/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := session.FromContext(ctx)

	sess, ok := h.active(w, r, d)
	if !ok {
		return
	}
	if sess.Done() {
		middleware.Redirect(w, r, "/session/complete")
		return
	}

	term, err := h.store.CurrentTerm(ctx, sess)
	switch {
	case errors.Is(err, store.ErrNotFound):
		slog.Warn("term at cursor no longer exists", "session_id", sess.ID, "cursor", sess.Cursor)
	case err != nil:
		slog.Error("failed to load current term", "error", err, "session_id", sess.ID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to save mapping")
		return
	default:
		codes := normalizeCodes(r.FormValue("codes_json"), r.FormValue("codes"))
		inserted, err := h.store.InsertMapping(ctx, term.ID, d.UserID, codes, middleware.FormBool(r, "no_code_found"))
		if err != nil {
			slog.Error("failed to insert mapping", "error", err, "term_id", term.ID, "user_id", d.UserID)
			h.views.Error(w, http.StatusInternalServerError, "Failed to save mapping")
			return
		}
		if !inserted {
			slog.Info("duplicate mapping ignored", "term_id", term.ID, "user_id", d.UserID)
		}
	}

	if err := h.store.AdvanceCursor(ctx, sess.ID, sess.Cursor); err != nil {
		slog.Error("failed to advance cursor", "error", err, "session_id", sess.ID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to save mapping")
		return
	}

	middleware.Redirect(w, r, "/session")
}

// Complete handles GET /session/complete
func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := session.FromContext(ctx)

	sess, ok := h.active(w, r, d)
	if !ok {
		return
	}

	mappings, err := h.store.CompleteSession(ctx, sess)
	if err != nil {
		slog.Error("failed to complete session", "error", err, "session_id", sess.ID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to complete session")
		return
	}

	d.RatingSessionID = 0
	if err := h.sessions.Save(ctx, w, d); err != nil {
		slog.Error("failed to save browser session", "error", err)
	}

	slog.Info("session completed", "session_id", sess.ID, "user_id", d.UserID, "mappings", mappings)

	h.views.Render(w, http.StatusOK, views.PageComplete, views.CompletePage{MappingsCount: mappings})
}

// active resolves the browser session's rating session. On false the
// response has been written.
func (h *SessionHandler) active(w http.ResponseWriter, r *http.Request, d *session.Data) (*models.RatingSession, bool) {
	if !d.HasRatingSession() {
		middleware.Redirect(w, r, "/dashboard")
		return nil, false
	}

	sess, err := h.store.GetSession(r.Context(), d.RatingSessionID, d.UserID)
	if errors.Is(err, store.ErrNotFound) {
		d.RatingSessionID = 0
		if err := h.sessions.Save(r.Context(), w, d); err != nil {
			slog.Error("failed to save browser session", "error", err)
		}
		middleware.Redirect(w, r, "/dashboard")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load session", "error", err, "session_id", d.RatingSessionID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load session")
		return nil, false
	}
	return sess, true
}

func progress(cursor, length int) int {
	if length == 0 {
		return 0
	}
	return int(math.RoundToEven(100 * float64(cursor) / float64(length)))
}

// normalizeCodes returns a JSON array of the non-blank codes in raw. When
// raw holds nothing usable the comma separated fallback is used instead.
func normalizeCodes(raw, fallback string) string {
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		parsed = nil
	}

	codes := cleanCodes(parsed)
	if len(codes) == 0 && strings.TrimSpace(fallback) != "" {
		codes = cleanCodes(strings.Split(fallback, ","))
	}

	out, err := json.Marshal(codes)
	if err != nil {
		return "[]"
	}
	return string(out)
}

func cleanCodes(in []string) []string {
	codes := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

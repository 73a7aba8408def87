// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/term-mapper/middleware"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

type DashboardHandler struct {
	store *store.Store
	views *views.Renderer
}

func NewDashboardHandler(st *store.Store, v *views.Renderer) *DashboardHandler {
	return &DashboardHandler{store: st, views: v}
}

// Index handles GET /
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).LoggedIn() {
		middleware.Redirect(w, r, "/dashboard")
		return
	}
	middleware.Redirect(w, r, "/login")
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := session.FromContext(ctx)

	stats, err := h.store.UserStats(ctx, d.UserID)
	if err != nil {
		slog.Error("failed to load user stats", "error", err, "user_id", d.UserID)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	progress, err := h.store.OverallProgress(ctx)
	if err != nil {
		slog.Error("failed to load progress", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	leaderboard, err := h.store.Leaderboard(ctx, models.LeaderboardSize)
	if err != nil {
		slog.Error("failed to load leaderboard", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	canResume := false
	if d.HasRatingSession() {
		if sess, err := h.store.GetSession(ctx, d.RatingSessionID, d.UserID); err == nil {
			canResume = !sess.Done()
		}
	}

	h.views.Render(w, http.StatusOK, views.PageDashboard, views.DashboardPage{
		Username:     d.Username,
		Stats:        stats,
		Progress:     progress,
		Leaderboard:  leaderboard,
		CanResume:    canResume,
		DefaultCount: models.DefaultSessionSize,
		MaxCount:     models.MaxSessionSize,
	})
}

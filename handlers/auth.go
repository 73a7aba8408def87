// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/term-mapper/auth"
	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/middleware"
	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

type AuthHandler struct {
	store    *store.Store
	sessions *session.Manager
	views    *views.Renderer
	cfg      *config.Config
}

func NewAuthHandler(st *store.Store, sessions *session.Manager, v *views.Renderer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: st, sessions: sessions, views: v, cfg: cfg}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, views.PageLogin, views.LoginPage{})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := middleware.FormString(r, "username")
	if username == "" {
		h.views.Render(w, http.StatusOK, views.PageLogin, views.LoginPage{Error: "Please enter a username"})
		return
	}

	if err := auth.CheckSecret(r.FormValue("password"), h.cfg.Passwords.GlobalPassword); err != nil {
		slog.Info("login rejected", "username", username, "remote", middleware.GetClientIP(r))
		h.views.Render(w, http.StatusOK, views.PageLogin, views.LoginPage{Error: "Invalid password", Username: username})
		return
	}

	user, created, err := h.store.GetOrCreateUser(r.Context(), username)
	if err != nil {
		slog.Error("failed to get or create user", "error", err, "username", username)
		h.views.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	d := session.FromContext(r.Context())
	if d.UserID != user.ID {
		d.RatingSessionID = 0
	}
	d.UserID = user.ID
	d.Username = user.Username

	if err := h.sessions.Rotate(r.Context(), w, d); err != nil {
		slog.Error("failed to save browser session", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if created {
		slog.Info("user created", "user_id", user.ID, "username", user.Username)
	}
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	middleware.Redirect(w, r, "/dashboard")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	d := session.FromContext(r.Context())
	if err := h.sessions.Destroy(r.Context(), w, d); err != nil {
		slog.Error("failed to destroy browser session", "error", err)
	}
	middleware.Redirect(w, r, "/login")
}

// AdminPage handles GET /admin
func (h *AuthHandler) AdminPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).IsAdmin {
		middleware.Redirect(w, r, "/admin/console")
		return
	}
	h.views.Render(w, http.StatusOK, views.PageAdminLogin, views.AdminLoginPage{})
}

// AdminLogin handles POST /admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := auth.CheckSecret(r.FormValue("password"), h.cfg.Passwords.AdminPassword); err != nil {
		slog.Warn("admin login rejected", "remote", middleware.GetClientIP(r))
		h.views.Render(w, http.StatusOK, views.PageAdminLogin, views.AdminLoginPage{Error: "Invalid admin password"})
		return
	}

	d := session.FromContext(r.Context())
	d.IsAdmin = true
	if err := h.sessions.Rotate(r.Context(), w, d); err != nil {
		slog.Error("failed to save browser session", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("admin logged in", "remote", middleware.GetClientIP(r))
	middleware.Redirect(w, r, "/admin/console")
}

// AdminLogout handles GET /admin/logout. The end-user login is kept.
func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	d := session.FromContext(r.Context())
	if d.IsAdmin {
		d.IsAdmin = false
		if err := h.sessions.Save(r.Context(), w, d); err != nil {
			slog.Error("failed to save browser session", "error", err)
		}
	}
	middleware.Redirect(w, r, "/admin")
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/mailer"
	"github.com/danielhkuo/term-mapper/middleware"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

// ErrContactIncomplete is shown when a required contact field is blank.
const ErrContactIncomplete = "Bitte füllen Sie alle erforderlichen Felder aus."

type ContactHandler struct {
	store  *store.Store
	mailer mailer.Sender
	views  *views.Renderer
	cfg    config.ContactConfig
}

func NewContactHandler(st *store.Store, m mailer.Sender, v *views.Renderer, cfg config.ContactConfig) *ContactHandler {
	return &ContactHandler{store: st, mailer: m, views: v, cfg: cfg}
}

// Form handles GET /contact
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Enabled {
		h.views.Error(w, http.StatusNotFound, "Page not found")
		return
	}
	h.views.Render(w, http.StatusOK, views.PageContact, views.ContactPage{
		Contact: h.cfg,
		Success: r.URL.Query().Get("success") == "true",
	})
}

// Submit handles POST /contact/submit
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Enabled {
		h.views.Error(w, http.StatusNotFound, "Page not found")
		return
	}

	msg := &models.ContactMessage{
		Name:    middleware.FormString(r, "name"),
		Email:   middleware.FormString(r, "email"),
		Subject: middleware.FormString(r, "subject"),
		Message: middleware.FormString(r, "message"),
	}

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		h.views.Render(w, http.StatusOK, views.PageContact, views.ContactPage{
			Contact: h.cfg,
			Error:   ErrContactIncomplete,
			Form:    *msg,
		})
		return
	}

	if h.cfg.StoreInDB {
		if err := h.store.CreateContactMessage(r.Context(), msg); err != nil {
			slog.Error("failed to store contact message", "error", err)
			h.views.Error(w, http.StatusInternalServerError, "Failed to send message")
			return
		}
		slog.Info("contact message stored", "message_id", msg.ID)
	}

	if h.cfg.SendEmail && h.mailer != nil {
		if err := h.mailer.SendContact(r.Context(), msg); err != nil {
			slog.Error("failed to send contact mail", "error", err, "message_id", msg.ID)
		} else {
			slog.Info("contact mail sent", "message_id", msg.ID)
		}
	}

	middleware.Redirect(w, r, "/contact?success=true")
}

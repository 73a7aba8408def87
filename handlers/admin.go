// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/danielhkuo/term-mapper/middleware"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

// ExportHeader is the first row of the mappings export.
var ExportHeader = []string{"Username", "Category", "Term", "Codes", "No Code Found", "Created At"}

// Reimporter refills the terms table after a full reset.
type Reimporter interface {
	Import(ctx context.Context) (*models.ImportResult, error)
}

type AdminHandler struct {
	store    *store.Store
	importer Reimporter
	views    *views.Renderer
	now      func() time.Time
}

func NewAdminHandler(st *store.Store, im Reimporter, v *views.Renderer) *AdminHandler {
	return &AdminHandler{store: st, importer: im, views: v, now: time.Now}
}

// Console handles GET /admin/console
func (h *AdminHandler) Console(w http.ResponseWriter, r *http.Request) {
	overview, err := h.store.AdminOverview(r.Context())
	if err != nil {
		slog.Error("failed to load admin overview", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load admin console")
		return
	}

	h.views.Render(w, http.StatusOK, views.PageAdminConsole, views.AdminConsolePage{
		Overview: overview,
		Message:  r.URL.Query().Get("message"),
	})
}

// Export handles GET /admin/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ExportRows(r.Context())
	if err != nil {
		slog.Error("failed to load export rows", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Export failed")
		return
	}

	filename := fmt.Sprintf("mappings_export_%s.csv", h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		slog.Error("failed to write export", "error", err)
		return
	}
	for _, row := range rows {
		noCode := "0"
		if row.NoCodeFound {
			noCode = "1"
		}
		record := []string{
			row.Username,
			row.Category,
			row.Term,
			row.Codes,
			noCode,
			row.CreatedAt.Format(time.DateTime),
		}
		if err := cw.Write(record); err != nil {
			slog.Error("failed to write export", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("failed to flush export", "error", err)
		return
	}

	slog.Info("mappings exported", "rows", len(rows), "filename", filename)
}

// ResetMappings handles POST /admin/reset/mappings
func (h *AdminHandler) ResetMappings(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.DeleteAllMappings(r.Context())
	if err != nil {
		slog.Error("failed to delete mappings", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Reset failed")
		return
	}

	slog.Warn("all mappings deleted", "rows", n, "remote", middleware.GetClientIP(r))
	flash(w, r, "All mappings deleted")
}

// ResetAll handles POST /admin/reset/all
func (h *AdminHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.store.DeleteAllMappingsAndTerms(ctx); err != nil {
		slog.Error("failed to reset database", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Reset failed")
		return
	}
	slog.Warn("all mappings and terms deleted", "remote", middleware.GetClientIP(r))

	res, err := h.importer.Import(ctx)
	if err != nil {
		slog.Error("re-import after reset failed", "error", err)
	} else {
		slog.Info("terms re-imported",
			"processed", res.TotalProcessed,
			"created", res.Created,
			"skipped", res.Skipped,
			"encoding", res.Encoding,
		)
	}

	flash(w, r, "Database reset and terms re-imported")
}

// ResetUser handles POST /admin/reset/user
func (h *AdminHandler) ResetUser(w http.ResponseWriter, r *http.Request) {
	username := middleware.FormString(r, "username")

	n, err := h.store.DeleteUserMappings(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		flash(w, r, "User not found: "+username)
		return
	}
	if err != nil {
		slog.Error("failed to delete user mappings", "error", err, "username", username)
		h.views.Error(w, http.StatusInternalServerError, "Reset failed")
		return
	}

	slog.Warn("user mappings deleted", "username", username, "rows", n)
	flash(w, r, "Mappings deleted for user: "+username)
}

// Messages handles GET /admin/messages
func (h *AdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.store.ListContactMessages(r.Context())
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	h.views.Render(w, http.StatusOK, views.PageAdminMessages, views.AdminMessagesPage{Messages: msgs})
}

// MarkRead handles POST /admin/messages/{id}/mark-read
func (h *AdminHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.messageAction(w, r, "marked read", h.store.MarkMessageRead)
}

// DeleteMessage handles POST /admin/messages/{id}/delete
func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	h.messageAction(w, r, "deleted", h.store.DeleteMessage)
}

func (h *AdminHandler) messageAction(w http.ResponseWriter, r *http.Request, verb string, fn func(context.Context, int64) error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Message not found")
		return
	}

	err = fn(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		slog.Info("contact message not found", "message_id", id)
	case err != nil:
		slog.Error("failed to update contact message", "error", err, "message_id", id)
		h.views.Error(w, http.StatusInternalServerError, "Failed to update message")
		return
	default:
		slog.Info("contact message "+verb, "message_id", id)
	}

	middleware.Redirect(w, r, "/admin/messages")
}

func flash(w http.ResponseWriter, r *http.Request, msg string) {
	middleware.Redirect(w, r, "/admin/console?"+url.Values{"message": {msg}}.Encode())
}

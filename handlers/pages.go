// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/views"
)

const robotsTxt = "User-agent: *\nDisallow: /\n"

type PagesHandler struct {
	views *views.Renderer
	cfg   *config.Config
}

func NewPagesHandler(v *views.Renderer, cfg *config.Config) *PagesHandler {
	return &PagesHandler{views: v, cfg: cfg}
}

// Imprint handles GET /imprint
func (h *PagesHandler) Imprint(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Imprint.Enabled {
		h.NotFound(w, r)
		return
	}
	h.views.Render(w, http.StatusOK, views.PageImprint, views.ImprintPage{Imprint: h.cfg.Imprint})
}

// Datenschutz handles GET /datenschutz and GET /privacy
func (h *PagesHandler) Datenschutz(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Datenschutz.Enabled {
		h.NotFound(w, r)
		return
	}
	h.views.Render(w, http.StatusOK, views.PageDatenschutz, views.DatenschutzPage{Datenschutz: h.cfg.Datenschutz})
}

// Robots handles GET /robots.txt
func (h *PagesHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(robotsTxt))
}

// Health handles GET /health
func (h *PagesHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// NotFound renders the 404 page for unknown paths.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.views.Error(w, http.StatusNotFound, "Page not found")
}

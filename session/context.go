// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey struct{}

// FromContext returns the browser session attached by Middleware, or an
// empty unsaved session.
func FromContext(ctx context.Context) *Data {
	if d, ok := ctx.Value(contextKey{}).(*Data); ok {
		return d
	}
	return &Data{}
}

// NewContext attaches d to ctx.
func NewContext(ctx context.Context, d *Data) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

// Middleware loads the browser session for every request. A load failure
// is logged and treated as an anonymous session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := m.Load(r)
		if err != nil {
			slog.Error("failed to load browser session", "error", err, "path", r.URL.Path)
			d = &Data{}
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), d)))
	})
}

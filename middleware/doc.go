// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets a UUID request id, returned in X-Request-ID and
available to handlers via RequestID(ctx). Logs request start (method,
path, remote) and completion (status, duration_ms).

# Headers

Robots sets X-Robots-Tag on every response. SecureHeaders adds the usual
nosniff, frame and referrer headers. NoStore disables caching on pages
that show per-user state:

	server := http.Server{
		Handler: middleware.Robots(middleware.SecureHeaders(mux)),
	}

# Gates

RequireUser redirects anonymous visitors to /login. RequireAdmin redirects
to /admin unless the browser session carries the admin flag. Both read
the session attached by session.Manager.Middleware.

# Form Helpers

	name := middleware.FormString(r, "username")            // trimmed
	count := middleware.FormInt(r, "count", 15, 1, 100)     // clamped
	noCode := middleware.FormBool(r, "no_code_found")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware

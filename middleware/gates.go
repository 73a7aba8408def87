// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"

	"github.com/danielhkuo/term-mapper/session"
)

// RequireUser redirects to /login unless a user is logged in
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).LoggedIn() {
			Redirect(w, r, "/login")
			return
		}
		next(w, r)
	}
}

// RequireAdmin redirects to /admin unless the admin flag is set
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).IsAdmin {
			Redirect(w, r, "/admin")
			return
		}
		next(w, r)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for Term Mapper.

# Handler Types

Each handler is a struct holding its store, renderer and config dependencies:

  - AuthHandler: end-user and admin login and logout
  - DashboardHandler: index redirect and the user dashboard
  - SessionHandler: rating session start, term view, submit and completion
  - AdminHandler: console, CSV export, resets and contact message inbox
  - ContactHandler: contact form and notification mail
  - PagesHandler: imprint, privacy policy, robots.txt and health

Handlers are created via constructor functions:

	sessionHandler := handlers.NewSessionHandler(st, sessions, renderer)

The browser session is read from the request context (see package session).
Access gates live in package middleware and are applied by the router.

# Session Flow

A rating session moves from not started to active to complete:

	POST /session/start    → Start (snapshot terms, cursor 0)
	GET  /session          → View (term at the cursor)
	POST /session/submit   → Submit (store mapping, cursor + 1)
	GET  /session/complete → Complete (stamp completion, count mappings)

Submitting the same term twice stores one mapping; the cursor still moves.

# Admin

	GET  /admin/console                → Console
	GET  /admin/export                 → Export (CSV attachment)
	POST /admin/reset/mappings         → ResetMappings
	POST /admin/reset/all              → ResetAll (delete, then re-import)
	POST /admin/reset/user             → ResetUser
	GET  /admin/messages               → Messages
	POST /admin/messages/{id}/mark-read → MarkRead
	POST /admin/messages/{id}/delete   → DeleteMessage

Resets redirect back to the console with a flash message in the query string.
*/
package handlers

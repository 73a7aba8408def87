// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for Term Mapper.

# Route Registration

NewRouter builds the route table from the shared services and returns the
fully wrapped handler:

	handler := router.NewRouter(router.Deps{Store: st, Sessions: sm, ...})

Every response passes through middleware.Robots, middleware.SecureHeaders
and the browser session middleware.

# Endpoints

Public:

	GET  /                 - Redirect to dashboard or login
	GET  /login, POST /login
	GET  /logout
	GET  /contact, POST /contact/submit
	GET  /imprint, GET /datenschutz, GET /privacy
	GET  /robots.txt, GET /health, GET /static/...

User (login required, otherwise redirect to /login):

	GET  /dashboard
	POST /session/start
	GET  /session
	POST /session/submit
	GET  /session/complete

Admin (admin flag required, otherwise redirect to /admin):

	GET  /admin, POST /admin/login, GET /admin/logout
	GET  /admin/console
	GET  /admin/export
	POST /admin/reset/mappings
	POST /admin/reset/all
	POST /admin/reset/user
	GET  /admin/messages
	POST /admin/messages/{id}/mark-read
	POST /admin/messages/{id}/delete

Admin pages are served with no-store cache headers.
*/
package router

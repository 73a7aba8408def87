// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/handlers"
	"github.com/danielhkuo/term-mapper/mailer"
	"github.com/danielhkuo/term-mapper/middleware"
	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

// Deps are the shared services handed to every handler.
type Deps struct {
	Store    *store.Store
	Sessions *session.Manager
	Views    *views.Renderer
	Importer handlers.Reimporter
	Mailer   mailer.Sender
	Config   *config.Config
}

// NewRouter builds the route table and wraps it with the site-wide
// middleware (robots header, security headers, browser session).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Store, d.Sessions, d.Views, d.Config)
	dashboardHandler := handlers.NewDashboardHandler(d.Store, d.Views)
	sessionHandler := handlers.NewSessionHandler(d.Store, d.Sessions, d.Views)
	adminHandler := handlers.NewAdminHandler(d.Store, d.Importer, d.Views)
	contactHandler := handlers.NewContactHandler(d.Store, d.Mailer, d.Views, d.Config.Contact)
	pagesHandler := handlers.NewPagesHandler(d.Views, d.Config)

	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.NoStore(middleware.RequireAdmin(h)))
	}

	// Health check and crawler rules
	mux.HandleFunc("GET /health", pagesHandler.Health)
	mux.HandleFunc("GET /robots.txt", pagesHandler.Robots)
	mux.Handle("GET /static/", views.StaticHandler())

	// End-user authentication
	mux.HandleFunc("GET /{$}", middleware.WithLogging(dashboardHandler.Index))
	mux.HandleFunc("GET /login", middleware.WithLogging(authHandler.LoginPage))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /logout", middleware.WithLogging(authHandler.Logout))

	// Dashboard and rating sessions (login required)
	mux.HandleFunc("GET /dashboard", user(dashboardHandler.Dashboard))
	mux.HandleFunc("POST /session/start", user(sessionHandler.Start))
	mux.HandleFunc("GET /session", user(sessionHandler.View))
	mux.HandleFunc("POST /session/submit", user(sessionHandler.Submit))
	mux.HandleFunc("GET /session/complete", user(sessionHandler.Complete))

	// Admin authentication
	mux.HandleFunc("GET /admin", middleware.WithLogging(middleware.NoStore(authHandler.AdminPage)))
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(middleware.NoStore(authHandler.AdminLogin)))
	mux.HandleFunc("GET /admin/logout", middleware.WithLogging(authHandler.AdminLogout))

	// Admin operations (admin flag required)
	mux.HandleFunc("GET /admin/console", admin(adminHandler.Console))
	mux.HandleFunc("GET /admin/export", admin(adminHandler.Export))
	mux.HandleFunc("POST /admin/reset/mappings", admin(adminHandler.ResetMappings))
	mux.HandleFunc("POST /admin/reset/all", admin(adminHandler.ResetAll))
	mux.HandleFunc("POST /admin/reset/user", admin(adminHandler.ResetUser))
	mux.HandleFunc("GET /admin/messages", admin(adminHandler.Messages))
	mux.HandleFunc("POST /admin/messages/{id}/mark-read", admin(adminHandler.MarkRead))
	mux.HandleFunc("POST /admin/messages/{id}/delete", admin(adminHandler.DeleteMessage))

	// Contact form and legal pages
	mux.HandleFunc("GET /contact", middleware.WithLogging(contactHandler.Form))
	mux.HandleFunc("POST /contact/submit", middleware.WithLogging(contactHandler.Submit))
	mux.HandleFunc("GET /imprint", middleware.WithLogging(pagesHandler.Imprint))
	mux.HandleFunc("GET /datenschutz", middleware.WithLogging(pagesHandler.Datenschutz))
	mux.HandleFunc("GET /privacy", middleware.WithLogging(pagesHandler.Datenschutz))

	// Everything else
	mux.HandleFunc("/", middleware.WithLogging(pagesHandler.NotFound))

	return middleware.Robots(middleware.SecureHeaders(d.Sessions.Middleware(mux)))
}

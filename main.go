package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/term-mapper/cliparse"
	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/db"
	"github.com/danielhkuo/term-mapper/importer"
	"github.com/danielhkuo/term-mapper/logging"
	"github.com/danielhkuo/term-mapper/mailer"
	"github.com/danielhkuo/term-mapper/router"
	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/views"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse flags
	opts, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		slog.Error("failed to load config", "path", opts.ConfigPath, "error", err)
		os.Exit(1)
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}

	logger, logCloser := logging.New(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database and apply migrations
	dbConn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.Migrate(ctx, dbConn); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", cfg.Database.Driver)

	st := store.New(dbConn)

	// Seed terms on first start
	im := importer.New(st, cfg.DataImport)
	if _, err := im.ImportIfEmpty(ctx); err != nil {
		slog.Error("initial term import failed", "path", cfg.DataImport.CSVPath, "error", err)
	}

	sessions := session.NewManager(dbConn, cfg.Server)
	janitor := session.NewJanitor(sessions)
	if err := janitor.Start(session.JanitorInterval); err != nil {
		slog.Error("failed to start session janitor", "error", err)
		os.Exit(1)
	}
	defer janitor.Stop()

	renderer, err := views.New(cfg)
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	handler := router.NewRouter(router.Deps{
		Store:    st,
		Sessions: sessions,
		Views:    renderer,
		Importer: im,
		Mailer:   mailer.New(cfg),
		Config:   cfg,
	})

	server := &http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Server.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

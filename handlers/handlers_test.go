// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/testutil"
	"github.com/danielhkuo/term-mapper/views"
)

// testEnv bundles the dependencies shared by handler tests
type testEnv struct {
	db       *sqlx.DB
	store    *store.Store
	sessions *session.Manager
	views    *views.Renderer
	cfg      *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbx := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	renderer, err := views.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	return &testEnv{
		db:       dbx,
		store:    store.New(dbx),
		sessions: session.NewManager(dbx, cfg.Server),
		views:    renderer,
		cfg:      cfg,
	}
}

// withSession attaches a browser session to req the way the session middleware does
func withSession(req *http.Request, d *session.Data) *http.Request {
	return req.WithContext(session.NewContext(req.Context(), d))
}

// loggedIn returns a browser session for a freshly created user
func (e *testEnv) loggedIn(t *testing.T, username string) *session.Data {
	t.Helper()
	user := testutil.CreateTestUser(t, e.store, username)
	return &session.Data{UserID: user.ID, Username: user.Username}
}

// fakeImporter records Import calls
type fakeImporter struct {
	calls int
	err   error
}

func (f *fakeImporter) Import(ctx context.Context) (*models.ImportResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.ImportResult{}, nil
}

// fakeSender records contact notifications
type fakeSender struct {
	mu   sync.Mutex
	sent []models.ContactMessage
	err  error
}

func (f *fakeSender) SendContact(ctx context.Context, msg *models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *msg)
	return f.err
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/db"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/store"
)

const (
	TestGlobalPassword = "test-global"
	TestAdminPassword  = "test-admin"
)

// SetupTestDB creates a fresh migrated SQLite database in a temp directory
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}

	ctx := context.Background()
	dbx, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })

	if err := db.Migrate(ctx, dbx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return dbx
}

// GetTestConfig returns a standard test configuration. The import file
// path points into a temp directory and does not exist until written.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Server: config.ServerConfig{
			Port:       5000,
			SessionTTL: 24 * time.Hour,
		},
		Database: config.DatabaseConfig{
			Driver: db.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "unused.db"),
		},
		Passwords: config.PasswordsConfig{
			GlobalPassword: TestGlobalPassword,
			AdminPassword:  TestAdminPassword,
		},
		DataImport: config.DataImportConfig{
			CSVPath:        filepath.Join(t.TempDir(), "terms.csv"),
			Encoding:       "utf-8",
			Delimiter:      ",",
			CategoryColumn: "Kategorie",
			TermColumn:     "Item",
		},
		Imprint: config.ImprintConfig{
			Enabled: true,
			Name:    "Test Operator",
			Address: []string{"Teststrasse 1", "12345 Teststadt"},
			Email:   "imprint@example.com",
		},
		Datenschutz: config.DatenschutzConfig{
			Enabled:     true,
			Website:     "terminology-mapper.de",
			Responsible: "Test Operator",
			Email:       "privacy@example.com",
		},
		Contact: config.ContactConfig{
			Enabled:   true,
			StoreInDB: true,
			Email:     "inbox@example.com",
		},
		Email: config.EmailConfig{
			SMTPServer:   "smtp.example.com",
			SMTPPort:     587,
			FromEmail:    "noreply@example.com",
			FromName:     "Term Mapper",
			EnvelopeFrom: "noreply@example.com",
			UseTLS:       true,
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
		},
	}
}

// WriteFile writes content into a file inside a temp directory and returns its path
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

// CreateTestUser creates (or fetches) a user by name
func CreateTestUser(t *testing.T, st *store.Store, username string) *models.User {
	t.Helper()

	user, _, err := st.GetOrCreateUser(context.Background(), username)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestTerms inserts the given terms under category and returns their IDs
func CreateTestTerms(t *testing.T, dbx *sqlx.DB, category string, terms ...string) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(terms))
	for _, term := range terms {
		var id int64
		err := dbx.QueryRowx(dbx.Rebind(`
			INSERT INTO terms (category, term, imported_at)
			VALUES (?, ?, ?)
			RETURNING id
		`), category, term, time.Now().UTC()).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to create test term: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

// AddTestMapping records a mapping for (term, user)
func AddTestMapping(t *testing.T, st *store.Store, termID, userID int64) {
	t.Helper()

	if _, err := st.InsertMapping(context.Background(), termID, userID, `["X1"]`, false); err != nil {
		t.Fatalf("Failed to create test mapping: %v", err)
	}
}

// MakeFormRequest creates a urlencoded form request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 302 to the expected location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Errorf("Expected redirect, got %d. Body: %s", w.Code, w.Body.String())
		return
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertContains checks that the response body contains every substring
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrings {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q. Body: %s", s, body)
		}
	}
}

// Browser drives an http.Handler like a browser that keeps cookies between
// requests and does not follow redirects.
type Browser struct {
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewBrowser(handler http.Handler) *Browser {
	return &Browser{handler: handler, cookies: make(map[string]*http.Cookie)}
}

// Do sends req with the stored cookies and records any cookies set or cleared
func (b *Browser) Do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *Browser) Get(path string) *httptest.ResponseRecorder {
	return b.Do(httptest.NewRequest("GET", path, nil))
}

func (b *Browser) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	return b.Do(MakeFormRequest("POST", path, form))
}

// Cookie returns the stored cookie value for name
func (b *Browser) Cookie(name string) string {
	if c, ok := b.cookies[name]; ok {
		return c.Value
	}
	return ""
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/term-mapper/session"
	"github.com/danielhkuo/term-mapper/testutil"
)

// startSession posts the start form and returns the updated browser session
func startSession(t *testing.T, env *testEnv, handler *SessionHandler, d *session.Data, count string) {
	t.Helper()

	req := testutil.MakeFormRequest("POST", "/session/start", url.Values{"count": {count}})
	w := httptest.NewRecorder()
	handler.Start(w, withSession(req, d))
	testutil.AssertRedirect(t, w, "/session")
	if !d.HasRatingSession() {
		t.Fatal("Expected rating session id in browser session")
	}
}

func submit(t *testing.T, handler *SessionHandler, d *session.Data, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	handler.Submit(w, withSession(testutil.MakeFormRequest("POST", "/session/submit", form), d))
	return w
}

func TestSessionFlow(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	testutil.CreateTestTerms(t, env.db, "Diagnose", "Fieber", "Husten")
	d := env.loggedIn(t, "alice")

	startSession(t, env, handler, d, "15")

	w := httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "Term 1 of 2", "Diagnose", `width: 0%`)

	w = submit(t, handler, d, url.Values{"codes_json": {`["R50.9"]`}})
	testutil.AssertRedirect(t, w, "/session")

	w = httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertContains(t, w, "Term 2 of 2", `width: 50%`)

	w = submit(t, handler, d, url.Values{"no_code_found": {"true"}})
	testutil.AssertRedirect(t, w, "/session")

	w = httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertRedirect(t, w, "/session/complete")

	w = httptest.NewRecorder()
	handler.Complete(w, withSession(httptest.NewRequest("GET", "/session/complete", nil), d))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "You saved 2 mappings")

	if d.HasRatingSession() {
		t.Error("Expected rating session to be cleared after completion")
	}

	stats, err := env.store.UserStats(context.Background(), d.UserID)
	if err != nil {
		t.Fatalf("UserStats failed: %v", err)
	}
	if stats.TotalMappings != 2 || stats.CompletedSessions != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSessionStart_CountClamped(t *testing.T) {
	tests := []struct {
		name  string
		count string
		want  int
	}{
		{"zero clamps to one", "0", 1},
		{"non-numeric uses default", "abc", 15},
		{"too large clamps to max", "1000", 20},
		{"explicit count", "3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			handler := NewSessionHandler(env.store, env.sessions, env.views)
			terms := make([]string, 20)
			for i := range terms {
				terms[i] = "term-" + string(rune('a'+i))
			}
			testutil.CreateTestTerms(t, env.db, "Cat", terms...)
			d := env.loggedIn(t, "alice")

			startSession(t, env, handler, d, tt.count)

			sess, err := env.store.GetSession(context.Background(), d.RatingSessionID, d.UserID)
			if err != nil {
				t.Fatalf("GetSession failed: %v", err)
			}
			if sess.Length != tt.want {
				t.Errorf("Expected %d terms, got %d", tt.want, sess.Length)
			}
		})
	}
}

func TestSessionStart_NoEligibleTerms(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	d := env.loggedIn(t, "alice")

	startSession(t, env, handler, d, "15")

	w := httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertRedirect(t, w, "/session/complete")

	w = httptest.NewRecorder()
	handler.Complete(w, withSession(httptest.NewRequest("GET", "/session/complete", nil), d))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "You saved 0 mappings")
}

func TestSession_NoActiveSession(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	d := env.loggedIn(t, "alice")

	w := httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertRedirect(t, w, "/dashboard")

	w = submit(t, handler, d, url.Values{"codes_json": {`["A"]`}})
	testutil.AssertRedirect(t, w, "/dashboard")

	w = httptest.NewRecorder()
	handler.Complete(w, withSession(httptest.NewRequest("GET", "/session/complete", nil), d))
	testutil.AssertRedirect(t, w, "/dashboard")
}

func TestSession_ForeignSessionIDIsDropped(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	testutil.CreateTestTerms(t, env.db, "Cat", "one")

	owner := env.loggedIn(t, "owner")
	startSession(t, env, handler, owner, "5")

	intruder := env.loggedIn(t, "intruder")
	intruder.RatingSessionID = owner.RatingSessionID

	w := httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), intruder))
	testutil.AssertRedirect(t, w, "/dashboard")
	if intruder.HasRatingSession() {
		t.Error("Expected foreign rating session id to be cleared")
	}
}

func TestSessionSubmit_AfterExhaustedRedirectsToComplete(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	testutil.CreateTestTerms(t, env.db, "Cat", "one")
	d := env.loggedIn(t, "alice")

	startSession(t, env, handler, d, "5")
	testutil.AssertRedirect(t, submit(t, handler, d, url.Values{"codes_json": {`["A"]`}}), "/session")
	testutil.AssertRedirect(t, submit(t, handler, d, url.Values{"codes_json": {`["B"]`}}), "/session/complete")

	n, err := env.store.CountMappingsByUser(context.Background(), d.UserID)
	if err != nil {
		t.Fatalf("CountMappingsByUser failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 mapping, got %d", n)
	}
}

func TestSessionSubmit_DuplicateMappingStillAdvances(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	ids := testutil.CreateTestTerms(t, env.db, "Cat", "only")
	d := env.loggedIn(t, "alice")

	startSession(t, env, handler, d, "5")

	// Mapping saved from another tab before this submit lands.
	testutil.AddTestMapping(t, env.store, ids[0], d.UserID)

	w := submit(t, handler, d, url.Values{"codes_json": {`["Z99"]`}})
	testutil.AssertRedirect(t, w, "/session")

	sess, err := env.store.GetSession(context.Background(), d.RatingSessionID, d.UserID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess.Cursor != 1 {
		t.Errorf("Expected cursor 1, got %d", sess.Cursor)
	}

	n, err := env.store.CountMappingsForTerm(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("CountMappingsForTerm failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected exactly 1 mapping, got %d", n)
	}
}

func TestSessionView_SkipsDeletedTerm(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	testutil.CreateTestTerms(t, env.db, "Cat", "one", "two")
	d := env.loggedIn(t, "alice")

	startSession(t, env, handler, d, "5")

	ids, err := env.store.SessionTermIDs(context.Background(), d.RatingSessionID)
	if err != nil {
		t.Fatalf("SessionTermIDs failed: %v", err)
	}
	if _, err := env.db.Exec("DELETE FROM terms WHERE id = ?", ids[0]); err != nil {
		t.Fatalf("Failed to delete term: %v", err)
	}

	w := httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "Term 2 of 2")
}

func TestSessionView_AllTermsDeletedGoesStraightToComplete(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSessionHandler(env.store, env.sessions, env.views)
	terms := make([]string, 30)
	for i := range terms {
		terms[i] = fmt.Sprintf("term-%d", i)
	}
	testutil.CreateTestTerms(t, env.db, "Cat", terms...)
	d := env.loggedIn(t, "alice")

	startSession(t, env, handler, d, "30")
	if err := env.store.DeleteAllMappingsAndTerms(context.Background()); err != nil {
		t.Fatalf("DeleteAllMappingsAndTerms failed: %v", err)
	}

	w := httptest.NewRecorder()
	handler.View(w, withSession(httptest.NewRequest("GET", "/session", nil), d))
	testutil.AssertRedirect(t, w, "/session/complete")
}

func TestNormalizeCodes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		want     string
	}{
		{"valid array", `["A01","B02"]`, "", `["A01","B02"]`},
		{"blanks dropped and trimmed", `[" A01 ","", "  "]`, "", `["A01"]`},
		{"empty array", `[]`, "", `[]`},
		{"malformed json", `not json`, "", `[]`},
		{"wrong json type", `{"a":1}`, "", `[]`},
		{"empty input", "", "", `[]`},
		{"fallback used when json empty", `[]`, "X1, Y2 ,,", `["X1","Y2"]`},
		{"json wins over fallback", `["A"]`, "B", `["A"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeCodes(tt.raw, tt.fallback); got != tt.want {
				t.Errorf("normalizeCodes(%q, %q) = %s, want %s", tt.raw, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		cursor, length, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 12}, // 12.5 rounds half to even
		{3, 8, 38}, // 37.5 rounds half to even
		{5, 5, 100},
	}

	for _, tt := range tests {
		if got := progress(tt.cursor, tt.length); got != tt.want {
			t.Errorf("progress(%d, %d) = %d, want %d", tt.cursor, tt.length, got, tt.want)
		}
	}
}

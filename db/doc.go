// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and owns its schema.

# Drivers

Two drivers are supported, selected by database.driver in config.yaml:

  - sqlite (modernc.org/sqlite): database.path is a file path
  - postgres (github.com/lib/pq): database.path is a DSN

Open returns an *sqlx.DB whose Rebind turns '?' placeholders into the
driver's native form, so package store writes every query once.

# Migrations

Migrate runs embedded goose migrations for the active dialect:

	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call on every startup.

# Tables

  - users: one row per username
  - terms: (category, term) pairs, unique
  - mappings: one answer per (term, user), unique
  - sessions: rating sessions with a cursor
  - session_terms: ordered term snapshot per rating session
  - contact_messages: contact form submissions
  - browser_sessions: server-side state behind the session cookie

# Relationships

	users 1──* mappings *──1 terms
	users 1──* sessions 1──* session_terms
	users 1──* browser_sessions

# Constraint Errors

IsUniqueViolation recognises duplicate-key errors from both drivers. Callers
use it to treat repeated mapping inserts and duplicate imports as no-ops.
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and aggregate types shared by the store,
importer and handlers.

# Domain Types

Row types carry sqlx `db` tags so package store can scan into them:

  - User: one row per username
  - Term: a (category, term) pair to be mapped
  - Mapping: one user's answer for one term
  - RatingSession: a batch of terms with a cursor
  - ContactMessage: contact form submission

# Aggregates

  - UserStats: per-user totals and 7-day streak
  - OverallProgress: share of terms with at least CoverageThreshold raters
  - LeaderboardEntry: username with mapping count
  - AdminOverview: counters for the admin console
  - ExportRow: one CSV export line

# Rating Session Lifecycle

	NOT_STARTED → ACTIVE(cursor, terms) → COMPLETE

RatingSession.Done reports when the cursor has reached the end of the
snapshot. Completion is recorded separately in CompletedAt.
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/term-mapper/models"
)

// StartSession creates a rating session for the user and snapshots up to
// count terms into session_terms, in selection order, with the cursor at 0.
func (s *Store) StartSession(ctx context.Context, userID int64, count int) (*models.RatingSession, error) {
	sess := &models.RatingSession{
		UserID:     userID,
		StartedAt:  s.now(),
		TermsCount: count,
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO sessions (user_id, started_at, terms_count, cursor_pos)
			VALUES (?, ?, ?, 0)
			RETURNING id
		`), userID, sess.StartedAt, count).Scan(&sess.ID)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		terms, err := s.termsForSession(ctx, tx, userID, count)
		if err != nil {
			return err
		}

		insert := tx.Rebind("INSERT INTO session_terms (session_id, position, term_id) VALUES (?, ?, ?)")
		for i, t := range terms {
			if _, err := tx.ExecContext(ctx, insert, sess.ID, i, t.ID); err != nil {
				return fmt.Errorf("failed to store session term: %w", err)
			}
		}
		sess.Length = len(terms)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession loads a rating session owned by userID.
func (s *Store) GetSession(ctx context.Context, sessionID, userID int64) (*models.RatingSession, error) {
	var sess models.RatingSession
	err := s.db.GetContext(ctx, &sess, s.db.Rebind(`
		SELECT s.id, s.user_id, s.started_at, s.completed_at, s.terms_count, s.cursor_pos,
		       (SELECT COUNT(*) FROM session_terms st WHERE st.session_id = s.id) AS length
		FROM sessions s
		WHERE s.id = ? AND s.user_id = ?
	`), sessionID, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &sess, nil
}

// CurrentTerm returns the term at the session's cursor. ErrNotFound covers
// both an exhausted session and a snapshot entry whose term was deleted.
func (s *Store) CurrentTerm(ctx context.Context, sess *models.RatingSession) (*models.Term, error) {
	if sess.Done() {
		return nil, ErrNotFound
	}

	var term models.Term
	err := s.db.GetContext(ctx, &term, s.db.Rebind(`
		SELECT t.id, t.category, t.term, t.imported_at
		FROM session_terms st
		JOIN terms t ON t.id = st.term_id
		WHERE st.session_id = ? AND st.position = ?
	`), sess.ID, sess.Cursor)
	if err != nil {
		return nil, notFound(err)
	}
	return &term, nil
}

// AdvanceCursor moves the cursor one past from. Two concurrent calls with the
// same from leave the cursor at from+1.
func (s *Store) AdvanceCursor(ctx context.Context, sessionID int64, from int) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		"UPDATE sessions SET cursor_pos = ? WHERE id = ?"), from+1, sessionID)
	if err != nil {
		return fmt.Errorf("failed to advance session: %w", err)
	}
	return nil
}

// SkipMissingTerms moves the cursor to the first snapshot position at or
// after it whose term still exists, or to the end when none is left.
func (s *Store) SkipMissingTerms(ctx context.Context, sess *models.RatingSession) error {
	var next sql.NullInt64
	err := s.db.GetContext(ctx, &next, s.db.Rebind(`
		SELECT MIN(st.position)
		FROM session_terms st
		JOIN terms t ON t.id = st.term_id
		WHERE st.session_id = ? AND st.position >= ?
	`), sess.ID, sess.Cursor)
	if err != nil {
		return fmt.Errorf("failed to find next session term: %w", err)
	}

	cursor := sess.Length
	if next.Valid {
		cursor = int(next.Int64)
	}
	if cursor == sess.Cursor {
		return nil
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		"UPDATE sessions SET cursor_pos = ? WHERE id = ?"), cursor, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to advance session: %w", err)
	}
	sess.Cursor = cursor
	return nil
}

// CompleteSession stamps completed_at and returns how many mappings the
// user created since the session started. Calling it again re-stamps.
func (s *Store) CompleteSession(ctx context.Context, sess *models.RatingSession) (int, error) {
	now := s.now()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		"UPDATE sessions SET completed_at = ? WHERE id = ?"), now, sess.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to complete session: %w", err)
	}
	sess.CompletedAt = &now

	return s.CountMappingsSince(ctx, sess.UserID, sess.StartedAt)
}

// SessionTermIDs returns the snapshot in position order.
func (s *Store) SessionTermIDs(ctx context.Context, sessionID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.SelectContext(ctx, &ids, s.db.Rebind(
		"SELECT term_id FROM session_terms WHERE session_id = ? ORDER BY position"), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session terms: %w", err)
	}
	return ids, nil
}

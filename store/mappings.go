// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/term-mapper/db"
)

// InsertMapping records a user's answer for a term. A second answer for
// the same (term, user) is dropped silently and reported as inserted=false.
func (s *Store) InsertMapping(ctx context.Context, termID, userID int64, codesJSON string, noCodeFound bool) (inserted bool, err error) {
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO mappings (term_id, user_id, codes, no_code_found, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), termID, userID, codesJSON, noCodeFound, s.now())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert mapping: %w", err)
	}
	return true, nil
}

func (s *Store) CountMappingsByUser(ctx context.Context, userID int64) (int, error) {
	n, err := s.count(ctx, s.db, "SELECT COUNT(*) FROM mappings WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return n, nil
}

func (s *Store) CountMappingsSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	n, err := s.count(ctx, s.db,
		"SELECT COUNT(*) FROM mappings WHERE user_id = ? AND created_at > ?", userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return n, nil
}

func (s *Store) CountMappingsForTerm(ctx context.Context, termID int64) (int, error) {
	n, err := s.count(ctx, s.db, "SELECT COUNT(*) FROM mappings WHERE term_id = ?", termID)
	if err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return n, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/term-mapper/db"
	"github.com/danielhkuo/term-mapper/models"
)

// InsertTerm adds a (category, term) pair. A duplicate pair is not an
// error; inserted is false in that case.
func (s *Store) InsertTerm(ctx context.Context, category, term string) (inserted bool, err error) {
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO terms (category, term, imported_at)
		VALUES (?, ?, ?)
	`), category, term, s.now())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert term: %w", err)
	}
	return true, nil
}

func (s *Store) CountTerms(ctx context.Context) (int, error) {
	n, err := s.count(ctx, s.db, "SELECT COUNT(*) FROM terms")
	if err != nil {
		return 0, fmt.Errorf("failed to count terms: %w", err)
	}
	return n, nil
}

func (s *Store) GetTerm(ctx context.Context, id int64) (*models.Term, error) {
	var term models.Term
	err := s.db.GetContext(ctx, &term, s.db.Rebind(`
		SELECT id, category, term, imported_at FROM terms WHERE id = ?
	`), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &term, nil
}

// TermsForSession picks up to count terms the user has not rated yet,
// least-rated first by distinct raters, ties in random order.
func (s *Store) TermsForSession(ctx context.Context, userID int64, count int) ([]models.CandidateTerm, error) {
	return s.termsForSession(ctx, s.db, userID, count)
}

func (s *Store) termsForSession(ctx context.Context, q sqlx.QueryerContext, userID int64, count int) ([]models.CandidateTerm, error) {
	terms := []models.CandidateTerm{}
	if count <= 0 {
		return terms, nil
	}

	err := sqlx.SelectContext(ctx, q, &terms, s.db.Rebind(`
		SELECT t.id, t.category, t.term,
		       COUNT(DISTINCT m.user_id) AS rater_count
		FROM terms t
		LEFT JOIN mappings m ON t.id = m.term_id
		WHERE t.id NOT IN (
			SELECT term_id FROM mappings WHERE user_id = ?
		)
		GROUP BY t.id, t.category, t.term
		ORDER BY rater_count ASC, RANDOM()
		LIMIT ?
	`), userID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to select session terms: %w", err)
	}
	return terms, nil
}

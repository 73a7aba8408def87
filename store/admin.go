// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/term-mapper/models"
)

func (s *Store) AdminOverview(ctx context.Context) (*models.AdminOverview, error) {
	var o models.AdminOverview
	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&o.TotalTerms, "SELECT COUNT(*) FROM terms", nil},
		{&o.TotalMappings, "SELECT COUNT(*) FROM mappings", nil},
		{&o.TotalUsers, "SELECT COUNT(*) FROM users", nil},
		{&o.TotalMessages, "SELECT COUNT(*) FROM contact_messages", nil},
		{&o.UnreadMessages, "SELECT COUNT(*) FROM contact_messages WHERE read = ?", []any{false}},
	}
	for _, c := range counts {
		n, err := s.count(ctx, s.db, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to load admin totals: %w", err)
		}
		*c.dst = n
	}

	usernames, err := s.ListUsernames(ctx)
	if err != nil {
		return nil, err
	}
	o.Usernames = usernames
	return &o, nil
}

// ExportRows returns every mapping joined with its user and term, newest first.
func (s *Store) ExportRows(ctx context.Context) ([]models.ExportRow, error) {
	rows := []models.ExportRow{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT u.username, t.category, t.term, m.codes, m.no_code_found, m.created_at
		FROM mappings m
		JOIN terms t ON m.term_id = t.id
		JOIN users u ON m.user_id = u.id
		ORDER BY m.created_at DESC, m.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load export rows: %w", err)
	}
	return rows, nil
}

// DeleteAllMappings removes every mapping and returns how many went.
func (s *Store) DeleteAllMappings(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM mappings")
	if err != nil {
		return 0, fmt.Errorf("failed to delete mappings: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAllMappingsAndTerms empties mappings and terms in one transaction.
// Session snapshots are left in place.
func (s *Store) DeleteAllMappingsAndTerms(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM mappings"); err != nil {
			return fmt.Errorf("failed to delete mappings: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM terms"); err != nil {
			return fmt.Errorf("failed to delete terms: %w", err)
		}
		return nil
	})
}

// DeleteUserMappings removes one user's mappings. ErrNotFound when the
// username does not exist.
func (s *Store) DeleteUserMappings(ctx context.Context, username string) (int64, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM mappings WHERE user_id = ?"), user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user mappings: %w", err)
	}
	return res.RowsAffected()
}

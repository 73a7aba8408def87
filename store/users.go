// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/term-mapper/db"
	"github.com/danielhkuo/term-mapper/models"
)

// GetOrCreateUser returns the user with the given username, creating it on
// first login. created is true only for the call that inserted the row.
func (s *Store) GetOrCreateUser(ctx context.Context, username string) (user *models.User, created bool, err error) {
	user, err = s.GetUserByUsername(ctx, username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	var id int64
	err = s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO users (username, created_at, total_points)
		VALUES (?, ?, 0)
		RETURNING id
	`), username, s.now()).Scan(&id)
	if err != nil {
		// Lost a race with a concurrent first login
		if db.IsUniqueViolation(err) {
			user, err = s.GetUserByUsername(ctx, username)
			return user, false, err
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	user, err = s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`
		SELECT id, username, created_at, total_points
		FROM users
		WHERE username = ?
	`), username)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) ListUsernames(ctx context.Context) ([]string, error) {
	usernames := []string{}
	if err := s.db.SelectContext(ctx, &usernames, "SELECT username FROM users ORDER BY username"); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return usernames, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/term-mapper/models"
)

func (s *Store) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	msg.CreatedAt = s.now()
	msg.Read = false
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO contact_messages (name, email, subject, message, created_at, read)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`), msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt, false).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}

// ListContactMessages returns all messages, newest first.
func (s *Store) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	msgs := []models.ContactMessage{}
	err := s.db.SelectContext(ctx, &msgs, `
		SELECT id, name, email, subject, message, created_at, read
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

func (s *Store) MarkMessageRead(ctx context.Context, id int64) error {
	return s.execOne(ctx, "UPDATE contact_messages SET read = ? WHERE id = ?", true, id)
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	return s.execOne(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
}

// execOne runs a statement expected to touch exactly one row.
func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

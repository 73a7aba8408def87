// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/danielhkuo/term-mapper/models"
)

const streakWindow = 7 * 24 * time.Hour

func (s *Store) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	var stats models.UserStats
	var err error

	stats.TotalMappings, err = s.CountMappingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.CompletedSessions, err = s.count(ctx, s.db,
		"SELECT COUNT(*) FROM sessions WHERE user_id = ? AND completed_at IS NOT NULL", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed sessions: %w", err)
	}

	cutoff := s.now().Add(-streakWindow)
	stats.Streak, err = s.count(ctx, s.db,
		"SELECT COUNT(*) FROM sessions WHERE user_id = ? AND completed_at >= ?", userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent sessions: %w", err)
	}

	return &stats, nil
}

// OverallProgress reports how many terms have reached the coverage threshold.
func (s *Store) OverallProgress(ctx context.Context) (*models.OverallProgress, error) {
	total, err := s.CountTerms(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.count(ctx, s.db, `
		SELECT COUNT(*) FROM (
			SELECT term_id
			FROM mappings
			GROUP BY term_id
			HAVING COUNT(DISTINCT user_id) >= ?
		) covered
	`, models.CoverageThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to count covered terms: %w", err)
	}

	progress := &models.OverallProgress{TotalTerms: total, CompletedTerms: completed}
	if total > 0 {
		progress.Percentage = math.RoundToEven(1000*float64(completed)/float64(total)) / 10
	}
	return progress, nil
}

// Leaderboard lists the top users by mapping count. Users without mappings
// are included with zero.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	err := s.db.SelectContext(ctx, &entries, s.db.Rebind(`
		SELECT u.username, COUNT(m.id) AS mappings_count
		FROM users u
		LEFT JOIN mappings m ON u.id = m.user_id
		GROUP BY u.id, u.username
		ORDER BY mappings_count DESC, u.username ASC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}

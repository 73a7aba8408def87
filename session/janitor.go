// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// JanitorInterval is how often expired sessions are purged
const JanitorInterval = time.Hour

// Janitor periodically deletes expired browser sessions.
type Janitor struct {
	scheduler *gocron.Scheduler
	manager   *Manager
}

func NewJanitor(m *Manager) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		manager:   m,
	}
}

// Start schedules the purge every interval, running once immediately.
func (j *Janitor) Start(interval time.Duration) error {
	if _, err := j.scheduler.Every(interval).Do(j.purge); err != nil {
		return fmt.Errorf("failed to schedule session janitor: %w", err)
	}
	j.scheduler.StartAsync()
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish.
func (j *Janitor) Stop() {
	j.scheduler.Stop()
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.manager.DeleteExpired(ctx)
	if err != nil {
		slog.Error("session janitor failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("purged expired browser sessions", "count", n)
	}
}

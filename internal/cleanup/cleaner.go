// Package cleanup runs the periodic expired-session sweeper.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/unismart/unismart/internal/auth"
)

// Cleaner periodically removes expired sessions from the store
type Cleaner struct {
	sessions auth.SessionStore
	interval time.Duration
}

// NewCleaner creates a cleanup worker
func NewCleaner(sessions auth.SessionStore, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		sessions: sessions,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Cleaner) run(ctx context.Context) {
	slog.Info("session cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("session cleanup worker stopped")
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Cleaner) sweep(ctx context.Context) {
	removed, err := c.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.Error("failed to sweep expired sessions", "error", err)
		return
	}

	if removed > 0 {
		slog.Info("expired sessions removed", "count", removed)
	} else {
		slog.Debug("no expired sessions found")
	}
}

// Package janitor removes verification tokens whose signup was abandoned.
// Without it, every unfinished signup leaks a token row forever.
package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adilbekov/shopscout/internal/metrics"
	"github.com/adilbekov/shopscout/internal/repository"
	"github.com/robfig/cron/v3"
)

type Janitor struct {
	users    repository.UserRepository
	logger   *slog.Logger
	schedule cron.Schedule
	ttl      time.Duration
}

// New parses the cron expression up front so a bad schedule fails at
// startup, not at 3am.
func New(users repository.UserRepository, logger *slog.Logger, cronExpr string, ttl time.Duration) (*Janitor, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse purge schedule %q: %w", cronExpr, err)
	}
	return &Janitor{
		users:    users,
		logger:   logger.With("component", "janitor"),
		schedule: schedule,
		ttl:      ttl,
	}, nil
}

func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("janitor started", "token_ttl", j.ttl)

	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info("janitor shut down")
			return
		case <-timer.C:
			j.purge(ctx)
		}
	}
}

func (j *Janitor) purge(ctx context.Context) {
	cutoff := time.Now().Add(-j.ttl)

	purged, err := j.users.PurgeTokensBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("purge stale tokens", "error", err)
		return
	}
	if purged > 0 {
		metrics.TokensPurgedTotal.Add(float64(purged))
		j.logger.Info("purged stale verification tokens", "count", purged)
	}
}

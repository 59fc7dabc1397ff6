package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
)

type CheckClockJobs struct {
	checkClockSvc checkclock.Service
}

func NewCheckClockJobs(checkClockSvc checkclock.Service) *CheckClockJobs {
	return &CheckClockJobs{checkClockSvc: checkClockSvc}
}

func (j *CheckClockJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_clock_out_stale_sessions", 15*time.Minute, j.AutoClockOutStaleSessions)
}

// AutoClockOutStaleSessions force-closes open sessions past the daily
// cutoff. The service itself no-ops before the cutoff, so running every
// tick is safe.
func (j *CheckClockJobs) AutoClockOutStaleSessions(ctx context.Context) error {
	closed, err := j.checkClockSvc.AutoClockOut(ctx)
	if err != nil {
		return fmt.Errorf("failed to auto clock out stale sessions: %w", err)
	}

	if closed > 0 {
		slog.Info("Cron: Auto clocked out stale sessions", "count", closed)
	}

	return nil
}

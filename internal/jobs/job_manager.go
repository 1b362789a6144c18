// Package jobs provides the scheduled background tasks of the fulfillment
// pipeline, built on github.com/robfig/cron/v3.
//
// The only job today is the reservation sweep, which releases reservations
// left behind by cancelled sales orders. Jobs are managed through JobManager
// so the composition root can start and stop them as one unit.
package jobs

import (
	"fmt"

	"fulfillment/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reservationSweepJob *ReservationSweepJob
}

// NewJobManager creates a job manager with all required jobs wired to their
// command handlers.
func NewJobManager(
	sweepHandler commands.SweepReservationsCommandHandler,
	sweepSchedule string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		reservationSweepJob: NewReservationSweepJob(sweepHandler, sweepSchedule, logger),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.reservationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start reservation sweep job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job gracefully.
func (jm *JobManager) StopAll() {
	jm.reservationSweepJob.Stop()
}

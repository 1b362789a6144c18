package jobs

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReservationSweepJob periodically releases the active reservations of
// cancelled sales orders so their inventory becomes available again.
//
// The sweep is idempotent, so overlapping or repeated runs are harmless; a
// failed pass is retried on the next tick.
type ReservationSweepJob struct {
	handler  commands.SweepReservationsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *zap.Logger
}

// NewReservationSweepJob creates the sweep job. The schedule is a six-field
// cron expression (with seconds), e.g. "0 * * * * *" for every minute.
func NewReservationSweepJob(
	handler commands.SweepReservationsCommandHandler,
	schedule string,
	logger *zap.Logger,
) *ReservationSweepJob {
	return &ReservationSweepJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With(zap.String("component", "reservation_sweep_job")),
	}
}

// Start schedules the sweep.
func (j *ReservationSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepReservationsCommand()

		released, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("reservation sweep failed", zap.Error(err))
			return
		}
		if released > 0 {
			j.logger.Info("reservation sweep released stale reservations",
				zap.Int("released", released))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("reservation sweep job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the sweep job.
func (j *ReservationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("reservation sweep job stopped")
}

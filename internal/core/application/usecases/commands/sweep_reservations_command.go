package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSweepReservationsCommandIsNotConstructed = errors.New(
	"SweepReservationsCommand must be created via NewSweepReservationsCommand constructor",
)

// SweepReservationsCommand triggers one pass of the reservation sweep: every
// active allocation whose sales order has been cancelled is soft-released so
// the inventory becomes available again. The sweep runs on a schedule and is
// idempotent; a pass that finds nothing to release is a successful no-op.
type SweepReservationsCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepReservationsCommand creates a parameterless sweep trigger.
func NewSweepReservationsCommand() SweepReservationsCommand {
	return SweepReservationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SweepReservationsCommand) Validate() error {
	return c.guard.Validate(ErrSweepReservationsCommandIsNotConstructed)
}

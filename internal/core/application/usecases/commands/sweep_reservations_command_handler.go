package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
)

// SweepReservationsCommandHandler releases the active reservations of
// cancelled sales orders.
//
// One pass runs in a single transaction. Releases carry the reason
// "order_cancelled" and units left without active reservations return to
// available, exactly like a manual release would do. Re-running the sweep
// over already-released rows finds nothing and commits an empty transaction.
type SweepReservationsCommandHandler struct {
	uowFactory ReleaseUoWFactory
	clock      func() time.Time
}

// NewSweepReservationsCommandHandler creates a handler for the sweep.
func NewSweepReservationsCommandHandler(uowFactory ReleaseUoWFactory) SweepReservationsCommandHandler {
	return SweepReservationsCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle runs one sweep pass. Returns the number of reservations released.
func (h *SweepReservationsCommandHandler) Handle(ctx context.Context, cmd SweepReservationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	allocationRepo := uow.AllocationRepository()
	stale, err := allocationRepo.ActiveForCancelledOrders(ctx)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, uow.Commit(ctx)
	}

	now := h.clock()
	touchedUnits := make(map[kernel.UUID]kernel.UUID)
	for _, item := range stale {
		item.Allocation.Release(now, allocation.ReasonOrderCancelled)
		if err = allocationRepo.Update(ctx, item.Allocation); err != nil {
			return 0, err
		}
		touchedUnits[item.Allocation.InventoryUnitID()] = item.OrgID
	}

	unitRepo := uow.InventoryUnitRepository()
	for unitID, orgID := range touchedUnits {
		unit, unitErr := unitRepo.GetForUpdate(ctx, orgID, unitID)
		if unitErr != nil {
			return 0, unitErr
		}
		if err = releaseUnitIfIdle(ctx, allocationRepo, unitRepo, unit); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(stale), nil
}

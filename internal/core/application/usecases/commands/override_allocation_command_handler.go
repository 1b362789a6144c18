package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// OverrideAllocationCommandHandler applies a manual edit to one reservation
// before packing begins: shrink, grow or remove it.
//
// A quantity increase re-validates against the unit's derived availability
// excluding the allocation being edited, under the same row lock the commit
// path uses. Removal is a soft release with reason manual_release.
type OverrideAllocationCommandHandler struct {
	uowFactory ReleaseUoWFactory
	clock      func() time.Time
}

// NewOverrideAllocationCommandHandler creates a handler for manual
// allocation overrides.
func NewOverrideAllocationCommandHandler(uowFactory ReleaseUoWFactory) OverrideAllocationCommandHandler {
	return OverrideAllocationCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the override command.
func (h *OverrideAllocationCommandHandler) Handle(ctx context.Context, cmd OverrideAllocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	allocationRepo := uow.AllocationRepository()
	reservation, err := allocationRepo.Get(ctx, cmd.OrgID(), cmd.AllocationID())
	if err != nil {
		return err
	}

	// Packing must not have started for this reservation.
	shipmentRepo := uow.ShipmentRepository()
	packed, err := shipmentRepo.PackedQuantityForLineUnit(
		ctx, reservation.SalesOrderLineID(), reservation.InventoryUnitID())
	if err != nil {
		return err
	}
	if packed.IsPositive() {
		return &allocation.AlreadyConsumedError{AllocationIDs: []kernel.UUID{reservation.ID()}}
	}

	unitRepo := uow.InventoryUnitRepository()
	unit, err := unitRepo.GetForUpdate(ctx, cmd.OrgID(), reservation.InventoryUnitID())
	if err != nil {
		return err
	}

	if cmd.IsRemoval() {
		reservation.Release(h.clock(), allocation.ReasonManualRelease)
		if err = allocationRepo.Update(ctx, reservation); err != nil {
			return err
		}
		if err = releaseUnitIfIdle(ctx, allocationRepo, unitRepo, unit); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	newQty := *cmd.NewQuantity()
	if newQty.GreaterThan(reservation.Quantity()) {
		remaining, err := remainingAvailability(ctx, allocationRepo, unit, reservation.ID())
		if err != nil {
			return err
		}
		if remaining.LessThan(newQty) {
			return &allocation.InsufficientInventoryError{
				UnitID:    unit.ID(),
				Requested: newQty,
				Remaining: remaining,
			}
		}
	}

	if err = reservation.ChangeQuantity(newQty); err != nil {
		return err
	}
	if err = allocationRepo.Update(ctx, reservation); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseUnitIfIdle returns a reserved unit to available once no active
// allocations remain against it.
func releaseUnitIfIdle(
	ctx context.Context,
	allocationRepo ports.AllocationRepository,
	unitRepo ports.InventoryUnitRepository,
	unit *inventory.Unit,
) error {
	active, err := allocationRepo.ActiveByUnit(ctx, unit.ID())
	if err != nil {
		return err
	}
	if len(active) > 0 || unit.Status() != inventory.Reserved {
		return nil
	}

	if err = unit.ReleaseReservation(); err != nil {
		return err
	}
	return unitRepo.Update(ctx, unit)
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
)

// ErrUndoWindowExpired is returned when the undo window for a committed
// allocation has closed.
var ErrUndoWindowExpired = errors.New("undo window for this allocation has expired")

// UndoAllocationCommandHandler takes back a freshly committed reservation.
//
// Undo is a soft release with reason undo, admitted only while the wall
// clock is still inside the undo window measured from the commit timestamp
// and no box content references the reservation. The gate is a pure time
// comparison evaluated here; nothing about undoability is ever persisted,
// so it cannot go stale.
type UndoAllocationCommandHandler struct {
	uowFactory ReleaseUoWFactory
	undoWindow time.Duration
	clock      func() time.Time
}

// NewUndoAllocationCommandHandler creates a handler for allocation undos
// with the given window.
func NewUndoAllocationCommandHandler(
	uowFactory ReleaseUoWFactory,
	undoWindow time.Duration,
) (UndoAllocationCommandHandler, error) {
	if undoWindow <= 0 {
		return UndoAllocationCommandHandler{}, fmt.Errorf("undo window must be positive, got %s", undoWindow)
	}

	return UndoAllocationCommandHandler{
		uowFactory: uowFactory,
		undoWindow: undoWindow,
		clock:      time.Now,
	}, nil
}

// Handle processes the undo command.
func (h *UndoAllocationCommandHandler) Handle(ctx context.Context, cmd UndoAllocationCommand) error {
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

	packed, err := uow.ShipmentRepository().PackedQuantityForLineUnit(
		ctx, reservation.SalesOrderLineID(), reservation.InventoryUnitID())
	if err != nil {
		return err
	}
	consumed := packed.IsPositive()

	now := h.clock()
	if !allocation.CanUndo(now, reservation.CommittedAt(), h.undoWindow, consumed) {
		if consumed {
			return &allocation.AlreadyConsumedError{AllocationIDs: []kernel.UUID{reservation.ID()}}
		}
		return ErrUndoWindowExpired
	}

	reservation.Release(now, allocation.ReasonUndo)
	if err = allocationRepo.Update(ctx, reservation); err != nil {
		return err
	}

	unitRepo := uow.InventoryUnitRepository()
	unit, err := unitRepo.GetForUpdate(ctx, cmd.OrgID(), reservation.InventoryUnitID())
	if err != nil {
		return err
	}
	if err = releaseUnitIfIdle(ctx, allocationRepo, unitRepo, unit); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

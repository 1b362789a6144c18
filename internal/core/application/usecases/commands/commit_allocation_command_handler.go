package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// CommitAllocationCommandHandler turns a computed allocation plan into
// persisted reservations.
//
// The whole commit is one transaction. Each planned unit is read under a row
// lock and its derived availability is recomputed there; a concurrent commit
// that won the race surfaces as allocation.InsufficientInventoryError and
// rolls the entire plan back, leaving the caller to re-plan.
type CommitAllocationCommandHandler struct {
	uowFactory AllocationUoWFactory
	clock      func() time.Time
}

// NewCommitAllocationCommandHandler creates a handler for allocation commits.
func NewCommitAllocationCommandHandler(uowFactory AllocationUoWFactory) CommitAllocationCommandHandler {
	return CommitAllocationCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the commit command. On success every entry has become an
// active allocation, the touched units are reserved and the order advanced
// to allocated.
func (h *CommitAllocationCommandHandler) Handle(ctx context.Context, cmd CommitAllocationCommand) error {
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

	orderRepo := uow.SalesOrderRepository()
	salesOrder, err := orderRepo.GetByLineID(ctx, cmd.OrgID(), cmd.SalesOrderLineID())
	if err != nil {
		return err
	}
	if _, err = salesOrder.Line(cmd.SalesOrderLineID()); err != nil {
		return err
	}

	committedAt := h.clock()
	unitRepo := uow.InventoryUnitRepository()
	allocationRepo := uow.AllocationRepository()

	for _, entry := range cmd.Entries() {
		unit, err := unitRepo.GetForUpdate(ctx, cmd.OrgID(), entry.InventoryUnitID)
		if err != nil {
			return err
		}

		remaining, err := remainingAvailability(ctx, allocationRepo, unit, kernel.UUID{})
		if err != nil {
			return err
		}
		if !unit.IsAllocatable() || remaining.LessThan(entry.Quantity) {
			return &allocation.InsufficientInventoryError{
				UnitID:    unit.ID(),
				Requested: entry.Quantity,
				Remaining: remaining,
			}
		}

		reservation, err := allocation.NewAllocation(
			kernel.NewUUID(), cmd.SalesOrderLineID(), unit.ID(),
			entry.Quantity, cmd.Strategy(), committedAt,
		)
		if err != nil {
			return err
		}
		if err = allocationRepo.Add(ctx, reservation); err != nil {
			return err
		}

		if err = unit.Reserve(); err != nil {
			return err
		}
		if err = unitRepo.Update(ctx, unit); err != nil {
			return err
		}
	}

	if err = salesOrder.MarkAllocated(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// remainingAvailability derives a unit's free quantity as its physical
// quantity minus the sum of active allocations, optionally excluding one
// allocation (used by override edits re-validating against themselves).
// Callers hold the unit's row lock, so the sum cannot move underneath.
func remainingAvailability(
	ctx context.Context,
	allocationRepo ports.AllocationRepository,
	unit *inventory.Unit,
	excludeAllocationID kernel.UUID,
) (kernel.Quantity, error) {
	active, err := allocationRepo.ActiveByUnit(ctx, unit.ID())
	if err != nil {
		return kernel.ZeroQuantity(), err
	}

	reserved := kernel.ZeroQuantity()
	for _, a := range active {
		if excludeAllocationID.Validate() == nil && a.ID().IsEqual(excludeAllocationID) {
			continue
		}
		reserved = reserved.Add(a.Quantity())
	}

	if reserved.GreaterThan(unit.Quantity()) {
		return kernel.ZeroQuantity(), nil
	}
	return unit.Quantity().Sub(reserved)
}

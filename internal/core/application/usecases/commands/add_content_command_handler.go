package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// QuantityExceedsAllocationError is returned when a content addition would
// pack more of a (line, unit) pair than its active allocations cover.
type QuantityExceedsAllocationError struct {
	SalesOrderLineID kernel.UUID
	InventoryUnitID  kernel.UUID
	Requested        kernel.Quantity
	Unpacked         kernel.Quantity
}

func (e *QuantityExceedsAllocationError) Error() string {
	return fmt.Sprintf("quantity %s exceeds the allocated-but-unpacked %s for line %s and unit %s",
		e.Requested, e.Unpacked, e.SalesOrderLineID, e.InventoryUnitID)
}

// AddContentCommandHandler places an allocated quantity into a box.
//
// The quantity is gated against the reservation ledger: packed amounts per
// (line, unit) pair may never exceed the active allocations. Physical
// consumption is not recorded here; the unit's quantity only drops at
// carrier hand-off. The allergen separation check is consulted by the caller
// beforehand and deliberately not enforced at this write.
type AddContentCommandHandler struct {
	uowFactory PackingUoWFactory
}

// NewAddContentCommandHandler creates a handler for content additions.
func NewAddContentCommandHandler(uowFactory PackingUoWFactory) AddContentCommandHandler {
	return AddContentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-content command.
func (h *AddContentCommandHandler) Handle(ctx context.Context, cmd AddContentCommand) error {
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

	// The unit must exist within the tenant; a cross-tenant ID surfaces the
	// same not-found as a nonexistent one.
	if _, err := uow.InventoryUnitRepository().Get(ctx, cmd.OrgID(), cmd.InventoryUnitID()); err != nil {
		return err
	}

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.GetByBox(ctx, cmd.OrgID(), cmd.BoxID())
	if err != nil {
		return err
	}

	allocated := kernel.ZeroQuantity()
	reservations, err := uow.AllocationRepository().ActiveByLine(ctx, cmd.SalesOrderLineID())
	if err != nil {
		return err
	}
	for _, reservation := range reservations {
		if reservation.InventoryUnitID().IsEqual(cmd.InventoryUnitID()) {
			allocated = allocated.Add(reservation.Quantity())
		}
	}

	packed := aggregate.PackedQuantity(cmd.SalesOrderLineID(), cmd.InventoryUnitID())
	unpacked := kernel.ZeroQuantity()
	if packed.LessThan(allocated) {
		// packed < allocated, Sub cannot fail.
		unpacked, _ = allocated.Sub(packed)
	}
	if cmd.Quantity().GreaterThan(unpacked) {
		return &QuantityExceedsAllocationError{
			SalesOrderLineID: cmd.SalesOrderLineID(),
			InventoryUnitID:  cmd.InventoryUnitID(),
			Requested:        cmd.Quantity(),
			Unpacked:         unpacked,
		}
	}

	if _, err = aggregate.AddContent(
		cmd.BoxID(), cmd.ContentID(), cmd.SalesOrderLineID(), cmd.InventoryUnitID(), cmd.Quantity(),
	); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package allocation

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrAllocationIsNotConstructed is returned when an Allocation instance was
// not created through NewAllocation or RestoreAllocation.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Release reasons recorded when an allocation is soft-deleted.
const (
	ReasonUndo           = "undo"
	ReasonManualRelease  = "manual_release"
	ReasonConsumed       = "consumed"
	ReasonOrderCancelled = "order_cancelled"
)

// Allocation is a reservation linking one sales order line to one inventory
// unit for a specific quantity. Released allocations are soft-deleted: the
// row survives with releasedAt set and no longer counts against the unit's
// derived availability.
type Allocation struct {
	id               kernel.UUID
	salesOrderLineID kernel.UUID
	inventoryUnitID  kernel.UUID
	allocatedQty     kernel.Quantity
	strategy         Strategy
	committedAt      time.Time
	releasedAt       *time.Time
	releaseReason    string

	isConstructed bool
}

// NewAllocation creates an active reservation. The quantity must be strictly
// positive; the committedAt timestamp anchors the undo window.
func NewAllocation(
	id, salesOrderLineID, inventoryUnitID kernel.UUID,
	allocatedQty kernel.Quantity,
	strategy Strategy,
	committedAt time.Time,
) (*Allocation, error) {
	if err := errors.Join(
		id.Validate(), salesOrderLineID.Validate(), inventoryUnitID.Validate(), strategy.Validate(),
	); err != nil {
		return nil, err
	}
	if !allocatedQty.IsPositive() {
		return nil, errs.NewValueIsInvalidError("allocatedQty must be greater than 0")
	}
	if committedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("committedAt")
	}

	return &Allocation{
		id:               id,
		salesOrderLineID: salesOrderLineID,
		inventoryUnitID:  inventoryUnitID,
		allocatedQty:     allocatedQty,
		strategy:         strategy,
		committedAt:      committedAt,
		isConstructed:    true,
	}, nil
}

// RestoreAllocation reconstructs an allocation from persistence, including
// released ones.
func RestoreAllocation(
	id, salesOrderLineID, inventoryUnitID kernel.UUID,
	allocatedQty kernel.Quantity,
	strategy Strategy,
	committedAt time.Time,
	releasedAt *time.Time,
	releaseReason string,
) (*Allocation, error) {
	restored, err := NewAllocation(id, salesOrderLineID, inventoryUnitID, allocatedQty, strategy, committedAt)
	if err != nil {
		return nil, err
	}
	restored.releasedAt = releasedAt
	restored.releaseReason = releaseReason

	return restored, nil
}

// Validate ensures the allocation was created through a constructor.
func (a *Allocation) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAllocationIsNotConstructed
	}
	return nil
}

// ID returns the allocation's identifier.
func (a *Allocation) ID() kernel.UUID { return a.id }

// SalesOrderLineID returns the reserved-for order line.
func (a *Allocation) SalesOrderLineID() kernel.UUID { return a.salesOrderLineID }

// InventoryUnitID returns the reserved inventory unit.
func (a *Allocation) InventoryUnitID() kernel.UUID { return a.inventoryUnitID }

// Quantity returns the reserved quantity.
func (a *Allocation) Quantity() kernel.Quantity { return a.allocatedQty }

// Strategy returns the strategy that produced the reservation.
func (a *Allocation) Strategy() Strategy { return a.strategy }

// CommittedAt returns when the reservation was committed.
func (a *Allocation) CommittedAt() time.Time { return a.committedAt }

// ReleasedAt returns when the reservation was released, nil while active.
func (a *Allocation) ReleasedAt() *time.Time { return a.releasedAt }

// ReleaseReason returns why the reservation was released, empty while active.
func (a *Allocation) ReleaseReason() string { return a.releaseReason }

// IsActive reports whether the reservation still counts against the unit's
// availability.
func (a *Allocation) IsActive() bool {
	return a.releasedAt == nil
}

// Release soft-deletes the reservation, freeing the quantity back to the
// unit's derived availability. Idempotent: releasing an already released
// allocation keeps the original timestamp and reason and returns nil, so a
// repeated release never double-credits availability.
func (a *Allocation) Release(now time.Time, reason string) {
	if a.releasedAt != nil {
		return
	}
	a.releasedAt = &now
	a.releaseReason = reason
}

// ChangeQuantity edits the reserved quantity prior to packing. The caller
// re-validates the new quantity against the unit's availability excluding
// this allocation.
func (a *Allocation) ChangeQuantity(newQty kernel.Quantity) error {
	if !a.IsActive() {
		return errs.NewValueIsInvalidError("released allocation cannot be edited")
	}
	if !newQty.IsPositive() {
		return errs.NewValueIsInvalidError("allocatedQty must be greater than 0")
	}
	a.allocatedQty = newQty
	return nil
}

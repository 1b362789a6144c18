package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
)

// AllocationRepository defines the persistence contract for the reservation
// ledger. Allocations are only ever soft-released: a released row keeps its
// release timestamp and reason, and availability queries skip it.
type AllocationRepository interface {
	// Add persists a new allocation.
	Add(ctx context.Context, aggregate *allocation.Allocation) error

	// Get retrieves an allocation by its identifier within the tenant that
	// owns it (through the sales order the allocated line belongs to).
	// Unknown and cross-tenant IDs both return errs.ObjectNotFoundError so
	// existence is never revealed across tenants.
	Get(ctx context.Context, orgID, id kernel.UUID) (*allocation.Allocation, error)

	// Update persists quantity changes or a release to an existing allocation.
	Update(ctx context.Context, aggregate *allocation.Allocation) error

	// ActiveByLine retrieves the active allocations of one sales order line.
	ActiveByLine(ctx context.Context, lineID kernel.UUID) ([]*allocation.Allocation, error)

	// ActiveByUnit retrieves the active allocations against one inventory
	// unit. Commit re-checks derive the unit's remaining availability from
	// this set while holding the unit's row lock.
	ActiveByUnit(ctx context.Context, unitID kernel.UUID) ([]*allocation.Allocation, error)

	// ActiveForOrder retrieves the active allocations across all lines of a
	// sales order. Used to build the demand set for packing completion and
	// for cascade releases on cancellation.
	ActiveForOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error)

	// ActiveForCancelledOrders retrieves active allocations whose sales
	// order has been cancelled, paired with the owning tenant. Consumed by
	// the reservation sweep job, which crosses tenant boundaries by design.
	ActiveForCancelledOrders(ctx context.Context) ([]CancelledOrderAllocation, error)
}

// CancelledOrderAllocation is one stale reservation found by the sweep,
// together with the tenant it belongs to.
type CancelledOrderAllocation struct {
	OrgID      kernel.UUID
	Allocation *allocation.Allocation
}

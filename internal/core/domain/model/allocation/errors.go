package allocation

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// InsufficientInventoryError is returned when a commit re-check finds that a
// unit can no longer cover its planned quantity, typically because a
// concurrent commit won the race. The whole commit rolls back; the caller
// must re-plan.
type InsufficientInventoryError struct {
	UnitID    kernel.UUID
	Requested kernel.Quantity
	Remaining kernel.Quantity
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory on unit %s: requested %s, remaining %s",
		e.UnitID, e.Requested, e.Remaining)
}

// AlreadyConsumedError is returned when a release targets allocations whose
// quantities have already been placed into boxes of a live shipment. The
// caller must first remove the box contents, or release with force.
type AlreadyConsumedError struct {
	AllocationIDs []kernel.UUID
}

func (e *AlreadyConsumedError) Error() string {
	return fmt.Sprintf("%d allocation(s) already have box contents; remove contents first or release with force",
		len(e.AllocationIDs))
}

package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryUnitRepository defines the persistence contract for inventory
// units (license plates). The pipeline mutates reservation state here but
// does not own the schema.
type InventoryUnitRepository interface {
	// Get retrieves a unit by its identifier within the tenant.
	// Returns errs.ObjectNotFoundError for unknown or cross-tenant IDs.
	Get(ctx context.Context, orgID, id kernel.UUID) (*inventory.Unit, error)

	// GetForUpdate retrieves a unit with a row lock held for the remainder
	// of the surrounding transaction. Used by allocation commits so that the
	// availability re-check and the reservation write see the same quantity.
	GetForUpdate(ctx context.Context, orgID, id kernel.UUID) (*inventory.Unit, error)

	// AvailableCandidates retrieves allocatable units of a product together
	// with their remaining quantity. Remaining is derived in the query as
	// unit quantity minus the sum of active allocations, never read from a
	// stored counter.
	AvailableCandidates(ctx context.Context, orgID, productID kernel.UUID) ([]allocation.Candidate, error)

	// Update persists status and quantity changes to an existing unit.
	Update(ctx context.Context, unit *inventory.Unit) error
}

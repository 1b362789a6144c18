package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ErrDuplicateShipmentNumber is returned by Add when the generated shipment
// number collides with a concurrently created one. The caller recomputes the
// number and retries inside a fresh transaction.
var ErrDuplicateShipmentNumber = errors.New("shipment number already exists")

// ErrShipmentExistsForOrder is returned by Add when the sales order already
// has a live shipment. A shipment parked in exception status does not count;
// its order may be shipped again.
var ErrShipmentExistsForOrder = errors.New("shipment already exists for sales order")

// ShipmentRepository defines the persistence contract for shipment
// aggregates including their boxes and contents.
type ShipmentRepository interface {
	// Add persists a new shipment. Returns ErrDuplicateShipmentNumber when
	// the per-tenant number collides and ErrShipmentExistsForOrder when the
	// order already has a shipment; both are detected via unique constraints
	// so the check holds under concurrent creation.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its boxes and contents by identifier
	// within the tenant. Returns errs.ObjectNotFoundError for unknown or
	// cross-tenant IDs.
	Get(ctx context.Context, orgID, id kernel.UUID) (*shipment.Shipment, error)

	// GetBySalesOrder retrieves the live shipment of a sales order within
	// the tenant. Shipments in exception status are skipped.
	GetBySalesOrder(ctx context.Context, orgID, salesOrderID kernel.UUID) (*shipment.Shipment, error)

	// GetByBox retrieves the shipment owning the given box within the
	// tenant. Unknown and cross-tenant box IDs both return
	// errs.ObjectNotFoundError for the box.
	GetByBox(ctx context.Context, orgID, boxID kernel.UUID) (*shipment.Shipment, error)

	// Update persists changes to an existing shipment aggregate, including
	// added, changed and removed boxes and contents.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// NextShipmentNumber computes the next sequential number for the tenant
	// and year from the maximum existing one.
	NextShipmentNumber(ctx context.Context, orgID kernel.UUID, year int) (string, error)

	// PackedQuantityForLineUnit sums the box contents for one (line, unit)
	// pair across all boxes of non-cancelled shipments. Used to gate content
	// additions against the allocated quantity and to detect consumption on
	// release.
	PackedQuantityForLineUnit(ctx context.Context, lineID, unitID kernel.UUID) (kernel.Quantity, error)
}

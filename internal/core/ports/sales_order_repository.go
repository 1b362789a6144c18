// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
//
// Every read is tenant-scoped: an aggregate that exists but belongs to a
// different tenant is reported as not found, never as forbidden.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// SalesOrderRepository defines the persistence contract for sales order
// aggregates. The pipeline reads orders and advances their status; order
// capture writes them elsewhere.
type SalesOrderRepository interface {
	// Get retrieves an order by its identifier within the tenant.
	// Returns errs.ObjectNotFoundError for unknown or cross-tenant IDs.
	Get(ctx context.Context, orgID, id kernel.UUID) (*order.SalesOrder, error)

	// GetByLineID retrieves the order owning the given line within the tenant.
	GetByLineID(ctx context.Context, orgID, lineID kernel.UUID) (*order.SalesOrder, error)

	// Update persists status changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.SalesOrder) error
}

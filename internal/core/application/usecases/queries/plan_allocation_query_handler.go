package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanAllocationQueryHandler computes a dry-run allocation plan from the
// database. Residual demand is the line's ordered quantity minus its active
// allocations; candidate availability is each unit's quantity minus the
// active allocations against it. Both are derived inside the query, never
// read from stored counters.
type PlanAllocationQueryHandler struct {
	db            *gorm.DB
	clock         func() time.Time
	warningWindow time.Duration
}

// NewPlanAllocationQueryHandler creates a handler for allocation planning
// queries. A non-positive warning window falls back to the default.
func NewPlanAllocationQueryHandler(db *gorm.DB, warningWindow time.Duration) PlanAllocationQueryHandler {
	if warningWindow <= 0 {
		warningWindow = allocation.DefaultExpiryWarningWindow
	}

	return PlanAllocationQueryHandler{
		db:            db,
		clock:         time.Now,
		warningWindow: warningWindow,
	}
}

// Handle executes the planning query. The returned plan reserves nothing.
func (h PlanAllocationQueryHandler) Handle(
	ctx context.Context,
	query PlanAllocationQuery,
) (PlanAllocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PlanAllocationQueryResponse{}, err
	}

	demand, productID, err := h.residualDemand(ctx, query)
	if err != nil {
		return PlanAllocationQueryResponse{}, err
	}

	candidates, err := h.availableCandidates(ctx, query.OrgID(), productID)
	if err != nil {
		return PlanAllocationQueryResponse{}, err
	}

	plan := allocation.BuildPlan(demand, candidates, query.Strategy(), h.clock(), h.warningWindow)

	entries := make([]PlanAllocationEntryResponse, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		remaining := kernel.ZeroQuantity()
		for _, candidate := range candidates {
			if candidate.Unit.ID().IsEqual(entry.Unit.ID()) {
				remaining = candidate.Remaining
				break
			}
		}
		entries = append(entries, PlanAllocationEntryResponse{
			InventoryUnitID: entry.Unit.ID(),
			LotNumber:       entry.Unit.LotNumber(),
			ExpiryDate:      entry.Unit.ExpiryDate(),
			LocationID:      entry.Unit.LocationID(),
			Quantity:        entry.Quantity,
			Remaining:       remaining,
			NearExpiry:      entry.NearExpiry,
		})
	}

	return PlanAllocationQueryResponse{
		Strategy:       plan.Strategy,
		Demand:         plan.Demand,
		TotalAllocated: plan.TotalAllocated(),
		ShortfallQty:   plan.ShortfallQty,
		IsPartial:      plan.IsPartial(),
		Entries:        entries,
	}, nil
}

// residualDemand loads the line within the caller's tenant and subtracts its
// active allocations from the ordered quantity.
func (h PlanAllocationQueryHandler) residualDemand(
	ctx context.Context,
	query PlanAllocationQuery,
) (kernel.Quantity, kernel.UUID, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			l.product_id,
			l.quantity_ordered,
			COALESCE((
				SELECT SUM(a.quantity)
				FROM allocations a
				WHERE a.sales_order_line_id = l.id AND a.released_at IS NULL
			), 0)
		FROM sales_order_lines l
		JOIN sales_orders o ON o.id = l.sales_order_id
		WHERE l.id = ? AND o.org_id = ?
	`, query.SalesOrderLineID().Bytes(), query.OrgID().Bytes()).Row()

	var productIDRaw uuid.UUID
	var orderedStr, allocatedStr string
	if err := row.Scan(&productIDRaw, &orderedStr, &allocatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kernel.Quantity{}, kernel.UUID{}, errs.NewObjectNotFoundError(
				"sales order line", query.SalesOrderLineID())
		}
		return kernel.Quantity{}, kernel.UUID{}, err
	}

	productID, err := kernel.UUIDFromBytes(productIDRaw[:])
	if err != nil {
		return kernel.Quantity{}, kernel.UUID{}, err
	}
	ordered, err := kernel.NewQuantityFromString(orderedStr)
	if err != nil {
		return kernel.Quantity{}, kernel.UUID{}, err
	}
	allocated, err := kernel.NewQuantityFromString(allocatedStr)
	if err != nil {
		return kernel.Quantity{}, kernel.UUID{}, err
	}

	if allocated.GreaterThan(ordered) {
		return kernel.ZeroQuantity(), productID, nil
	}
	demand, err := ordered.Sub(allocated)
	if err != nil {
		return kernel.Quantity{}, kernel.UUID{}, err
	}

	return demand, productID, nil
}

// availableCandidates loads every allocatable unit of the product with its
// derived remaining availability.
func (h PlanAllocationQueryHandler) availableCandidates(
	ctx context.Context,
	orgID, productID kernel.UUID,
) ([]allocation.Candidate, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.quantity,
			u.uom,
			u.lot_number,
			u.expiry_date,
			u.receipt_date,
			u.location_id,
			u.quantity - COALESCE(a.allocated, 0) AS remaining
		FROM inventory_units u
		LEFT JOIN (
			SELECT inventory_unit_id, SUM(quantity) AS allocated
			FROM allocations
			WHERE released_at IS NULL
			GROUP BY inventory_unit_id
		) a ON a.inventory_unit_id = u.id
		WHERE u.org_id = ? AND u.product_id = ? AND u.status = ?
		ORDER BY u.receipt_date, u.id
	`, orgID.Bytes(), productID.Bytes(), int(inventory.Available)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]allocation.Candidate, 0)
	for rows.Next() {
		var idRaw, locationIDRaw uuid.UUID
		var quantityStr, uom, lotNumber, remainingStr string
		var expiryDate sql.NullTime
		var receiptDate time.Time

		if err = rows.Scan(
			&idRaw,
			&quantityStr,
			&uom,
			&lotNumber,
			&expiryDate,
			&receiptDate,
			&locationIDRaw,
			&remainingStr,
		); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(idRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		locationID, locErr := kernel.UUIDFromBytes(locationIDRaw[:])
		if locErr != nil {
			return nil, locErr
		}
		quantity, qtyErr := kernel.NewQuantityFromString(quantityStr)
		if qtyErr != nil {
			return nil, qtyErr
		}
		remaining, remErr := kernel.NewQuantityFromString(remainingStr)
		if remErr != nil {
			return nil, remErr
		}

		var expiry *time.Time
		if expiryDate.Valid {
			t := expiryDate.Time
			expiry = &t
		}

		unit, unitErr := inventory.RestoreUnit(
			id, orgID, productID, quantity, uom, lotNumber,
			expiry, receiptDate, locationID, inventory.Available,
		)
		if unitErr != nil {
			return nil, unitErr
		}

		candidates = append(candidates, allocation.Candidate{Unit: unit, Remaining: remaining})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckSeparationQueryHandler runs the allergen separation check for a
// candidate product against a box. The box's allergen profile is the union
// of the declared allergens of every product already packed into it; the
// customer comes from the sales order behind the box's shipment.
type CheckSeparationQueryHandler struct {
	db       *gorm.DB
	registry ports.AllergenRegistry
	checker  services.AllergenChecker
}

// NewCheckSeparationQueryHandler creates a handler for separation checks.
func NewCheckSeparationQueryHandler(
	db *gorm.DB,
	registry ports.AllergenRegistry,
) CheckSeparationQueryHandler {
	return CheckSeparationQueryHandler{
		db:       db,
		registry: registry,
		checker:  services.NewAllergenChecker(),
	}
}

// Handle executes the check. It never fails on allergen data itself: unknown
// products and customers read as empty sets, so the result degrades to "no
// conflict" rather than blocking the packing flow.
func (h CheckSeparationQueryHandler) Handle(
	ctx context.Context,
	query CheckSeparationQuery,
) (CheckSeparationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckSeparationQueryResponse{}, err
	}

	customerID, err := h.boxCustomer(ctx, query.OrgID(), query.BoxID())
	if err != nil {
		return CheckSeparationQueryResponse{}, err
	}

	boxProducts, err := h.boxProducts(ctx, query.BoxID())
	if err != nil {
		return CheckSeparationQueryResponse{}, err
	}

	boxAllergens, err := h.boxAllergens(ctx, query.OrgID(), boxProducts)
	if err != nil {
		return CheckSeparationQueryResponse{}, err
	}
	candidateAllergens, err := h.registry.ProductAllergens(ctx, query.OrgID(), query.ProductID())
	if err != nil {
		return CheckSeparationQueryResponse{}, err
	}
	restrictions, err := h.registry.CustomerRestrictions(ctx, query.OrgID(), customerID)
	if err != nil {
		return CheckSeparationQueryResponse{}, err
	}

	result := h.checker.CheckSeparation(boxAllergens, candidateAllergens, restrictions)
	return CheckSeparationQueryResponse{
		HasConflict:          result.HasConflict,
		IsBlocking:           result.IsBlocking,
		ConflictingAllergens: result.ConflictingAllergens,
	}, nil
}

// boxCustomer resolves the ordering customer behind a box, scoped to the
// caller's tenant.
func (h CheckSeparationQueryHandler) boxCustomer(
	ctx context.Context,
	orgID, boxID kernel.UUID,
) (kernel.UUID, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT o.customer_id
		FROM shipment_boxes b
		JOIN shipments s ON s.id = b.shipment_id
		JOIN sales_orders o ON o.id = s.sales_order_id
		WHERE b.id = ? AND s.org_id = ?
	`, boxID.Bytes(), orgID.Bytes()).Row()

	var customerIDRaw uuid.UUID
	if err := row.Scan(&customerIDRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("box", boxID)
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(customerIDRaw[:])
}

func (h CheckSeparationQueryHandler) boxProducts(
	ctx context.Context,
	boxID kernel.UUID,
) ([]kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT u.product_id
		FROM shipment_box_contents c
		JOIN inventory_units u ON u.id = c.inventory_unit_id
		WHERE c.box_id = ?
	`, boxID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]kernel.UUID, 0)
	for rows.Next() {
		var productIDRaw uuid.UUID
		if err = rows.Scan(&productIDRaw); err != nil {
			return nil, err
		}
		productID, idErr := kernel.UUIDFromBytes(productIDRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		products = append(products, productID)
	}

	return products, rows.Err()
}

func (h CheckSeparationQueryHandler) boxAllergens(
	ctx context.Context,
	orgID kernel.UUID,
	productIDs []kernel.UUID,
) ([]services.Allergen, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	byProduct, err := h.registry.ProductAllergensBatch(ctx, orgID, productIDs)
	if err != nil {
		return nil, err
	}

	var union []services.Allergen
	for _, allergens := range byProduct {
		union = append(union, allergens...)
	}
	return union, nil
}

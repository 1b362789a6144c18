package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// AllergenRegistry defines the read contract against the customer/product
// allergen registry, an external collaborator consumed by the separation
// check. Unknown products and customers yield empty sets, not errors.
type AllergenRegistry interface {
	// ProductAllergens retrieves the declared allergens of one product.
	ProductAllergens(ctx context.Context, orgID, productID kernel.UUID) ([]services.Allergen, error)

	// ProductAllergensBatch retrieves the declared allergens of several
	// products at once, keyed by product ID. Used to gather the allergen set
	// of a box's existing contents in one round trip.
	ProductAllergensBatch(ctx context.Context, orgID kernel.UUID, productIDs []kernel.UUID) (map[kernel.UUID][]services.Allergen, error)

	// CustomerRestrictions retrieves the restriction set a customer has
	// declared.
	CustomerRestrictions(ctx context.Context, orgID, customerID kernel.UUID) ([]services.Allergen, error)
}

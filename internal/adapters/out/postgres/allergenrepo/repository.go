package allergenrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllergenRegistry implements AllergenRegistry using GORM. Unknown
// products and customers read as empty sets, never as errors.
type GormAllergenRegistry struct {
	db *gorm.DB
}

// NewGormAllergenRegistry creates a new GORM allergen registry.
func NewGormAllergenRegistry(db *gorm.DB) *GormAllergenRegistry {
	return &GormAllergenRegistry{db: db}
}

// ProductAllergens retrieves the declared allergens of one product.
func (r *GormAllergenRegistry) ProductAllergens(ctx context.Context, orgID, productID kernel.UUID) ([]services.Allergen, error) {
	if err := errors.Join(orgID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	var names []string
	err := r.db.WithContext(ctx).
		Model(&ProductAllergenDTO{}).
		Where("org_id = ? AND product_id = ?", orgID.Bytes(), productID.Bytes()).
		Pluck("allergen", &names).Error
	if err != nil {
		return nil, err
	}

	return toAllergens(names), nil
}

// ProductAllergensBatch retrieves the declared allergens of several products
// in one round trip, keyed by product ID.
func (r *GormAllergenRegistry) ProductAllergensBatch(
	ctx context.Context,
	orgID kernel.UUID,
	productIDs []kernel.UUID,
) (map[kernel.UUID][]services.Allergen, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}

	result := make(map[kernel.UUID][]services.Allergen, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	raw := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductAllergenDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "org_id = ? AND product_id IN ?", orgID.Bytes(), raw).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		productID, idErr := kernel.UUIDFromBytes(dto.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		result[productID] = append(result[productID], services.Allergen(dto.Allergen))
	}

	return result, nil
}

// CustomerRestrictions retrieves the restriction set a customer has declared.
func (r *GormAllergenRegistry) CustomerRestrictions(ctx context.Context, orgID, customerID kernel.UUID) ([]services.Allergen, error) {
	if err := errors.Join(orgID.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}

	var names []string
	err := r.db.WithContext(ctx).
		Model(&CustomerRestrictionDTO{}).
		Where("org_id = ? AND customer_id = ?", orgID.Bytes(), customerID.Bytes()).
		Pluck("allergen", &names).Error
	if err != nil {
		return nil, err
	}

	return toAllergens(names), nil
}

func toAllergens(names []string) []services.Allergen {
	allergens := make([]services.Allergen, 0, len(names))
	for _, name := range names {
		allergens = append(allergens, services.Allergen(name))
	}
	return allergens
}

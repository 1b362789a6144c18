// Package allergenrepo provides read access to the allergen registry: the
// declared allergens of products and the restrictions customers have
// registered. The registry is owned by another system; the pipeline only
// reads it.
package allergenrepo

import (
	"github.com/google/uuid"
)

// ProductAllergenDTO represents one declared allergen of a product.
type ProductAllergenDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;index:idx_product_allergens_org_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_product_allergens_org_product"`
	Allergen  string    `gorm:"type:varchar(64);not null"`
}

// TableName specifies the database table name for product allergens.
func (ProductAllergenDTO) TableName() string {
	return "product_allergens"
}

// CustomerRestrictionDTO represents one allergen restriction a customer has
// declared.
type CustomerRestrictionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID      uuid.UUID `gorm:"type:uuid;not null;index:idx_customer_restrictions_org_customer"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index:idx_customer_restrictions_org_customer"`
	Allergen   string    `gorm:"type:varchar(64);not null"`
}

// TableName specifies the database table name for customer restrictions.
func (CustomerRestrictionDTO) TableName() string {
	return "customer_allergen_restrictions"
}

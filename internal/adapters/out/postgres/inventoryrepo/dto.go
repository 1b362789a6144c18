// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory unit (license plate) persistence. The pipeline mutates
// reservation state here; receiving owns the rest of the schema.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryUnitDTO represents the database structure for persisting
// inventory units. Remaining availability is always derived by query against
// the allocations table, never stored here.
type InventoryUnitDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	UOM         string          `gorm:"column:uom;type:varchar(16);not null"`
	LotNumber   string          `gorm:"type:varchar(64);not null"`
	ExpiryDate  *time.Time      `gorm:"index"`
	ReceiptDate time.Time       `gorm:"not null;index"`
	LocationID  uuid.UUID       `gorm:"type:uuid;not null"`
	Status      int             `gorm:"type:int;not null;index"`
}

// TableName specifies the database table name for inventory units.
func (InventoryUnitDTO) TableName() string {
	return "inventory_units"
}

// fromDomain converts an inventory unit to its database representation.
func fromDomain(unit *inventory.Unit) InventoryUnitDTO {
	return InventoryUnitDTO{
		ID:          unit.ID().Bytes(),
		OrgID:       unit.OrgID().Bytes(),
		ProductID:   unit.ProductID().Bytes(),
		Quantity:    unit.Quantity().Decimal(),
		UOM:         unit.UOM(),
		LotNumber:   unit.LotNumber(),
		ExpiryDate:  unit.ExpiryDate(),
		ReceiptDate: unit.ReceiptDate(),
		LocationID:  unit.LocationID().Bytes(),
		Status:      int(unit.Status()),
	}
}

// toDomain converts a database DTO to an inventory unit.
func toDomain(dto InventoryUnitDTO) (*inventory.Unit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreUnit(
		id, orgID, productID, quantity, dto.UOM, dto.LotNumber,
		dto.ExpiryDate, dto.ReceiptDate, locationID, inventory.UnitStatus(dto.Status),
	)
}

// Package allocationrepo provides data transfer objects and mapping
// functions for the reservation ledger. Rows are only ever soft-released:
// released_at and release_reason are set, the row stays.
package allocationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationDTO represents the database structure for persisting
// allocations.
type AllocationDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalesOrderLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryUnitID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Strategy         int             `gorm:"type:int;not null"`
	CommittedAt      time.Time       `gorm:"not null"`
	ReleasedAt       *time.Time      `gorm:"index"`
	ReleaseReason    string          `gorm:"type:varchar(32)"`
}

// TableName specifies the database table name for allocations.
func (AllocationDTO) TableName() string {
	return "allocations"
}

// fromDomain converts an allocation to its database representation.
func fromDomain(aggregate *allocation.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:               aggregate.ID().Bytes(),
		SalesOrderLineID: aggregate.SalesOrderLineID().Bytes(),
		InventoryUnitID:  aggregate.InventoryUnitID().Bytes(),
		Quantity:         aggregate.Quantity().Decimal(),
		Strategy:         int(aggregate.Strategy()),
		CommittedAt:      aggregate.CommittedAt(),
		ReleasedAt:       aggregate.ReleasedAt(),
		ReleaseReason:    aggregate.ReleaseReason(),
	}
}

// toDomain converts a database DTO to an allocation.
func toDomain(dto AllocationDTO) (*allocation.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	lineID, err := kernel.UUIDFromBytes(dto.SalesOrderLineID[:])
	if err != nil {
		return nil, err
	}
	unitID, err := kernel.UUIDFromBytes(dto.InventoryUnitID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	return allocation.RestoreAllocation(
		id, lineID, unitID, quantity, allocation.Strategy(dto.Strategy),
		dto.CommittedAt, dto.ReleasedAt, dto.ReleaseReason,
	)
}

// Package salesorderrepo provides data transfer objects and mapping functions
// for sales order persistence. The pipeline reads orders and advances their
// status; order capture owns the rest of the schema.
package salesorderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderDTO represents the database structure for persisting sales order
// aggregates. The order number is unique per tenant.
type SalesOrderDTO struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_sales_orders_org_number"`
	OrderNumber string              `gorm:"type:varchar(32);not null;uniqueIndex:idx_sales_orders_org_number"`
	CustomerID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status      int                 `gorm:"type:int;not null;index"`
	Lines       []SalesOrderLineDTO `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for sales order entities.
func (SalesOrderDTO) TableName() string {
	return "sales_orders"
}

// SalesOrderLineDTO represents one line of a sales order. Allocated and
// packed quantities are derived by query, never stored here.
type SalesOrderLineDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalesOrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityOrdered decimal.Decimal `gorm:"type:numeric(18,6);not null"`
}

// TableName specifies the database table name for sales order lines.
func (SalesOrderLineDTO) TableName() string {
	return "sales_order_lines"
}

// fromDomain converts a sales order aggregate to its database representation.
func fromDomain(aggregate *order.SalesOrder) SalesOrderDTO {
	orderID := aggregate.ID().Bytes()
	lines := make([]SalesOrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, SalesOrderLineDTO{
			ID:              line.ID().Bytes(),
			SalesOrderID:    orderID,
			ProductID:       line.ProductID().Bytes(),
			QuantityOrdered: line.QuantityOrdered().Decimal(),
		})
	}

	return SalesOrderDTO{
		ID:          orderID,
		OrgID:       aggregate.OrgID().Bytes(),
		OrderNumber: aggregate.Number(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Status:      int(aggregate.Status()),
		Lines:       lines,
	}
}

// toDomain converts a database DTO to a sales order aggregate.
func toDomain(dto SalesOrderDTO) (*order.SalesOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreSalesOrder(
		id, orgID, dto.OrderNumber, customerID, order.Status(dto.Status), lines)
}

func lineToDomain(dto SalesOrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.QuantityOrdered)
	if err != nil {
		return nil, err
	}

	return order.NewLine(id, productID, quantity)
}

// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence, including boxes and their contents.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The shipment number is unique per tenant. The sales order
// reference is guarded by a partial unique index (EnsureLiveShipmentIndex)
// so an order can never have two live shipments, even under concurrent
// creation, while an exception shipment frees the slot for a replacement.
type ShipmentDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrgID          uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_shipments_org_number"`
	ShipmentNumber string           `gorm:"type:varchar(32);not null;uniqueIndex:idx_shipments_org_number"`
	SalesOrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status         int              `gorm:"type:int;not null;index"`
	BoxSeq         int              `gorm:"type:int;not null"`
	PackedAt       *time.Time
	PackedBy       *uuid.UUID `gorm:"type:uuid"`
	ManifestedAt   *time.Time
	ShippedAt      *time.Time
	Boxes          []ShipmentBoxDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentBoxDTO represents one box of a shipment. SSCC and dimensions stay
// null until assigned during packing.
type ShipmentBoxDTO struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID               `gorm:"type:uuid;not null;index"`
	BoxNumber  int                     `gorm:"type:int;not null"`
	SSCC       *string                 `gorm:"column:sscc;type:varchar(18)"`
	Weight     *decimal.Decimal        `gorm:"type:numeric(18,6)"`
	Length     *decimal.Decimal        `gorm:"type:numeric(18,6)"`
	Width      *decimal.Decimal        `gorm:"type:numeric(18,6)"`
	Height     *decimal.Decimal        `gorm:"type:numeric(18,6)"`
	Contents   []ShipmentBoxContentDTO `gorm:"foreignKey:BoxID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment boxes.
func (ShipmentBoxDTO) TableName() string {
	return "shipment_boxes"
}

// ShipmentBoxContentDTO represents one content row inside a box: a quantity
// taken from an inventory unit for a sales order line.
type ShipmentBoxContentDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BoxID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	SalesOrderLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryUnitID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         decimal.Decimal `gorm:"type:numeric(18,6);not null"`
}

// TableName specifies the database table name for box contents.
func (ShipmentBoxContentDTO) TableName() string {
	return "shipment_box_contents"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	var packedBy *uuid.UUID
	if by := aggregate.PackedBy(); by != nil {
		raw := by.Bytes()
		packedBy = &raw
	}

	boxes := make([]ShipmentBoxDTO, 0, len(aggregate.Boxes()))
	for _, box := range aggregate.Boxes() {
		boxes = append(boxes, boxFromDomain(shipmentID, box))
	}

	return ShipmentDTO{
		ID:             shipmentID,
		OrgID:          aggregate.OrgID().Bytes(),
		ShipmentNumber: aggregate.Number(),
		SalesOrderID:   aggregate.SalesOrderID().Bytes(),
		Status:         int(aggregate.Status()),
		BoxSeq:         aggregate.BoxSeq(),
		PackedAt:       aggregate.PackedAt(),
		PackedBy:       packedBy,
		ManifestedAt:   aggregate.ManifestedAt(),
		ShippedAt:      aggregate.ShippedAt(),
		Boxes:          boxes,
	}
}

func boxFromDomain(shipmentID uuid.UUID, box *shipment.Box) ShipmentBoxDTO {
	boxID := box.ID().Bytes()

	var sscc *string
	if box.HasSSCC() {
		s := box.SSCC().String()
		sscc = &s
	}

	contents := make([]ShipmentBoxContentDTO, 0, len(box.Contents()))
	for _, content := range box.Contents() {
		contents = append(contents, ShipmentBoxContentDTO{
			ID:               content.ID().Bytes(),
			BoxID:            boxID,
			SalesOrderLineID: content.SalesOrderLineID().Bytes(),
			InventoryUnitID:  content.InventoryUnitID().Bytes(),
			Quantity:         content.Quantity().Decimal(),
		})
	}

	return ShipmentBoxDTO{
		ID:         boxID,
		ShipmentID: shipmentID,
		BoxNumber:  box.Number(),
		SSCC:       sscc,
		Weight:     decimalPtr(box.Weight()),
		Length:     decimalPtr(box.Length()),
		Width:      decimalPtr(box.Width()),
		Height:     decimalPtr(box.Height()),
		Contents:   contents,
	}
}

func decimalPtr(q *kernel.Quantity) *decimal.Decimal {
	if q == nil {
		return nil
	}
	d := q.Decimal()
	return &d
}

// toDomain converts a database DTO to a shipment aggregate.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	salesOrderID, err := kernel.UUIDFromBytes(dto.SalesOrderID[:])
	if err != nil {
		return nil, err
	}

	var packedBy *kernel.UUID
	if dto.PackedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.PackedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		packedBy = &by
	}

	boxes := make([]*shipment.Box, 0, len(dto.Boxes))
	for _, boxDto := range dto.Boxes {
		box, boxErr := boxToDomain(boxDto)
		if boxErr != nil {
			return nil, boxErr
		}
		boxes = append(boxes, box)
	}

	return shipment.RestoreShipment(
		id, orgID, dto.ShipmentNumber, salesOrderID, shipment.Status(dto.Status),
		dto.BoxSeq, dto.PackedAt, packedBy, dto.ManifestedAt, dto.ShippedAt, boxes,
	)
}

func boxToDomain(dto ShipmentBoxDTO) (*shipment.Box, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var sscc *shipment.SSCC
	if dto.SSCC != nil {
		parsed, ssccErr := shipment.NewSSCC(*dto.SSCC)
		if ssccErr != nil {
			return nil, ssccErr
		}
		sscc = &parsed
	}

	weight, err := quantityPtr(dto.Weight)
	if err != nil {
		return nil, err
	}
	length, err := quantityPtr(dto.Length)
	if err != nil {
		return nil, err
	}
	width, err := quantityPtr(dto.Width)
	if err != nil {
		return nil, err
	}
	height, err := quantityPtr(dto.Height)
	if err != nil {
		return nil, err
	}

	contents := make([]*shipment.Content, 0, len(dto.Contents))
	for _, contentDto := range dto.Contents {
		content, contentErr := contentToDomain(contentDto)
		if contentErr != nil {
			return nil, contentErr
		}
		contents = append(contents, content)
	}

	return shipment.RestoreBox(id, dto.BoxNumber, sscc, weight, length, width, height, contents)
}

func contentToDomain(dto ShipmentBoxContentDTO) (*shipment.Content, error) {
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

	return shipment.RestoreContent(id, lineID, unitID, quantity)
}

func quantityPtr(d *decimal.Decimal) (*kernel.Quantity, error) {
	if d == nil {
		return nil, nil
	}
	q, err := kernel.NewQuantity(*d)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

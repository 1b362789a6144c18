package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment with its boxes and contents.
// Reads are tenant-scoped: a shipment belonging to another tenant reads as
// not found.
type GetShipmentQuery struct { //nolint:recvcheck //using for validation
	orgID      kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for one shipment.
func NewGetShipmentQuery(orgID, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	q := GetShipmentQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrgID(orgID),
		q.setShipmentID(shipmentID),
	); err != nil {
		return GetShipmentQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (q GetShipmentQuery) OrgID() kernel.UUID {
	return q.orgID
}

// ShipmentID returns the shipment being read.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q *GetShipmentQuery) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	q.orgID = orgID
	return nil
}

func (q *GetShipmentQuery) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	q.shipmentID = shipmentID
	return nil
}

// GetShipmentContentResponse is one content row inside a box.
type GetShipmentContentResponse struct {
	ID               kernel.UUID
	SalesOrderLineID kernel.UUID
	InventoryUnitID  kernel.UUID
	Quantity         kernel.Quantity
}

// GetShipmentBoxResponse is one box with its contents. SSCC and dimensions
// are nil until assigned.
type GetShipmentBoxResponse struct {
	ID        kernel.UUID
	BoxNumber int
	SSCC      *string
	Weight    *kernel.Quantity
	Length    *kernel.Quantity
	Width     *kernel.Quantity
	Height    *kernel.Quantity
	Contents  []GetShipmentContentResponse
}

// GetShipmentQueryResponse is the full shipment view.
type GetShipmentQueryResponse struct {
	ID             kernel.UUID
	ShipmentNumber string
	SalesOrderID   kernel.UUID
	Status         shipment.Status
	PackedAt       *time.Time
	PackedBy       *kernel.UUID
	ManifestedAt   *time.Time
	ShippedAt      *time.Time
	TotalBoxes     int
	Boxes          []GetShipmentBoxResponse
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to open the packing phase for a
// picked sales order by creating its shipment.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	orgID        kernel.UUID
	salesOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to open a shipment for an order.
func NewCreateShipmentCommand(shipmentID, orgID, salesOrderID kernel.UUID) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOrgID(orgID),
		cmd.setSalesOrderID(salesOrderID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrgID returns the caller's tenant.
func (c CreateShipmentCommand) OrgID() kernel.UUID {
	return c.orgID
}

// SalesOrderID returns the order being packed.
func (c CreateShipmentCommand) SalesOrderID() kernel.UUID {
	return c.salesOrderID
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *CreateShipmentCommand) setSalesOrderID(salesOrderID kernel.UUID) error {
	if err := salesOrderID.Validate(); err != nil {
		return err
	}

	c.salesOrderID = salesOrderID
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAddBoxCommandIsNotConstructed = errors.New(
	"AddBoxCommand must be created via NewAddBoxCommand constructor",
)

// AddBoxCommand represents a request to add an empty box to a shipment.
type AddBoxCommand struct { //nolint:recvcheck //using for validation
	boxID      kernel.UUID
	orgID      kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddBoxCommand creates a command to add a box to a shipment.
func NewAddBoxCommand(boxID, orgID, shipmentID kernel.UUID) (AddBoxCommand, error) {
	cmd := AddBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBoxID(boxID),
		cmd.setOrgID(orgID),
		cmd.setShipmentID(shipmentID),
	); err != nil {
		return AddBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddBoxCommand) Validate() error {
	return c.guard.Validate(ErrAddBoxCommandIsNotConstructed)
}

// BoxID returns the identifier for the new box.
func (c AddBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

// OrgID returns the caller's tenant.
func (c AddBoxCommand) OrgID() kernel.UUID {
	return c.orgID
}

// ShipmentID returns the shipment receiving the box.
func (c AddBoxCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *AddBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}

func (c *AddBoxCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *AddBoxCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkShippedCommandIsNotConstructed = errors.New(
	"MarkShippedCommand must be created via NewMarkShippedCommand constructor",
)

// MarkShippedCommand represents the carrier hand-off of a manifested
// shipment.
type MarkShippedCommand struct { //nolint:recvcheck //using for validation
	orgID      kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkShippedCommand creates a command recording the carrier hand-off.
func NewMarkShippedCommand(orgID, shipmentID kernel.UUID) (MarkShippedCommand, error) {
	cmd := MarkShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setShipmentID(shipmentID),
	); err != nil {
		return MarkShippedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShippedCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c MarkShippedCommand) OrgID() kernel.UUID {
	return c.orgID
}

// ShipmentID returns the shipment leaving the building.
func (c MarkShippedCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *MarkShippedCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *MarkShippedCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents the delivery confirmation closing a
// shipment's lifecycle.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orgID      kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command recording delivery.
func NewMarkDeliveredCommand(orgID, shipmentID kernel.UUID) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setShipmentID(shipmentID),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c MarkDeliveredCommand) OrgID() kernel.UUID {
	return c.orgID
}

// ShipmentID returns the delivered shipment.
func (c MarkDeliveredCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *MarkDeliveredCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *MarkDeliveredCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

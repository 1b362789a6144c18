package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePackingCommandIsNotConstructed = errors.New(
	"CompletePackingCommand must be created via NewCompletePackingCommand constructor",
)

// CompletePackingCommand represents a request to close the packing phase of
// a shipment.
type CompletePackingCommand struct { //nolint:recvcheck //using for validation
	orgID      kernel.UUID
	shipmentID kernel.UUID
	packedBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePackingCommand creates a command to complete packing, recording
// who did it.
func NewCompletePackingCommand(orgID, shipmentID, packedBy kernel.UUID) (CompletePackingCommand, error) {
	cmd := CompletePackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setShipmentID(shipmentID),
		cmd.setPackedBy(packedBy),
	); err != nil {
		return CompletePackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePackingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePackingCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c CompletePackingCommand) OrgID() kernel.UUID {
	return c.orgID
}

// ShipmentID returns the shipment being closed.
func (c CompletePackingCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PackedBy returns the operator completing the packing.
func (c CompletePackingCommand) PackedBy() kernel.UUID {
	return c.packedBy
}

func (c *CompletePackingCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *CompletePackingCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CompletePackingCommand) setPackedBy(packedBy kernel.UUID) error {
	if err := packedBy.Validate(); err != nil {
		return err
	}

	c.packedBy = packedBy
	return nil
}

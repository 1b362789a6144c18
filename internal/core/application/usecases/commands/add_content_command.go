package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddContentCommandIsNotConstructed = errors.New(
		"AddContentCommand must be created via NewAddContentCommand constructor",
	)
	ErrContentQuantityIsInvalid = errors.New("content quantity must be greater than 0")
)

// AddContentCommand represents a request to place an allocated quantity of
// one inventory unit into a box.
type AddContentCommand struct { //nolint:recvcheck //using for validation
	contentID        kernel.UUID
	orgID            kernel.UUID
	boxID            kernel.UUID
	salesOrderLineID kernel.UUID
	inventoryUnitID  kernel.UUID
	quantity         kernel.Quantity

	guard guard.ConstructorGuard
}

// NewAddContentCommand creates a command to pack a quantity into a box.
func NewAddContentCommand(
	contentID, orgID, boxID, salesOrderLineID, inventoryUnitID kernel.UUID,
	quantity kernel.Quantity,
) (AddContentCommand, error) {
	cmd := AddContentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(contentID, orgID, boxID, salesOrderLineID, inventoryUnitID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddContentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddContentCommand) Validate() error {
	return c.guard.Validate(ErrAddContentCommandIsNotConstructed)
}

// ContentID returns the identifier for the new content row.
func (c AddContentCommand) ContentID() kernel.UUID {
	return c.contentID
}

// OrgID returns the caller's tenant.
func (c AddContentCommand) OrgID() kernel.UUID {
	return c.orgID
}

// BoxID returns the receiving box.
func (c AddContentCommand) BoxID() kernel.UUID {
	return c.boxID
}

// SalesOrderLineID returns the order line being fulfilled.
func (c AddContentCommand) SalesOrderLineID() kernel.UUID {
	return c.salesOrderLineID
}

// InventoryUnitID returns the source license plate.
func (c AddContentCommand) InventoryUnitID() kernel.UUID {
	return c.inventoryUnitID
}

// Quantity returns the quantity being packed.
func (c AddContentCommand) Quantity() kernel.Quantity {
	return c.quantity
}

func (c *AddContentCommand) setIDs(contentID, orgID, boxID, lineID, unitID kernel.UUID) error {
	if err := errors.Join(
		contentID.Validate(), orgID.Validate(), boxID.Validate(), lineID.Validate(), unitID.Validate(),
	); err != nil {
		return err
	}

	c.contentID = contentID
	c.orgID = orgID
	c.boxID = boxID
	c.salesOrderLineID = lineID
	c.inventoryUnitID = unitID
	return nil
}

func (c *AddContentCommand) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return ErrContentQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

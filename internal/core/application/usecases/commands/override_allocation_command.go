package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrOverrideAllocationCommandIsNotConstructed = errors.New(
		"OverrideAllocationCommand must be created via NewOverrideAllocationCommand constructor",
	)
	ErrNewQuantityIsInvalid = errors.New("new quantity must be greater than 0")
)

// OverrideAllocationCommand represents a manual edit of a single reservation
// prior to packing: either a quantity change or a full removal.
type OverrideAllocationCommand struct { //nolint:recvcheck //using for validation
	orgID        kernel.UUID
	allocationID kernel.UUID
	newQuantity  *kernel.Quantity // nil means remove

	guard guard.ConstructorGuard
}

// NewOverrideAllocationCommand creates a command to edit an allocation's
// quantity. A nil newQuantity removes the reservation entirely.
func NewOverrideAllocationCommand(
	orgID, allocationID kernel.UUID,
	newQuantity *kernel.Quantity,
) (OverrideAllocationCommand, error) {
	cmd := OverrideAllocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setAllocationID(allocationID),
		cmd.setNewQuantity(newQuantity),
	); err != nil {
		return OverrideAllocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideAllocationCommand) Validate() error {
	return c.guard.Validate(ErrOverrideAllocationCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c OverrideAllocationCommand) OrgID() kernel.UUID {
	return c.orgID
}

// AllocationID returns the reservation being edited.
func (c OverrideAllocationCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

// NewQuantity returns the requested quantity, nil for removal.
func (c OverrideAllocationCommand) NewQuantity() *kernel.Quantity {
	return c.newQuantity
}

// IsRemoval reports whether the edit removes the reservation.
func (c OverrideAllocationCommand) IsRemoval() bool {
	return c.newQuantity == nil
}

func (c *OverrideAllocationCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *OverrideAllocationCommand) setAllocationID(allocationID kernel.UUID) error {
	if err := allocationID.Validate(); err != nil {
		return err
	}

	c.allocationID = allocationID
	return nil
}

func (c *OverrideAllocationCommand) setNewQuantity(newQuantity *kernel.Quantity) error {
	if newQuantity != nil && !newQuantity.IsPositive() {
		return ErrNewQuantityIsInvalid
	}

	c.newQuantity = newQuantity
	return nil
}

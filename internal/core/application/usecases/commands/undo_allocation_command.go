package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUndoAllocationCommandIsNotConstructed = errors.New(
	"UndoAllocationCommand must be created via NewUndoAllocationCommand constructor",
)

// UndoAllocationCommand represents a request to take back one freshly
// committed reservation within the undo window.
type UndoAllocationCommand struct { //nolint:recvcheck //using for validation
	orgID        kernel.UUID
	allocationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUndoAllocationCommand creates a command to undo a recent commit.
func NewUndoAllocationCommand(orgID, allocationID kernel.UUID) (UndoAllocationCommand, error) {
	cmd := UndoAllocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setAllocationID(allocationID),
	); err != nil {
		return UndoAllocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UndoAllocationCommand) Validate() error {
	return c.guard.Validate(ErrUndoAllocationCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c UndoAllocationCommand) OrgID() kernel.UUID {
	return c.orgID
}

// AllocationID returns the reservation being undone.
func (c UndoAllocationCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c *UndoAllocationCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *UndoAllocationCommand) setAllocationID(allocationID kernel.UUID) error {
	if err := allocationID.Validate(); err != nil {
		return err
	}

	c.allocationID = allocationID
	return nil
}

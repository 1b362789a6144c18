package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateBoxCommandIsNotConstructed = errors.New(
		"UpdateBoxCommand must be created via NewUpdateBoxCommand constructor",
	)
	ErrBoxPatchIsEmpty = errors.New("at least one of weight, length, width, height is required")
)

// UpdateBoxCommand represents a partial update of one box's weight and
// dimensions. Absent fields are left untouched.
type UpdateBoxCommand struct { //nolint:recvcheck //using for validation
	orgID kernel.UUID
	boxID kernel.UUID
	patch shipment.BoxPatch

	guard guard.ConstructorGuard
}

// NewUpdateBoxCommand creates a command to change box measurements. Range
// validation against the configured limits happens in the aggregate; the
// command only requires that the patch is not empty.
func NewUpdateBoxCommand(orgID, boxID kernel.UUID, patch shipment.BoxPatch) (UpdateBoxCommand, error) {
	cmd := UpdateBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setBoxID(boxID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateBoxCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBoxCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c UpdateBoxCommand) OrgID() kernel.UUID {
	return c.orgID
}

// BoxID returns the box being updated.
func (c UpdateBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

// Patch returns the fields to change.
func (c UpdateBoxCommand) Patch() shipment.BoxPatch {
	return c.patch
}

func (c *UpdateBoxCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *UpdateBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}

func (c *UpdateBoxCommand) setPatch(patch shipment.BoxPatch) error {
	if patch.Weight == nil && patch.Length == nil && patch.Width == nil && patch.Height == nil {
		return ErrBoxPatchIsEmpty
	}

	c.patch = patch
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrSetBoxSSCCCommandIsNotConstructed = errors.New(
	"SetBoxSSCCCommand must be created via NewSetBoxSSCCCommand constructor",
)

// SetBoxSSCCCommand represents a request to assign or replace the shipping
// identifier of one box ahead of the manifest gate.
type SetBoxSSCCCommand struct { //nolint:recvcheck //using for validation
	orgID kernel.UUID
	boxID kernel.UUID
	sscc  shipment.SSCC

	guard guard.ConstructorGuard
}

// NewSetBoxSSCCCommand creates a command to assign an SSCC to a box. The
// code's length and check digit are validated here.
func NewSetBoxSSCCCommand(orgID, boxID kernel.UUID, code string) (SetBoxSSCCCommand, error) {
	cmd := SetBoxSSCCCommand{
		guard: guard.NewConstructorGuard(),
	}

	sscc, ssccErr := shipment.NewSSCC(code)
	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setBoxID(boxID),
		ssccErr,
	); err != nil {
		return SetBoxSSCCCommand{}, err
	}
	cmd.sscc = sscc

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetBoxSSCCCommand) Validate() error {
	return c.guard.Validate(ErrSetBoxSSCCCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c SetBoxSSCCCommand) OrgID() kernel.UUID {
	return c.orgID
}

// BoxID returns the box being labelled.
func (c SetBoxSSCCCommand) BoxID() kernel.UUID {
	return c.boxID
}

// SSCC returns the validated shipping identifier.
func (c SetBoxSSCCCommand) SSCC() shipment.SSCC {
	return c.sscc
}

func (c *SetBoxSSCCCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *SetBoxSSCCCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrManifestShipmentCommandIsNotConstructed = errors.New(
		"ManifestShipmentCommand must be created via NewManifestShipmentCommand constructor",
	)
	ErrCallerRoleIsRequired = errors.New("caller role is required")
)

// ManifestShipmentCommand represents a request to pass a packed shipment
// through the compliance gate toward carrier hand-off.
type ManifestShipmentCommand struct { //nolint:recvcheck //using for validation
	orgID      kernel.UUID
	shipmentID kernel.UUID
	callerRole string

	guard guard.ConstructorGuard
}

// NewManifestShipmentCommand creates a command to manifest a shipment. The
// caller's role comes from the authenticated request; the handler gates on
// it.
func NewManifestShipmentCommand(orgID, shipmentID kernel.UUID, callerRole string) (ManifestShipmentCommand, error) {
	cmd := ManifestShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setShipmentID(shipmentID),
		cmd.setCallerRole(callerRole),
	); err != nil {
		return ManifestShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ManifestShipmentCommand) Validate() error {
	return c.guard.Validate(ErrManifestShipmentCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c ManifestShipmentCommand) OrgID() kernel.UUID {
	return c.orgID
}

// ShipmentID returns the shipment passing the gate.
func (c ManifestShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// CallerRole returns the authenticated caller's role.
func (c ManifestShipmentCommand) CallerRole() string {
	return c.callerRole
}

func (c *ManifestShipmentCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *ManifestShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ManifestShipmentCommand) setCallerRole(callerRole string) error {
	if callerRole == "" {
		return ErrCallerRoleIsRequired
	}

	c.callerRole = callerRole
	return nil
}

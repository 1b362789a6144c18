package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReleaseAllocationsCommandIsNotConstructed = errors.New(
		"ReleaseAllocationsCommand must be created via NewReleaseAllocationsCommand constructor",
	)
	ErrReleaseTargetIsRequired = errors.New("exactly one of line ID or order ID is required")
	ErrReleaseReasonIsRequired = errors.New("release reason is required")
)

// ReleaseAllocationsCommand represents a request to soft-release every
// active reservation of one sales order line or of a whole order.
//
// Releasing reservations whose quantities already sit in boxes of a live
// shipment is refused unless Force is set, in which case the box contents
// are cascaded away first.
type ReleaseAllocationsCommand struct { //nolint:recvcheck //using for validation
	orgID            kernel.UUID
	salesOrderLineID *kernel.UUID
	salesOrderID     *kernel.UUID
	reason           string
	force            bool

	guard guard.ConstructorGuard
}

// NewReleaseLineAllocationsCommand creates a command releasing the active
// reservations of one sales order line.
func NewReleaseLineAllocationsCommand(
	orgID, salesOrderLineID kernel.UUID,
	reason string,
	force bool,
) (ReleaseAllocationsCommand, error) {
	return newReleaseAllocationsCommand(orgID, &salesOrderLineID, nil, reason, force)
}

// NewReleaseOrderAllocationsCommand creates a command releasing the active
// reservations across all lines of a sales order.
func NewReleaseOrderAllocationsCommand(
	orgID, salesOrderID kernel.UUID,
	reason string,
	force bool,
) (ReleaseAllocationsCommand, error) {
	return newReleaseAllocationsCommand(orgID, nil, &salesOrderID, reason, force)
}

func newReleaseAllocationsCommand(
	orgID kernel.UUID,
	lineID, orderID *kernel.UUID,
	reason string,
	force bool,
) (ReleaseAllocationsCommand, error) {
	cmd := ReleaseAllocationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setTarget(lineID, orderID),
		cmd.setReason(reason),
	); err != nil {
		return ReleaseAllocationsCommand{}, err
	}
	cmd.force = force

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c ReleaseAllocationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseAllocationsCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c ReleaseAllocationsCommand) OrgID() kernel.UUID {
	return c.orgID
}

// SalesOrderLineID returns the targeted line, nil for order-wide releases.
func (c ReleaseAllocationsCommand) SalesOrderLineID() *kernel.UUID {
	return c.salesOrderLineID
}

// SalesOrderID returns the targeted order, nil for line releases.
func (c ReleaseAllocationsCommand) SalesOrderID() *kernel.UUID {
	return c.salesOrderID
}

// Reason returns the release reason recorded on every released row.
func (c ReleaseAllocationsCommand) Reason() string {
	return c.reason
}

// Force reports whether existing box contents are cascaded away.
func (c ReleaseAllocationsCommand) Force() bool {
	return c.force
}

func (c *ReleaseAllocationsCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *ReleaseAllocationsCommand) setTarget(lineID, orderID *kernel.UUID) error {
	if (lineID == nil) == (orderID == nil) {
		return ErrReleaseTargetIsRequired
	}
	if lineID != nil {
		if err := lineID.Validate(); err != nil {
			return err
		}
		c.salesOrderLineID = lineID
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.salesOrderID = orderID
	return nil
}

func (c *ReleaseAllocationsCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReleaseReasonIsRequired
	}

	c.reason = reason
	return nil
}

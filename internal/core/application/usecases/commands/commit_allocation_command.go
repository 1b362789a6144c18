package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCommitAllocationCommandIsNotConstructed = errors.New(
		"CommitAllocationCommand must be created via NewCommitAllocationCommand constructor",
	)
	ErrPlanEntriesAreRequired = errors.New("plan entries are required")
	ErrEntryQuantityIsInvalid = errors.New("entry quantity must be greater than 0")
)

// CommitEntry is one (unit, quantity) pair of a plan being committed.
type CommitEntry struct {
	InventoryUnitID kernel.UUID
	Quantity        kernel.Quantity
}

// CommitAllocationCommand represents a request to turn an allocation plan
// into persisted reservations. The plan was computed by the planning query;
// the handler re-checks availability under row locks before writing, so a
// stale plan fails cleanly instead of over-reserving.
type CommitAllocationCommand struct { //nolint:recvcheck //using for validation
	orgID            kernel.UUID
	salesOrderLineID kernel.UUID
	strategy         allocation.Strategy
	entries          []CommitEntry

	guard guard.ConstructorGuard
}

// NewCommitAllocationCommand creates a command to commit a computed plan.
// Validates tenancy, line, strategy and that every entry carries a valid
// unit and a positive quantity.
func NewCommitAllocationCommand(
	orgID, salesOrderLineID kernel.UUID,
	strategy allocation.Strategy,
	entries []CommitEntry,
) (CommitAllocationCommand, error) {
	cmd := CommitAllocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setSalesOrderLineID(salesOrderLineID),
		cmd.setStrategy(strategy),
		cmd.setEntries(entries),
	); err != nil {
		return CommitAllocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CommitAllocationCommand) Validate() error {
	return c.guard.Validate(ErrCommitAllocationCommandIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (c CommitAllocationCommand) OrgID() kernel.UUID {
	return c.orgID
}

// SalesOrderLineID returns the line being allocated.
func (c CommitAllocationCommand) SalesOrderLineID() kernel.UUID {
	return c.salesOrderLineID
}

// Strategy returns the strategy that produced the plan.
func (c CommitAllocationCommand) Strategy() allocation.Strategy {
	return c.strategy
}

// Entries returns the (unit, quantity) pairs to reserve.
func (c CommitAllocationCommand) Entries() []CommitEntry {
	return c.entries
}

func (c *CommitAllocationCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *CommitAllocationCommand) setSalesOrderLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.salesOrderLineID = lineID
	return nil
}

func (c *CommitAllocationCommand) setStrategy(strategy allocation.Strategy) error {
	if err := strategy.Validate(); err != nil {
		return err
	}

	c.strategy = strategy
	return nil
}

func (c *CommitAllocationCommand) setEntries(entries []CommitEntry) error {
	if len(entries) == 0 {
		return ErrPlanEntriesAreRequired
	}
	for _, entry := range entries {
		if err := entry.InventoryUnitID.Validate(); err != nil {
			return err
		}
		if !entry.Quantity.IsPositive() {
			return ErrEntryQuantityIsInvalid
		}
	}

	c.entries = entries
	return nil
}

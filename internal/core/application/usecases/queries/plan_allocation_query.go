package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPlanAllocationQueryIsNotConstructed = errors.New(
	"PlanAllocationQuery must be created via NewPlanAllocationQuery constructor",
)

// PlanAllocationQuery asks for a dry-run allocation plan for one sales order
// line. The plan is computed against current derived availability but
// reserves nothing; committing it is a separate command.
//
// Example:
//
//	query, err := NewPlanAllocationQuery(orgID, lineID, allocation.FEFO)
//	if err != nil {
//	    return err
//	}
//
//	plan, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if plan.IsPartial {
//	    fmt.Printf("short by %s, offer hold or backorder\n", plan.ShortfallQty)
//	}
type PlanAllocationQuery struct { //nolint:recvcheck //using for validation
	orgID            kernel.UUID
	salesOrderLineID kernel.UUID
	strategy         allocation.Strategy

	guard guard.ConstructorGuard
}

// NewPlanAllocationQuery creates a planning query for the given line and
// strategy.
func NewPlanAllocationQuery(
	orgID, salesOrderLineID kernel.UUID,
	strategy allocation.Strategy,
) (PlanAllocationQuery, error) {
	q := PlanAllocationQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrgID(orgID),
		q.setSalesOrderLineID(salesOrderLineID),
		q.setStrategy(strategy),
	); err != nil {
		return PlanAllocationQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q PlanAllocationQuery) Validate() error {
	return q.guard.Validate(ErrPlanAllocationQueryIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (q PlanAllocationQuery) OrgID() kernel.UUID {
	return q.orgID
}

// SalesOrderLineID returns the line being planned.
func (q PlanAllocationQuery) SalesOrderLineID() kernel.UUID {
	return q.salesOrderLineID
}

// Strategy returns the requested candidate ordering.
func (q PlanAllocationQuery) Strategy() allocation.Strategy {
	return q.strategy
}

func (q *PlanAllocationQuery) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	q.orgID = orgID
	return nil
}

func (q *PlanAllocationQuery) setSalesOrderLineID(salesOrderLineID kernel.UUID) error {
	if err := salesOrderLineID.Validate(); err != nil {
		return err
	}

	q.salesOrderLineID = salesOrderLineID
	return nil
}

func (q *PlanAllocationQuery) setStrategy(strategy allocation.Strategy) error {
	if err := strategy.Validate(); err != nil {
		return err
	}

	q.strategy = strategy
	return nil
}

// PlanAllocationEntryResponse is one planned (unit, quantity) pair.
type PlanAllocationEntryResponse struct {
	InventoryUnitID kernel.UUID
	LotNumber       string
	ExpiryDate      *time.Time
	LocationID      kernel.UUID
	Quantity        kernel.Quantity
	Remaining       kernel.Quantity
	NearExpiry      bool
}

// PlanAllocationQueryResponse is the dry-run plan for a line: what would be
// taken from which units, and how much demand stays uncovered.
type PlanAllocationQueryResponse struct {
	Strategy       allocation.Strategy
	Demand         kernel.Quantity
	TotalAllocated kernel.Quantity
	ShortfallQty   kernel.Quantity
	IsPartial      bool
	Entries        []PlanAllocationEntryResponse
}

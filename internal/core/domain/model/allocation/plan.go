package allocation

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// DefaultExpiryWarningWindow is how close to expiry a selected unit must be
// before the FEFO planner flags it as near-expiry.
const DefaultExpiryWarningWindow = 7 * 24 * time.Hour

// Candidate pairs an allocatable unit with its derived remaining
// availability: the unit's physical quantity minus the sum of active
// allocations against it. The remaining amount is computed by the
// persistence layer as a query, never read from a stored counter.
type Candidate struct {
	Unit      *inventory.Unit
	Remaining kernel.Quantity
}

// PlanEntry is one (unit, quantity) pair selected by the planner.
// NearExpiry is a display annotation only; it never changes selection order.
type PlanEntry struct {
	Unit       *inventory.Unit
	Quantity   kernel.Quantity
	NearExpiry bool
}

// Plan is the result of a planning pass. It is a pure computation: nothing
// is reserved until the plan is committed.
type Plan struct {
	Strategy     Strategy
	Entries      []PlanEntry
	Demand       kernel.Quantity
	ShortfallQty kernel.Quantity
}

// IsPartial reports whether the candidates could not cover the full demand.
func (p Plan) IsPartial() bool {
	return p.ShortfallQty.IsPositive()
}

// TotalAllocated returns the sum of the planned quantities.
func (p Plan) TotalAllocated() kernel.Quantity {
	total := kernel.ZeroQuantity()
	for _, entry := range p.Entries {
		total = total.Add(entry.Quantity)
	}
	return total
}

// BuildPlan walks the candidates in strategy order, taking
// min(remaining, residual demand) from each until the demand is covered or
// the candidates are exhausted. Zero candidates produce an empty plan whose
// shortfall equals the full demand; the caller must then offer a hold or
// backorder decision.
//
// Under FEFO, selected units expiring within warningWindow of asOf are
// annotated near-expiry.
func BuildPlan(
	demand kernel.Quantity,
	candidates []Candidate,
	strategy Strategy,
	asOf time.Time,
	warningWindow time.Duration,
) Plan {
	plan := Plan{
		Strategy:     strategy,
		Demand:       demand,
		ShortfallQty: demand,
	}

	residual := demand
	for _, candidate := range strategy.OrderCandidates(candidates) {
		if !residual.IsPositive() {
			break
		}
		if !candidate.Unit.IsAllocatable() || !candidate.Remaining.IsPositive() {
			continue
		}

		take := candidate.Remaining.Min(residual)
		plan.Entries = append(plan.Entries, PlanEntry{
			Unit:       candidate.Unit,
			Quantity:   take,
			NearExpiry: strategy == FEFO && isNearExpiry(candidate.Unit, asOf, warningWindow),
		})

		// take ≤ residual by construction, Sub cannot fail.
		residual, _ = residual.Sub(take)
	}

	plan.ShortfallQty = residual
	return plan
}

func isNearExpiry(unit *inventory.Unit, asOf time.Time, warningWindow time.Duration) bool {
	expiry := unit.ExpiryDate()
	if expiry == nil {
		return false
	}
	return !expiry.After(asOf.Add(warningWindow))
}

package allocation

import (
	"fmt"
	"sort"
)

// Strategy selects the order in which candidate units are consumed by the
// planner. Strategies are a closed set of pure ordering functions selected by
// an enum tag; they never touch persistence.
type Strategy int

const (
	// StrategyUnknown catches uninitialized values.
	StrategyUnknown Strategy = iota

	// FIFO allocates from the oldest-received inventory first.
	FIFO

	// FEFO allocates from the soonest-to-expire inventory first,
	// units without an expiry date last.
	FEFO

	// Manual marks operator-placed allocations outside any ordering.
	Manual
)

func strategyStrings() map[Strategy]string {
	return map[Strategy]string{
		StrategyUnknown: "unknown",
		FIFO:            "FIFO",
		FEFO:            "FEFO",
		Manual:          "MANUAL",
	}
}

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	if str, ok := strategyStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StrategyFromString parses a wire name such as "FIFO".
func StrategyFromString(s string) (Strategy, error) {
	for strategy, str := range strategyStrings() {
		if str == s && strategy != StrategyUnknown {
			return strategy, nil
		}
	}
	return StrategyUnknown, fmt.Errorf("%q is not a valid allocation strategy", s)
}

// Validate checks that the strategy is one of the defined tags.
func (s Strategy) Validate() error {
	if s != FIFO && s != FEFO && s != Manual {
		return fmt.Errorf("%d is not a valid allocation strategy", s)
	}
	return nil
}

// OrderCandidates returns a new slice of candidates sorted in the strategy's
// consumption order. Manual performs no reordering.
func (s Strategy) OrderCandidates(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	switch s {
	case FIFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Unit.ReceiptDate().Before(ordered[j].Unit.ReceiptDate())
		})
	case FEFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			ei, ej := ordered[i].Unit.ExpiryDate(), ordered[j].Unit.ExpiryDate()
			switch {
			case ei == nil && ej == nil:
				// No expiry on either side: fall back to receipt order.
				return ordered[i].Unit.ReceiptDate().Before(ordered[j].Unit.ReceiptDate())
			case ei == nil:
				return false
			case ej == nil:
				return true
			default:
				return ei.Before(*ej)
			}
		})
	}

	return ordered
}

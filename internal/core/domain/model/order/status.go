package order

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a sales order.
//
// The happy path runs
//
//	Draft → Confirmed → Allocated → Picking → Picked → Packing → Packed → Shipped → Delivered
//
// with OnHold and Cancelled reachable as diversions from every non-terminal
// state. All legal transitions are declared in a single transition table and
// validated centrally through TransitionTo, never through scattered status
// checks at call sites.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of a newly created order.
	Draft

	// Confirmed means the customer order is accepted and ready for allocation.
	Confirmed

	// Allocated means inventory has been reserved against the order lines.
	Allocated

	// Picking means warehouse staff are collecting the reserved units.
	Picking

	// Picked means all reserved units have been collected and packing may begin.
	Picked

	// Packing means a shipment exists and boxes are being assembled.
	Packing

	// Packed means packing is complete and the shipment awaits manifest.
	Packed

	// Shipped means the shipment has left the building.
	Shipped

	// Delivered is the final state of a fulfilled order.
	Delivered

	// OnHold diverts the order out of the fulfillment flow pending a decision.
	OnHold

	// Cancelled is the final state of an abandoned order.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Draft:     "draft",
		Confirmed: "confirmed",
		Allocated: "allocated",
		Picking:   "picking",
		Picked:    "picked",
		Packing:   "packing",
		Packed:    "packed",
		Shipped:   "shipped",
		Delivered: "delivered",
		OnHold:    "on_hold",
		Cancelled: "cancelled",
	}
}

// transitions is the authoritative legal-transition table.
// Picking → Packing is legal directly: a shipment may be created while the
// pick is still in progress.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:     {Confirmed, Cancelled},
		Confirmed: {Allocated, OnHold, Cancelled},
		Allocated: {Picking, OnHold, Cancelled},
		Picking:   {Picked, Packing, OnHold, Cancelled},
		Picked:    {Packing, OnHold, Cancelled},
		Packing:   {Packed, OnHold, Cancelled},
		Packed:    {Shipped, OnHold, Cancelled},
		Shipped:   {Delivered},
		Delivered: {},
		OnHold:    {Confirmed, Cancelled},
		Cancelled: {},
	}
}

// TransitionError reports an illegal status transition. It carries the
// current state and the full allowed set so callers can decide whether to
// retry after refetching.
type TransitionError struct {
	Current   Status
	Attempted Status
	Allowed   []Status
}

func (e *TransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = s.String()
	}
	return fmt.Sprintf("sales order status transition %s -> %s is not allowed (allowed: %s)",
		e.Current, e.Attempted, strings.Join(allowed, ", "))
}

// String returns the machine-readable name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses the machine-readable status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%q is not a valid sales order status", s)
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return fmt.Errorf("%d is not a valid sales order status", s)
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// AllowedNext returns the set of states reachable from s.
func (s Status) AllowedNext() []Status {
	return transitions()[s]
}

// CanTransitionTo reports whether the transition s → next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition s → next against the transition
// table, returning the new status or a TransitionError.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, &TransitionError{Current: s, Attempted: next, Allowed: s.AllowedNext()}
	}
	return next, nil
}

package shipment

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a shipment.
//
// The happy path runs
//
//	Pending → Packing → Packed → Manifested → Shipped → Delivered
//
// with Exception reachable from every non-terminal state by an external
// trigger. All legal transitions are declared in one transition table and
// validated centrally through TransitionTo.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the shipment exists without boxes.
	Pending

	// Packing means at least one box has been added and contents are being placed.
	Packing

	// Packed means packing is complete; weights and totals are frozen.
	Packed

	// Manifested means the compliance gate has passed and the shipment may
	// advance toward carrier hand-off.
	Manifested

	// Shipped means the shipment has left the building.
	Shipped

	// Delivered is the final state of a fulfilled shipment.
	Delivered

	// Exception diverts the shipment out of the normal flow. Terminal from
	// the pipeline's point of view; recovery is an external concern.
	Exception
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Packing:    "packing",
		Packed:     "packed",
		Manifested: "manifested",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Exception:  "exception",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Packing, Exception},
		Packing:    {Packed, Exception},
		Packed:     {Manifested, Exception},
		Manifested: {Shipped, Exception},
		Shipped:    {Delivered, Exception},
		Delivered:  {},
		Exception:  {},
	}
}

// TransitionError reports an illegal shipment status transition, carrying
// the current state and the allowed set for caller diagnostics.
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
	return fmt.Sprintf("shipment status transition %s -> %s is not allowed (allowed: %s)",
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
	return Unknown, fmt.Errorf("%q is not a valid shipment status", s)
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return fmt.Errorf("%d is not a valid shipment status", s)
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

// CanTransitionTo reports whether s → next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates s → next against the transition table, returning
// the new status or a TransitionError.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, &TransitionError{Current: s, Attempted: next, Allowed: s.AllowedNext()}
	}
	return next, nil
}

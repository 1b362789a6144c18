package inventory

import "fmt"

// UnitStatus is the reservation-lifecycle state of an inventory unit.
// Transitions are monotonic along available → reserved → consumed, with
// blocked reachable from any live state by a quality hold.
type UnitStatus int

const (
	// UnitStatusUnknown catches uninitialized values.
	UnitStatusUnknown UnitStatus = iota

	// Available units are candidates for allocation.
	Available

	// Reserved units carry at least one active allocation.
	Reserved

	// Consumed units have physically left the building. Terminal.
	Consumed

	// Blocked units are under quality hold and excluded from allocation.
	Blocked
)

func unitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitStatusUnknown: "unknown",
		Available:         "available",
		Reserved:          "reserved",
		Consumed:          "consumed",
		Blocked:           "blocked",
	}
}

func unitTransitions() map[UnitStatus][]UnitStatus {
	return map[UnitStatus][]UnitStatus{
		Available: {Reserved, Blocked},
		Reserved:  {Available, Consumed, Blocked},
		Consumed:  {},
		Blocked:   {Available},
	}
}

// String returns the machine-readable name of the status.
func (s UnitStatus) String() string {
	if str, ok := unitStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// UnitStatusFromString parses the machine-readable name of a status.
func UnitStatusFromString(s string) (UnitStatus, error) {
	for status, str := range unitStatusStrings() {
		if str == s && status != UnitStatusUnknown {
			return status, nil
		}
	}
	return UnitStatusUnknown, fmt.Errorf("%q is not a valid inventory unit status", s)
}

// Validate checks that the status is one of the defined lifecycle states.
func (s UnitStatus) Validate() error {
	if _, ok := unitTransitions()[s]; !ok {
		return fmt.Errorf("%d is not a valid inventory unit status", s)
	}
	return nil
}

// CanTransitionTo reports whether s → next is legal.
func (s UnitStatus) CanTransitionTo(next UnitStatus) bool {
	for _, allowed := range unitTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates s → next, returning the new status or an error
// naming both states.
func (s UnitStatus) TransitionTo(next UnitStatus) (UnitStatus, error) {
	if !s.CanTransitionTo(next) {
		return UnitStatusUnknown, fmt.Errorf(
			"inventory unit status transition %s -> %s is not allowed", s, next)
	}
	return next, nil
}

// Package inventory models the license plate: a uniquely identified,
// trackable quantity of one product at one location. Availability for
// allocation is never stored on the unit; it is derived from the unit's
// physical quantity minus the sum of active allocations against it.
package inventory

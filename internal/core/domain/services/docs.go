// Package services contains stateless domain services that operate across
// aggregates without belonging to any of them.
package services

// Package order contains the SalesOrder aggregate and its lifecycle state
// machine. The fulfillment pipeline does not own order capture; it reads
// orders and advances their status as allocation, packing, and shipping
// progress. All legal status transitions live in one transition table in
// status.go.
package order

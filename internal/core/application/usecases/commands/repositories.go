// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SalesOrderRepoFactory provides access to the sales order repository within a transaction.
	SalesOrderRepoFactory interface {
		SalesOrderRepository() ports.SalesOrderRepository
	}

	// InventoryRepoFactory provides access to the inventory unit repository within a transaction.
	InventoryRepoFactory interface {
		InventoryUnitRepository() ports.InventoryUnitRepository
	}

	// AllocationRepoFactory provides access to the allocation repository within a transaction.
	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// AllocationUoW manages transactions for allocation commits: the row-locked
	// availability re-check, the reservation write and the order status advance
	// must land atomically.
	AllocationUoW interface {
		TxManager
		SalesOrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
	}

	// AllocationUoWFactory creates new allocation unit of work instances.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// ReleaseUoW manages transactions for releases, undos and overrides.
	// The shipment repository is consulted to detect consumption (box
	// contents referencing the reservation).
	ReleaseUoW interface {
		TxManager
		SalesOrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
		ShipmentRepoFactory
	}

	// ReleaseUoWFactory creates new release unit of work instances.
	ReleaseUoWFactory interface {
		Create() ReleaseUoW
	}

	// ShipmentUoW manages transactions for shipment lifecycle operations
	// that touch only the shipment and its sales order.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		SalesOrderRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// PackingUoW manages transactions for operations that reconcile the
	// shipment against the reservation ledger and the inventory: content
	// additions, packing completion and carrier hand-off.
	PackingUoW interface {
		TxManager
		ShipmentRepoFactory
		SalesOrderRepoFactory
		AllocationRepoFactory
		InventoryRepoFactory
	}

	// PackingUoWFactory creates new packing unit of work instances.
	PackingUoWFactory interface {
		Create() PackingUoW
	}
)

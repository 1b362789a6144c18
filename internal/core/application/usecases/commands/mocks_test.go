package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSalesOrderRepository struct{ mock.Mock }

func (m *MockSalesOrderRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*order.SalesOrder, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) GetByLineID(ctx context.Context, orgID, lineID kernel.UUID) (*order.SalesOrder, error) {
	args := m.Called(ctx, orgID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Update(ctx context.Context, aggregate *order.SalesOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockInventoryUnitRepository struct{ mock.Mock }

func (m *MockInventoryUnitRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*inventory.Unit, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Unit), args.Error(1)
}

func (m *MockInventoryUnitRepository) GetForUpdate(ctx context.Context, orgID, id kernel.UUID) (*inventory.Unit, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Unit), args.Error(1)
}

func (m *MockInventoryUnitRepository) AvailableCandidates(ctx context.Context, orgID, productID kernel.UUID) ([]allocation.Candidate, error) {
	args := m.Called(ctx, orgID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]allocation.Candidate), args.Error(1)
}

func (m *MockInventoryUnitRepository) Update(ctx context.Context, unit *inventory.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, aggregate *allocation.Allocation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAllocationRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) Update(ctx context.Context, aggregate *allocation.Allocation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAllocationRepository) ActiveByLine(ctx context.Context, lineID kernel.UUID) ([]*allocation.Allocation, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) ActiveByUnit(ctx context.Context, unitID kernel.UUID) ([]*allocation.Allocation, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) ActiveForOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) ActiveForCancelledOrders(ctx context.Context) ([]ports.CancelledOrderAllocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.CancelledOrderAllocation), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetBySalesOrder(ctx context.Context, orgID, salesOrderID kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, orgID, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByBox(ctx context.Context, orgID, boxID kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, orgID, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) NextShipmentNumber(ctx context.Context, orgID kernel.UUID, year int) (string, error) {
	args := m.Called(ctx, orgID, year)
	return args.String(0), args.Error(1)
}

func (m *MockShipmentRepository) PackedQuantityForLineUnit(ctx context.Context, lineID, unitID kernel.UUID) (kernel.Quantity, error) {
	args := m.Called(ctx, lineID, unitID)
	return args.Get(0).(kernel.Quantity), args.Error(1)
}

// MockUoW satisfies every unit-of-work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SalesOrderRepository() ports.SalesOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SalesOrderRepository)
}

func (m *MockUoW) InventoryUnitRepository() ports.InventoryUnitRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryUnitRepository)
}

func (m *MockUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

type MockReleaseUoWFactory struct{ mock.Mock }

func (m *MockReleaseUoWFactory) Create() commands.ReleaseUoW {
	args := m.Called()
	return args.Get(0).(commands.ReleaseUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockPackingUoWFactory struct{ mock.Mock }

func (m *MockPackingUoWFactory) Create() commands.PackingUoW {
	args := m.Called()
	return args.Get(0).(commands.PackingUoW)
}

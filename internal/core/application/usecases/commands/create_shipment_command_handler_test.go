package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pickedOrder(t *testing.T, orgID kernel.UUID) *order.SalesOrder {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), mustQty(t, "5"))
	require.NoError(t, err)
	salesOrder, err := order.RestoreSalesOrder(
		kernel.NewUUID(), orgID, "SO-2026-00007", kernel.NewUUID(),
		order.Picked, []*order.Line{line},
	)
	require.NoError(t, err)
	return salesOrder
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	salesOrder := pickedOrder(t, orgID)

	orderRepo := new(MockSalesOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SalesOrderRepository").Return(orderRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	orderRepo.On("Get", ctx, orgID, salesOrder.ID()).Return(salesOrder, nil).Once()
	shipmentRepo.On("GetBySalesOrder", ctx, orgID, salesOrder.ID()).
		Return(nil, errs.NewObjectNotFoundError("shipment", salesOrder.ID())).Once()
	shipmentRepo.On("NextShipmentNumber", ctx, orgID, time.Now().Year()).
		Return("SH-2026-00042", nil).Once()

	var created *shipment.Shipment
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*shipment.Shipment)
		}).
		Return(nil).Once()
	orderRepo.On("Update", ctx, salesOrder).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), orgID, salesOrder.ID())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, created)
	require.Equal(t, "SH-2026-00042", created.Number())
	require.Equal(t, shipment.Pending, created.Status())
	require.Equal(t, order.Packing, salesOrder.Status())
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_RetriesOnDuplicateNumber(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	salesOrder := pickedOrder(t, orgID)

	orderRepo := new(MockSalesOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("SalesOrderRepository").Return(orderRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	year := time.Now().Year()
	orderRepo.On("Get", ctx, orgID, salesOrder.ID()).Return(salesOrder, nil).Twice()
	shipmentRepo.On("GetBySalesOrder", ctx, orgID, salesOrder.ID()).
		Return(nil, errs.NewObjectNotFoundError("shipment", salesOrder.ID())).Twice()
	shipmentRepo.On("NextShipmentNumber", ctx, orgID, year).
		Return("SH-2026-00042", nil).Once()
	shipmentRepo.On("NextShipmentNumber", ctx, orgID, year).
		Return("SH-2026-00043", nil).Once()

	// a concurrent winner took 00042; the insert trips the unique constraint
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
		Return(ports.ErrDuplicateShipmentNumber).Once()

	var created *shipment.Shipment
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*shipment.Shipment)
		}).
		Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.SalesOrder")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateShipmentCommandHandler(factory)

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), orgID, salesOrder.ID())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, created)
	require.Equal(t, "SH-2026-00043", created.Number())
	shipmentRepo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_RefusesSecondShipment(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	salesOrder := pickedOrder(t, orgID)

	existing, err := shipment.NewShipment(kernel.NewUUID(), orgID, "SH-2026-00001", salesOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockSalesOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SalesOrderRepository").Return(orderRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	orderRepo.On("Get", ctx, orgID, salesOrder.ID()).Return(salesOrder, nil).Once()
	shipmentRepo.On("GetBySalesOrder", ctx, orgID, salesOrder.ID()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), orgID, salesOrder.ID())
	require.NoError(t, err)

	require.ErrorIs(t, h.Handle(ctx, cmd), ports.ErrShipmentExistsForOrder)
	require.Equal(t, order.Picked, salesOrder.Status())
}

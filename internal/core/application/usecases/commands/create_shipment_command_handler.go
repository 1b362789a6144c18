package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// shipmentNumberRetries bounds the recompute-and-retry loop on sequence
// collisions under concurrent creation.
const shipmentNumberRetries = 3

// CreateShipmentCommandHandler opens the packing phase for a sales order.
//
// The shipment number is computed from the maximum existing one for the
// tenant and year inside the same transaction that inserts the row; a unique
// constraint turns a concurrent winner into ports.ErrDuplicateShipmentNumber
// and the whole attempt is retried with a fresh number. Gaps from failed
// transactions are acceptable, duplicates are not.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      func() time.Time
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the creation command. On success the shipment exists in
// pending status and the order has advanced to packing.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < shipmentNumberRetries; attempt++ {
		err = h.handleOnce(ctx, cmd)
		if !errors.Is(err, ports.ErrDuplicateShipmentNumber) {
			return err
		}
	}
	return err
}

func (h *CreateShipmentCommandHandler) handleOnce(ctx context.Context, cmd CreateShipmentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.SalesOrderRepository()
	salesOrder, err := orderRepo.Get(ctx, cmd.OrgID(), cmd.SalesOrderID())
	if err != nil {
		return err
	}

	shipmentRepo := uow.ShipmentRepository()
	if _, err = shipmentRepo.GetBySalesOrder(ctx, cmd.OrgID(), cmd.SalesOrderID()); err == nil {
		return ports.ErrShipmentExistsForOrder
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	number, err := shipmentRepo.NextShipmentNumber(ctx, cmd.OrgID(), h.clock().Year())
	if err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), cmd.OrgID(), number, cmd.SalesOrderID())
	if err != nil {
		return err
	}
	if err = shipmentRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = salesOrder.StartPacking(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
)

// MarkDeliveredCommandHandler closes the lifecycle of a shipped shipment
// and its order.
type MarkDeliveredCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewMarkDeliveredCommandHandler creates a handler for delivery
// confirmations.
func NewMarkDeliveredCommandHandler(uowFactory ShipmentUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.OrgID(), cmd.ShipmentID())
	if err != nil {
		return err
	}
	if err = aggregate.MarkDelivered(); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderRepo := uow.SalesOrderRepository()
	salesOrder, err := orderRepo.Get(ctx, cmd.OrgID(), aggregate.SalesOrderID())
	if err != nil {
		return err
	}
	if err = salesOrder.MarkDelivered(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

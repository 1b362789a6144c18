package commands

import (
	"context"
)

// AddBoxCommandHandler appends an empty box to a shipment. The first box
// moves the shipment from pending to packing; the box number comes from the
// shipment's monotonic sequence and is never reused.
type AddBoxCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewAddBoxCommandHandler creates a handler for box additions.
func NewAddBoxCommandHandler(uowFactory ShipmentUoWFactory) AddBoxCommandHandler {
	return AddBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-box command.
func (h *AddBoxCommandHandler) Handle(ctx context.Context, cmd AddBoxCommand) error {
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

	if _, err = aggregate.AddBox(cmd.BoxID()); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

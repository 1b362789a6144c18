package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"
)

// UpdateBoxCommandHandler applies weight and dimension changes to one box.
// Measurements freeze once the shipment is packed; the configured limits are
// injected at construction so the whole service validates against one set.
type UpdateBoxCommandHandler struct {
	uowFactory ShipmentUoWFactory
	limits     shipment.BoxLimits
}

// NewUpdateBoxCommandHandler creates a handler for box updates enforcing
// the given limits.
func NewUpdateBoxCommandHandler(uowFactory ShipmentUoWFactory, limits shipment.BoxLimits) UpdateBoxCommandHandler {
	return UpdateBoxCommandHandler{
		uowFactory: uowFactory,
		limits:     limits,
	}
}

// Handle processes the update-box command.
func (h *UpdateBoxCommandHandler) Handle(ctx context.Context, cmd UpdateBoxCommand) error {
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
	aggregate, err := shipmentRepo.GetByBox(ctx, cmd.OrgID(), cmd.BoxID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateBox(cmd.BoxID(), cmd.Patch(), h.limits); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
)

// SetBoxSSCCCommandHandler assigns a shipping identifier to one box.
// Identifiers can be set or replaced up to the manifest gate and freeze
// afterwards.
type SetBoxSSCCCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewSetBoxSSCCCommandHandler creates a handler for SSCC assignments.
func NewSetBoxSSCCCommandHandler(uowFactory ShipmentUoWFactory) SetBoxSSCCCommandHandler {
	return SetBoxSSCCCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the SSCC assignment command.
func (h *SetBoxSSCCCommandHandler) Handle(ctx context.Context, cmd SetBoxSSCCCommand) error {
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

	if err = aggregate.SetBoxSSCC(cmd.BoxID(), cmd.SSCC()); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
)

// MarkShippedCommandHandler records the carrier hand-off of a manifested
// shipment. This is where physical consumption happens: every active
// reservation of the order is consumed from its unit and released with
// reason consumed; a partially consumed unit keeps its identity with the
// reduced quantity and returns to the available pool.
type MarkShippedCommandHandler struct {
	uowFactory PackingUoWFactory
	clock      func() time.Time
}

// NewMarkShippedCommandHandler creates a handler for carrier hand-off.
func NewMarkShippedCommandHandler(uowFactory PackingUoWFactory) MarkShippedCommandHandler {
	return MarkShippedCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the hand-off command.
func (h *MarkShippedCommandHandler) Handle(ctx context.Context, cmd MarkShippedCommand) error {
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

	now := h.clock()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.OrgID(), cmd.ShipmentID())
	if err != nil {
		return err
	}
	if err = aggregate.MarkShipped(now); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	allocationRepo := uow.AllocationRepository()
	unitRepo := uow.InventoryUnitRepository()
	reservations, err := allocationRepo.ActiveForOrder(ctx, aggregate.SalesOrderID())
	if err != nil {
		return err
	}
	for _, reservation := range reservations {
		unit, err := unitRepo.GetForUpdate(ctx, cmd.OrgID(), reservation.InventoryUnitID())
		if err != nil {
			return err
		}
		if err = unit.ConsumeQuantity(reservation.Quantity()); err != nil {
			return err
		}

		reservation.Release(now, allocation.ReasonConsumed)
		if err = allocationRepo.Update(ctx, reservation); err != nil {
			return err
		}

		if err = unitRepo.Update(ctx, unit); err != nil {
			return err
		}
		if err = releaseUnitIfIdle(ctx, allocationRepo, unitRepo, unit); err != nil {
			return err
		}
	}

	orderRepo := uow.SalesOrderRepository()
	salesOrder, err := orderRepo.Get(ctx, cmd.OrgID(), aggregate.SalesOrderID())
	if err != nil {
		return err
	}
	if err = salesOrder.MarkShipped(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

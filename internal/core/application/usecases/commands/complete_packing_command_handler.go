package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// CompletePackingResult summarizes a successfully packed shipment.
type CompletePackingResult struct {
	Status      shipment.Status
	TotalWeight string
	TotalBoxes  int
	PackedAt    time.Time
}

// CompletePackingCommandHandler closes the packing phase of a shipment.
//
// The demand set is rebuilt from the active allocations of the order inside
// the same transaction, so a concurrent allocation change cannot slip a
// shortfall past the gate. Weight and completeness failures enumerate every
// offender, never just the first.
type CompletePackingCommandHandler struct {
	uowFactory PackingUoWFactory
	clock      func() time.Time
}

// NewCompletePackingCommandHandler creates a handler for packing completion.
func NewCompletePackingCommandHandler(uowFactory PackingUoWFactory) CompletePackingCommandHandler {
	return CompletePackingCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the completion command. On success the shipment and the
// order are both packed.
func (h *CompletePackingCommandHandler) Handle(
	ctx context.Context,
	cmd CompletePackingCommand,
) (CompletePackingResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompletePackingResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompletePackingResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.OrgID(), cmd.ShipmentID())
	if err != nil {
		return CompletePackingResult{}, err
	}

	reservations, err := uow.AllocationRepository().ActiveForOrder(ctx, aggregate.SalesOrderID())
	if err != nil {
		return CompletePackingResult{}, err
	}
	// Several reservations may target the same (line, unit) pair; the gate
	// compares packed amounts against their sum, not each row separately.
	var demands []shipment.Demand
	index := make(map[[2]kernel.UUID]int)
	for _, reservation := range reservations {
		key := [2]kernel.UUID{reservation.SalesOrderLineID(), reservation.InventoryUnitID()}
		if i, ok := index[key]; ok {
			demands[i].Quantity = demands[i].Quantity.Add(reservation.Quantity())
			continue
		}
		index[key] = len(demands)
		demands = append(demands, shipment.Demand{
			SalesOrderLineID: reservation.SalesOrderLineID(),
			InventoryUnitID:  reservation.InventoryUnitID(),
			Quantity:         reservation.Quantity(),
		})
	}

	now := h.clock()
	if err = aggregate.CompletePacking(now, cmd.PackedBy(), demands); err != nil {
		return CompletePackingResult{}, err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return CompletePackingResult{}, err
	}

	orderRepo := uow.SalesOrderRepository()
	salesOrder, err := orderRepo.Get(ctx, cmd.OrgID(), aggregate.SalesOrderID())
	if err != nil {
		return CompletePackingResult{}, err
	}
	if err = salesOrder.MarkPacked(); err != nil {
		return CompletePackingResult{}, err
	}
	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return CompletePackingResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompletePackingResult{}, err
	}

	return CompletePackingResult{
		Status:      aggregate.Status(),
		TotalWeight: aggregate.TotalWeight().String(),
		TotalBoxes:  aggregate.TotalBoxes(),
		PackedAt:    now,
	}, nil
}

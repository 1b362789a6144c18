package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReleaseAllocationsCommandHandler soft-releases the active reservations of
// a line or an order.
//
// Release is idempotent: rows already released keep their original timestamp
// and reason and availability is never double-credited. When any targeted
// reservation already has box contents in a live shipment the whole release
// is refused with allocation.AlreadyConsumedError, unless Force cascades the
// contents away first.
type ReleaseAllocationsCommandHandler struct {
	uowFactory ReleaseUoWFactory
	clock      func() time.Time
}

// NewReleaseAllocationsCommandHandler creates a handler for reservation
// releases.
func NewReleaseAllocationsCommandHandler(uowFactory ReleaseUoWFactory) ReleaseAllocationsCommandHandler {
	return ReleaseAllocationsCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the release command.
func (h *ReleaseAllocationsCommandHandler) Handle(ctx context.Context, cmd ReleaseAllocationsCommand) error {
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

	salesOrderID, reservations, err := h.resolveTarget(ctx, uow, cmd)
	if err != nil {
		return err
	}

	consumed, err := consumedReservations(ctx, uow, reservations)
	if err != nil {
		return err
	}
	if len(consumed) > 0 {
		if !cmd.Force() {
			return &allocation.AlreadyConsumedError{AllocationIDs: consumed}
		}
		if err = h.cascadeContents(ctx, uow, cmd.OrgID(), salesOrderID, reservations); err != nil {
			return err
		}
	}

	now := h.clock()
	allocationRepo := uow.AllocationRepository()
	touchedUnits := make(map[kernel.UUID]struct{})
	for _, reservation := range reservations {
		reservation.Release(now, cmd.Reason())
		if err = allocationRepo.Update(ctx, reservation); err != nil {
			return err
		}
		touchedUnits[reservation.InventoryUnitID()] = struct{}{}
	}

	unitRepo := uow.InventoryUnitRepository()
	for unitID := range touchedUnits {
		unit, err := unitRepo.GetForUpdate(ctx, cmd.OrgID(), unitID)
		if err != nil {
			return err
		}
		if err = releaseUnitIfIdle(ctx, allocationRepo, unitRepo, unit); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// resolveTarget loads the targeted reservations together with the owning
// sales order ID.
func (h *ReleaseAllocationsCommandHandler) resolveTarget(
	ctx context.Context,
	uow ReleaseUoW,
	cmd ReleaseAllocationsCommand,
) (kernel.UUID, []*allocation.Allocation, error) {
	allocationRepo := uow.AllocationRepository()

	if lineID := cmd.SalesOrderLineID(); lineID != nil {
		salesOrder, err := uow.SalesOrderRepository().GetByLineID(ctx, cmd.OrgID(), *lineID)
		if err != nil {
			return kernel.UUID{}, nil, err
		}
		reservations, err := allocationRepo.ActiveByLine(ctx, *lineID)
		if err != nil {
			return kernel.UUID{}, nil, err
		}
		return salesOrder.ID(), reservations, nil
	}

	orderID := *cmd.SalesOrderID()
	if _, err := uow.SalesOrderRepository().Get(ctx, cmd.OrgID(), orderID); err != nil {
		return kernel.UUID{}, nil, err
	}
	reservations, err := allocationRepo.ActiveForOrder(ctx, orderID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return orderID, reservations, nil
}

// consumedReservations returns the IDs of reservations whose quantities are
// already packed into boxes.
func consumedReservations(
	ctx context.Context,
	uow ReleaseUoW,
	reservations []*allocation.Allocation,
) ([]kernel.UUID, error) {
	shipmentRepo := uow.ShipmentRepository()

	var consumed []kernel.UUID
	for _, reservation := range reservations {
		packed, err := shipmentRepo.PackedQuantityForLineUnit(
			ctx, reservation.SalesOrderLineID(), reservation.InventoryUnitID())
		if err != nil {
			return nil, err
		}
		if packed.IsPositive() {
			consumed = append(consumed, reservation.ID())
		}
	}
	return consumed, nil
}

// cascadeContents removes every box content referencing the targeted
// reservations from the order's shipment.
func (h *ReleaseAllocationsCommandHandler) cascadeContents(
	ctx context.Context,
	uow ReleaseUoW,
	orgID, salesOrderID kernel.UUID,
	reservations []*allocation.Allocation,
) error {
	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.GetBySalesOrder(ctx, orgID, salesOrderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	targeted := make(map[kernel.UUID]map[kernel.UUID]struct{})
	for _, reservation := range reservations {
		byUnit, ok := targeted[reservation.SalesOrderLineID()]
		if !ok {
			byUnit = make(map[kernel.UUID]struct{})
			targeted[reservation.SalesOrderLineID()] = byUnit
		}
		byUnit[reservation.InventoryUnitID()] = struct{}{}
	}

	for _, box := range aggregate.Boxes() {
		var doomed []kernel.UUID
		for _, content := range box.Contents() {
			if byUnit, ok := targeted[content.SalesOrderLineID()]; ok {
				if _, ok := byUnit[content.InventoryUnitID()]; ok {
					doomed = append(doomed, content.ID())
				}
			}
		}
		for _, contentID := range doomed {
			if err = aggregate.RemoveContent(box.ID(), contentID); err != nil {
				return err
			}
		}
	}

	return shipmentRepo.Update(ctx, aggregate)
}

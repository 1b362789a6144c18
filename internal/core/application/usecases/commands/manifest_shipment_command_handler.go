package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
)

// ErrManifestNotPermitted is returned when the caller's role may not pass
// the manifest gate.
var ErrManifestNotPermitted = errors.New("caller role is not permitted to manifest shipments")

// manifestRoles are the roles admitted through the manifest gate.
func manifestRoles() map[string]struct{} {
	return map[string]struct{}{
		"warehouse": {},
		"manager":   {},
		"admin":     {},
	}
}

// ManifestBoxResult reports one box's validation outcome in the manifest
// response.
type ManifestBoxResult struct {
	BoxNumber int
	SSCC      string
	Validated bool
}

// ManifestShipmentResult summarizes a successfully manifested shipment.
type ManifestShipmentResult struct {
	ShipmentNumber string
	Status         shipment.Status
	BoxCount       int
	ManifestedAt   time.Time
	Boxes          []ManifestBoxResult
}

// ManifestShipmentCommandHandler passes a packed shipment through the
// compliance gate.
//
// Failure modes are checked in a fixed order, each distinct: role, tenancy,
// status, box presence, SSCC completeness. The SSCC check is atomic: either
// every box carries a valid identifier and the shipment advances, or none
// do and the error lists every offending box.
type ManifestShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      func() time.Time
}

// NewManifestShipmentCommandHandler creates a handler for the manifest gate.
func NewManifestShipmentCommandHandler(uowFactory ShipmentUoWFactory) ManifestShipmentCommandHandler {
	return ManifestShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the manifest command.
func (h *ManifestShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd ManifestShipmentCommand,
) (ManifestShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ManifestShipmentResult{}, err
	}
	if _, ok := manifestRoles()[cmd.CallerRole()]; !ok {
		return ManifestShipmentResult{}, ErrManifestNotPermitted
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ManifestShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.OrgID(), cmd.ShipmentID())
	if err != nil {
		return ManifestShipmentResult{}, err
	}

	manifested, err := aggregate.Manifest(h.clock())
	if err != nil {
		return ManifestShipmentResult{}, err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return ManifestShipmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ManifestShipmentResult{}, err
	}

	boxes := make([]ManifestBoxResult, 0, len(aggregate.Boxes()))
	for _, box := range aggregate.Boxes() {
		boxes = append(boxes, ManifestBoxResult{
			BoxNumber: box.Number(),
			SSCC:      box.SSCC().String(),
			Validated: true,
		})
	}

	return ManifestShipmentResult{
		ShipmentNumber: aggregate.Number(),
		Status:         aggregate.Status(),
		BoxCount:       manifested.TotalBoxes,
		ManifestedAt:   manifested.ManifestedAt,
		Boxes:          boxes,
	}, nil
}

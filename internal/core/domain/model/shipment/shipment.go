package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Demand is one allocated (line, unit) quantity that packing must cover
// before it can be completed.
type Demand struct {
	SalesOrderLineID kernel.UUID
	InventoryUnitID  kernel.UUID
	Quantity         kernel.Quantity
}

// ManifestResult is the summary produced when a shipment is manifested.
type ManifestResult struct {
	ManifestedAt time.Time
	TotalBoxes   int
	TotalWeight  kernel.Quantity
}

// Shipment is the aggregate root for the packing and dispatch of one sales
// order. Boxes and their contents live inside the aggregate; box numbers are
// issued from a monotonic per-shipment sequence and never reused.
//
// Invariants:
//   - orgID is immutable and scopes every box and content row
//   - status transitions follow the central transition table
//   - boxSeq only grows, so deleting box #2 of 3 makes the next box #4
//   - weight and dimensions are frozen once the shipment is Packed
type Shipment struct {
	id           kernel.UUID
	orgID        kernel.UUID
	number       string
	salesOrderID kernel.UUID
	status       Status
	boxSeq       int
	packedAt     *time.Time
	packedBy     *kernel.UUID
	manifestedAt *time.Time
	shippedAt    *time.Time
	boxes        []*Box

	isConstructed bool
}

// NewShipment creates a new shipment in Pending status with no boxes.
func NewShipment(id, orgID kernel.UUID, number string, salesOrderID kernel.UUID) (*Shipment, error) {
	if err := errors.Join(id.Validate(), orgID.Validate(), salesOrderID.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("shipment number")
	}

	return &Shipment{
		id:            id,
		orgID:         orgID,
		number:        number,
		salesOrderID:  salesOrderID,
		status:        Pending,
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence. Used exclusively
// by repository adapters.
func RestoreShipment(
	id, orgID kernel.UUID,
	number string,
	salesOrderID kernel.UUID,
	status Status,
	boxSeq int,
	packedAt *time.Time,
	packedBy *kernel.UUID,
	manifestedAt *time.Time,
	shippedAt *time.Time,
	boxes []*Box,
) (*Shipment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	restored, err := NewShipment(id, orgID, number, salesOrderID)
	if err != nil {
		return nil, err
	}
	for _, box := range boxes {
		if err := box.Validate(); err != nil {
			return nil, err
		}
		if box.boxNumber > boxSeq {
			return nil, errs.NewValueIsInvalidError("boxSeq is below an existing box number")
		}
	}
	restored.status = status
	restored.boxSeq = boxSeq
	restored.packedAt = packedAt
	restored.packedBy = packedBy
	restored.manifestedAt = manifestedAt
	restored.shippedAt = shippedAt
	restored.boxes = boxes

	return restored, nil
}

// RestoreBox reconstructs a box with its stored number and contents. Used
// exclusively by repository adapters.
func RestoreBox(
	id kernel.UUID,
	boxNumber int,
	sscc *SSCC,
	weight, length, width, height *kernel.Quantity,
	contents []*Content,
) (*Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if boxNumber < 1 {
		return nil, errs.NewValueIsInvalidError("boxNumber must be greater than 0")
	}
	if sscc != nil {
		if err := sscc.Validate(); err != nil {
			return nil, err
		}
	}

	return &Box{
		id:            id,
		boxNumber:     boxNumber,
		sscc:          sscc,
		weight:        weight,
		length:        length,
		width:         width,
		height:        height,
		contents:      contents,
		isConstructed: true,
	}, nil
}

// RestoreContent reconstructs a box content row. Used exclusively by
// repository adapters.
func RestoreContent(id, salesOrderLineID, inventoryUnitID kernel.UUID, quantity kernel.Quantity) (*Content, error) {
	if err := errors.Join(id.Validate(), salesOrderLineID.Validate(), inventoryUnitID.Validate()); err != nil {
		return nil, err
	}
	if !quantity.IsPositive() {
		return nil, errs.NewValueIsInvalidError("quantity must be greater than 0")
	}

	return &Content{
		id:               id,
		salesOrderLineID: salesOrderLineID,
		inventoryUnitID:  inventoryUnitID,
		quantity:         quantity,
	}, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrgID returns the owning tenant.
func (s *Shipment) OrgID() kernel.UUID {
	return s.orgID
}

// Number returns the per-tenant sequential shipment number.
func (s *Shipment) Number() string {
	return s.number
}

// SalesOrderID returns the order being fulfilled.
func (s *Shipment) SalesOrderID() kernel.UUID {
	return s.salesOrderID
}

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status {
	return s.status
}

// BoxSeq returns the highest box number ever issued for this shipment.
func (s *Shipment) BoxSeq() int {
	return s.boxSeq
}

// PackedAt returns when packing was completed, nil before that.
func (s *Shipment) PackedAt() *time.Time {
	return s.packedAt
}

// PackedBy returns who completed packing, nil before that.
func (s *Shipment) PackedBy() *kernel.UUID {
	return s.packedBy
}

// ManifestedAt returns when the shipment was manifested, nil before that.
func (s *Shipment) ManifestedAt() *time.Time {
	return s.manifestedAt
}

// ShippedAt returns when the shipment was handed to the carrier, nil before that.
func (s *Shipment) ShippedAt() *time.Time {
	return s.shippedAt
}

// Boxes returns the boxes of the shipment.
func (s *Shipment) Boxes() []*Box {
	return s.boxes
}

// Box returns the box with the given identifier, or ErrBoxNotFound.
func (s *Shipment) Box(boxID kernel.UUID) (*Box, error) {
	for _, box := range s.boxes {
		if box.id.IsEqual(boxID) {
			return box, nil
		}
	}
	return nil, ErrBoxNotFound
}

// TotalBoxes returns the current number of boxes.
func (s *Shipment) TotalBoxes() int {
	return len(s.boxes)
}

// TotalWeight sums the recorded weights of all boxes. Boxes without a
// recorded weight contribute nothing.
func (s *Shipment) TotalWeight() kernel.Quantity {
	total := kernel.ZeroQuantity()
	for _, box := range s.boxes {
		if box.weight != nil {
			total = total.Add(*box.weight)
		}
	}
	return total
}

// PackedQuantity returns the quantity packed across all boxes for the given
// (line, unit) pair.
func (s *Shipment) PackedQuantity(lineID, unitID kernel.UUID) kernel.Quantity {
	total := kernel.ZeroQuantity()
	for _, box := range s.boxes {
		total = total.Add(box.PackedQuantity(lineID, unitID))
	}
	return total
}

// AddBox appends a new empty box. The first box moves the shipment from
// Pending to Packing. The box number comes from the monotonic sequence, so
// numbers of deleted boxes are never reissued.
func (s *Shipment) AddBox(boxID kernel.UUID) (*Box, error) {
	if err := boxID.Validate(); err != nil {
		return nil, err
	}
	if s.status == Pending {
		if err := s.transitionTo(Packing); err != nil {
			return nil, err
		}
	}
	if s.status != Packing {
		return nil, &TransitionError{Current: s.status, Attempted: Packing, Allowed: s.status.AllowedNext()}
	}

	s.boxSeq++
	box := &Box{
		id:            boxID,
		boxNumber:     s.boxSeq,
		isConstructed: true,
	}
	s.boxes = append(s.boxes, box)

	return box, nil
}

// RemoveBox deletes a box and its contents. Only legal while the shipment is
// still Packing; the box's number is retired, not reissued.
func (s *Shipment) RemoveBox(boxID kernel.UUID) error {
	if s.status != Packing {
		return &ModifyAfterPackedError{Status: s.status}
	}
	for i, box := range s.boxes {
		if box.id.IsEqual(boxID) {
			s.boxes = append(s.boxes[:i], s.boxes[i+1:]...)
			return nil
		}
	}
	return ErrBoxNotFound
}

// UpdateBox changes the weight and dimensions of a box within the given
// limits. Frozen once the shipment is Packed.
func (s *Shipment) UpdateBox(boxID kernel.UUID, patch BoxPatch, limits BoxLimits) error {
	if s.status != Pending && s.status != Packing {
		return &ModifyAfterPackedError{Status: s.status}
	}
	box, err := s.Box(boxID)
	if err != nil {
		return err
	}
	return box.applyPatch(patch, limits)
}

// SetBoxSSCC assigns a shipping identifier to a box. Allowed up to and
// including the Packed status; identifiers are frozen once manifested.
func (s *Shipment) SetBoxSSCC(boxID kernel.UUID, sscc SSCC) error {
	if err := sscc.Validate(); err != nil {
		return err
	}
	switch s.status {
	case Pending, Packing, Packed:
	default:
		return &ModifyAfterPackedError{Status: s.status}
	}
	box, err := s.Box(boxID)
	if err != nil {
		return err
	}
	box.sscc = &sscc
	return nil
}

// AddContent places an allocated quantity of one inventory unit into a box.
// Only legal while the shipment is Packing. Whether the quantity stays within
// the active allocation is checked by the caller against the reservation
// ledger.
func (s *Shipment) AddContent(
	boxID, contentID, salesOrderLineID, inventoryUnitID kernel.UUID,
	quantity kernel.Quantity,
) (*Content, error) {
	if s.status != Packing {
		return nil, &ModifyAfterPackedError{Status: s.status}
	}
	box, err := s.Box(boxID)
	if err != nil {
		return nil, err
	}
	content, err := RestoreContent(contentID, salesOrderLineID, inventoryUnitID, quantity)
	if err != nil {
		return nil, err
	}
	box.contents = append(box.contents, content)

	return content, nil
}

// RemoveContent takes a content row back out of a box. Only legal while the
// shipment is Packing.
func (s *Shipment) RemoveContent(boxID, contentID kernel.UUID) error {
	if s.status != Packing {
		return &ModifyAfterPackedError{Status: s.status}
	}
	box, err := s.Box(boxID)
	if err != nil {
		return err
	}
	for i, content := range box.contents {
		if content.id.IsEqual(contentID) {
			box.contents = append(box.contents[:i], box.contents[i+1:]...)
			return nil
		}
	}
	return ErrContentNotFound
}

// CompletePacking closes the packing phase. Every box must have a recorded
// weight and every demand must be fully packed; each check reports all
// offenders at once so the operator fixes everything in one pass.
func (s *Shipment) CompletePacking(now time.Time, packedBy kernel.UUID, demands []Demand) error {
	if err := packedBy.Validate(); err != nil {
		return err
	}
	if s.status != Packing {
		return &TransitionError{Current: s.status, Attempted: Packed, Allowed: s.status.AllowedNext()}
	}
	if len(s.boxes) == 0 {
		return ErrNoBoxes
	}

	var missingWeight []BoxRef
	for _, box := range s.boxes {
		if !box.HasWeight() {
			missingWeight = append(missingWeight, BoxRef{ID: box.id, BoxNumber: box.boxNumber})
		}
	}
	if len(missingWeight) > 0 {
		return &MissingWeightError{Boxes: missingWeight}
	}

	var unpacked []UnpackedItem
	for _, demand := range demands {
		packed := s.PackedQuantity(demand.SalesOrderLineID, demand.InventoryUnitID)
		if packed.LessThan(demand.Quantity) {
			missing, err := demand.Quantity.Sub(packed)
			if err != nil {
				return err
			}
			unpacked = append(unpacked, UnpackedItem{
				SalesOrderLineID: demand.SalesOrderLineID,
				InventoryUnitID:  demand.InventoryUnitID,
				Missing:          missing,
			})
		}
	}
	if len(unpacked) > 0 {
		return &UnpackedItemsError{Items: unpacked}
	}

	if err := s.transitionTo(Packed); err != nil {
		return err
	}
	s.packedAt = &now
	s.packedBy = &packedBy

	return nil
}

// Manifest freezes the shipment for carrier hand-off. Every box must carry a
// valid shipping identifier; the check is atomic and reports all offending
// boxes at once.
func (s *Shipment) Manifest(now time.Time) (*ManifestResult, error) {
	if s.status != Packed {
		return nil, &TransitionError{Current: s.status, Attempted: Manifested, Allowed: s.status.AllowedNext()}
	}
	if len(s.boxes) == 0 {
		return nil, ErrNoBoxes
	}

	var missing []BoxRef
	for _, box := range s.boxes {
		if !box.HasSSCC() {
			missing = append(missing, BoxRef{ID: box.id, BoxNumber: box.boxNumber})
		}
	}
	if len(missing) > 0 {
		return nil, &SSCCValidationError{Missing: missing}
	}

	if err := s.transitionTo(Manifested); err != nil {
		return nil, err
	}
	s.manifestedAt = &now

	return &ManifestResult{
		ManifestedAt: now,
		TotalBoxes:   len(s.boxes),
		TotalWeight:  s.TotalWeight(),
	}, nil
}

// MarkShipped records the carrier hand-off.
func (s *Shipment) MarkShipped(now time.Time) error {
	if err := s.transitionTo(Shipped); err != nil {
		return err
	}
	s.shippedAt = &now
	return nil
}

// MarkDelivered closes the shipment lifecycle.
func (s *Shipment) MarkDelivered() error {
	return s.transitionTo(Delivered)
}

// MarkException diverts the shipment out of the normal flow.
func (s *Shipment) MarkException() error {
	return s.transitionTo(Exception)
}

func (s *Shipment) transitionTo(next Status) error {
	newStatus, err := s.status.TransitionTo(next)
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

package shipment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrBoxNotFound is returned when a box ID does not belong to the shipment.
	ErrBoxNotFound = errors.New("box not found in shipment")

	// ErrContentNotFound is returned when a content ID does not belong to the box.
	ErrContentNotFound = errors.New("content not found in box")

	// ErrNoBoxes is returned when packing is completed on a shipment without boxes.
	ErrNoBoxes = errors.New("shipment has no boxes")
)

// BoxRef identifies a box in error reports.
type BoxRef struct {
	ID        kernel.UUID
	BoxNumber int
}

// ModifyAfterPackedError is returned when box weight or dimensions are
// changed after the shipment reached the Packed status.
type ModifyAfterPackedError struct {
	Status Status
}

func (e *ModifyAfterPackedError) Error() string {
	return fmt.Sprintf("boxes cannot be modified once the shipment is packed (status is %s)", e.Status)
}

// MissingWeightError is returned by CompletePacking when one or more boxes
// have no recorded weight. It lists every offending box.
type MissingWeightError struct {
	Boxes []BoxRef
}

func (e *MissingWeightError) Error() string {
	return fmt.Sprintf("cannot complete packing: %d box(es) have no recorded weight: %s",
		len(e.Boxes), formatBoxNumbers(e.Boxes))
}

// UnpackedItem is one (line, unit) pair whose packed quantity is below its
// allocated quantity.
type UnpackedItem struct {
	SalesOrderLineID kernel.UUID
	InventoryUnitID  kernel.UUID
	Missing          kernel.Quantity
}

// UnpackedItemsError is returned by CompletePacking when allocated quantities
// are not fully packed. It lists every shortfall.
type UnpackedItemsError struct {
	Items []UnpackedItem
}

func (e *UnpackedItemsError) Error() string {
	return fmt.Sprintf("cannot complete packing: %d allocated item(s) are not fully packed", len(e.Items))
}

// SSCCValidationError is returned by Manifest when one or more boxes lack a
// valid shipping identifier. It lists every offending box so the operator can
// fix all of them at once.
type SSCCValidationError struct {
	Missing []BoxRef
}

func (e *SSCCValidationError) Error() string {
	return fmt.Sprintf("cannot manifest: %d box(es) have no shipping identifier: %s",
		len(e.Missing), formatBoxNumbers(e.Missing))
}

func formatBoxNumbers(refs []BoxRef) string {
	numbers := make([]string, 0, len(refs))
	for _, ref := range refs {
		numbers = append(numbers, fmt.Sprintf("#%d", ref.BoxNumber))
	}
	return strings.Join(numbers, ", ")
}

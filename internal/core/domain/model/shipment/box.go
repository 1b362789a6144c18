package shipment

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrBoxIsNotConstructed is returned when a Box instance was not created
// through the shipment aggregate.
var ErrBoxIsNotConstructed = errors.New("Box must be created via Shipment.AddBox")

// BoxLimits are the physical and safety bounds enforced on box updates.
// Weight is in kilograms, dimensions in centimeters.
type BoxLimits struct {
	MaxWeight    kernel.Quantity
	MinDimension kernel.Quantity
	MaxDimension kernel.Quantity
}

// DefaultBoxLimits returns the standard bounds: weight in (0, 25kg],
// dimensions in [10cm, 200cm].
func DefaultBoxLimits() BoxLimits {
	maxWeight, _ := kernel.NewQuantityFromString("25")
	minDim, _ := kernel.NewQuantityFromString("10")
	maxDim, _ := kernel.NewQuantityFromString("200")
	return BoxLimits{MaxWeight: maxWeight, MinDimension: minDim, MaxDimension: maxDim}
}

// BoxPatch is a partial update of box weight and dimensions. Nil fields are
// left untouched.
type BoxPatch struct {
	Weight *kernel.Quantity
	Length *kernel.Quantity
	Width  *kernel.Quantity
	Height *kernel.Quantity
}

// Content is one allocated quantity of one inventory unit placed into a box.
type Content struct {
	id               kernel.UUID
	salesOrderLineID kernel.UUID
	inventoryUnitID  kernel.UUID
	quantity         kernel.Quantity
}

// ID returns the content row identifier.
func (c *Content) ID() kernel.UUID { return c.id }

// SalesOrderLineID returns the order line being fulfilled.
func (c *Content) SalesOrderLineID() kernel.UUID { return c.salesOrderLineID }

// InventoryUnitID returns the source inventory unit.
func (c *Content) InventoryUnitID() kernel.UUID { return c.inventoryUnitID }

// Quantity returns the packed quantity.
func (c *Content) Quantity() kernel.Quantity { return c.quantity }

// Box is one physical package within a shipment. Box numbers are sequential
// within the shipment starting at 1 and are never reused or renumbered,
// even after a sibling is deleted.
type Box struct {
	id        kernel.UUID
	boxNumber int
	sscc      *SSCC
	weight    *kernel.Quantity
	length    *kernel.Quantity
	width     *kernel.Quantity
	height    *kernel.Quantity
	contents  []*Content

	isConstructed bool
}

// ID returns the box identifier.
func (b *Box) ID() kernel.UUID { return b.id }

// Number returns the per-shipment box number.
func (b *Box) Number() int { return b.boxNumber }

// SSCC returns the shipping identifier, nil until assigned.
func (b *Box) SSCC() *SSCC { return b.sscc }

// Weight returns the box weight in kg, nil until recorded.
func (b *Box) Weight() *kernel.Quantity { return b.weight }

// Length returns the box length in cm, nil until recorded.
func (b *Box) Length() *kernel.Quantity { return b.length }

// Width returns the box width in cm, nil until recorded.
func (b *Box) Width() *kernel.Quantity { return b.width }

// Height returns the box height in cm, nil until recorded.
func (b *Box) Height() *kernel.Quantity { return b.height }

// Contents returns the contents placed in the box.
func (b *Box) Contents() []*Content { return b.contents }

// HasWeight reports whether a weight has been recorded.
func (b *Box) HasWeight() bool { return b.weight != nil }

// HasSSCC reports whether a shipping identifier has been assigned.
func (b *Box) HasSSCC() bool { return b.sscc != nil }

// Validate ensures the box was created through the aggregate.
func (b *Box) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBoxIsNotConstructed
	}
	return nil
}

// PackedQuantity returns the quantity packed in this box for the given
// (line, unit) pair.
func (b *Box) PackedQuantity(lineID, unitID kernel.UUID) kernel.Quantity {
	total := kernel.ZeroQuantity()
	for _, content := range b.contents {
		if content.salesOrderLineID.IsEqual(lineID) && content.inventoryUnitID.IsEqual(unitID) {
			total = total.Add(content.quantity)
		}
	}
	return total
}

func (b *Box) applyPatch(patch BoxPatch, limits BoxLimits) error {
	if patch.Weight != nil {
		if !patch.Weight.IsPositive() || patch.Weight.GreaterThan(limits.MaxWeight) {
			return errs.NewValueIsOutOfRangeError(
				"weight", patch.Weight.String(), "0 (exclusive)", limits.MaxWeight.String())
		}
	}
	for _, dim := range []struct {
		name  string
		value *kernel.Quantity
	}{
		{"length", patch.Length},
		{"width", patch.Width},
		{"height", patch.Height},
	} {
		if dim.value == nil {
			continue
		}
		if dim.value.LessThan(limits.MinDimension) || dim.value.GreaterThan(limits.MaxDimension) {
			return errs.NewValueIsOutOfRangeError(
				dim.name, dim.value.String(), limits.MinDimension.String(), limits.MaxDimension.String())
		}
	}

	// All validations passed; apply the provided fields only.
	if patch.Weight != nil {
		b.weight = patch.Weight
	}
	if patch.Length != nil {
		b.length = patch.Length
	}
	if patch.Width != nil {
		b.width = patch.Width
	}
	if patch.Height != nil {
		b.height = patch.Height
	}
	return nil
}

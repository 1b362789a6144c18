package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads a shipment with its boxes and contents from
// the database.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment reads.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Boxes come back in numbering order.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response, err := h.shipmentHeader(ctx, query)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	boxes, boxIndex, err := h.boxes(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if err = h.attachContents(ctx, query.ShipmentID(), boxes, boxIndex); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response.Boxes = boxes
	response.TotalBoxes = len(boxes)
	return response, nil
}

func (h GetShipmentQueryHandler) shipmentHeader(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.shipment_number,
			s.sales_order_id,
			s.status,
			s.packed_at,
			s.packed_by,
			s.manifested_at,
			s.shipped_at
		FROM shipments s
		WHERE s.id = ? AND s.org_id = ?
	`, query.ShipmentID().Bytes(), query.OrgID().Bytes()).Row()

	var idRaw, salesOrderIDRaw uuid.UUID
	var packedByRaw *uuid.UUID
	var number string
	var status int
	var packedAt, manifestedAt, shippedAt sql.NullTime

	err := row.Scan(
		&idRaw, &number, &salesOrderIDRaw, &status,
		&packedAt, &packedByRaw, &manifestedAt, &shippedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError(
				"shipment", query.ShipmentID())
		}
		return GetShipmentQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(idRaw[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	salesOrderID, err := kernel.UUIDFromBytes(salesOrderIDRaw[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var packedBy *kernel.UUID
	if packedByRaw != nil {
		by, byErr := kernel.UUIDFromBytes((*packedByRaw)[:])
		if byErr != nil {
			return GetShipmentQueryResponse{}, byErr
		}
		packedBy = &by
	}

	return GetShipmentQueryResponse{
		ID:             id,
		ShipmentNumber: number,
		SalesOrderID:   salesOrderID,
		Status:         shipment.Status(status),
		PackedAt:       nullTimePtr(packedAt),
		PackedBy:       packedBy,
		ManifestedAt:   nullTimePtr(manifestedAt),
		ShippedAt:      nullTimePtr(shippedAt),
	}, nil
}

func (h GetShipmentQueryHandler) boxes(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]GetShipmentBoxResponse, map[kernel.UUID]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT b.id, b.box_number, b.sscc, b.weight, b.length, b.width, b.height
		FROM shipment_boxes b
		WHERE b.shipment_id = ?
		ORDER BY b.box_number
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	boxes := make([]GetShipmentBoxResponse, 0)
	boxIndex := make(map[kernel.UUID]int)
	for rows.Next() {
		var idRaw uuid.UUID
		var boxNumber int
		var sscc sql.NullString
		var weight, length, width, height sql.NullString

		if err = rows.Scan(&idRaw, &boxNumber, &sscc, &weight, &length, &width, &height); err != nil {
			return nil, nil, err
		}

		id, idErr := kernel.UUIDFromBytes(idRaw[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		box := GetShipmentBoxResponse{
			ID:        id,
			BoxNumber: boxNumber,
			Contents:  make([]GetShipmentContentResponse, 0),
		}
		if sscc.Valid {
			s := sscc.String
			box.SSCC = &s
		}
		if box.Weight, err = nullQuantityPtr(weight); err != nil {
			return nil, nil, err
		}
		if box.Length, err = nullQuantityPtr(length); err != nil {
			return nil, nil, err
		}
		if box.Width, err = nullQuantityPtr(width); err != nil {
			return nil, nil, err
		}
		if box.Height, err = nullQuantityPtr(height); err != nil {
			return nil, nil, err
		}

		boxIndex[id] = len(boxes)
		boxes = append(boxes, box)
	}

	return boxes, boxIndex, rows.Err()
}

func (h GetShipmentQueryHandler) attachContents(
	ctx context.Context,
	shipmentID kernel.UUID,
	boxes []GetShipmentBoxResponse,
	boxIndex map[kernel.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT c.id, c.box_id, c.sales_order_line_id, c.inventory_unit_id, c.quantity
		FROM shipment_box_contents c
		JOIN shipment_boxes b ON b.id = c.box_id
		WHERE b.shipment_id = ?
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var idRaw, boxIDRaw, lineIDRaw, unitIDRaw uuid.UUID
		var quantityStr string

		if err = rows.Scan(&idRaw, &boxIDRaw, &lineIDRaw, &unitIDRaw, &quantityStr); err != nil {
			return err
		}

		id, idErr := kernel.UUIDFromBytes(idRaw[:])
		if idErr != nil {
			return idErr
		}
		boxID, boxErr := kernel.UUIDFromBytes(boxIDRaw[:])
		if boxErr != nil {
			return boxErr
		}
		lineID, lineErr := kernel.UUIDFromBytes(lineIDRaw[:])
		if lineErr != nil {
			return lineErr
		}
		unitID, unitErr := kernel.UUIDFromBytes(unitIDRaw[:])
		if unitErr != nil {
			return unitErr
		}
		quantity, qtyErr := kernel.NewQuantityFromString(quantityStr)
		if qtyErr != nil {
			return qtyErr
		}

		i, ok := boxIndex[boxID]
		if !ok {
			continue
		}
		boxes[i].Contents = append(boxes[i].Contents, GetShipmentContentResponse{
			ID:               id,
			SalesOrderLineID: lineID,
			InventoryUnitID:  unitID,
			Quantity:         quantity,
		})
	}

	return rows.Err()
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullQuantityPtr(s sql.NullString) (*kernel.Quantity, error) {
	if !s.Valid {
		return nil, nil
	}
	q, err := kernel.NewQuantityFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

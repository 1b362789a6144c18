package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new shipment. Unique-constraint violations are translated
// into the port errors so the caller can distinguish a number collision
// (retryable with a fresh number) from a second shipment for the same order
// (not retryable).
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateUniqueViolation(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment with its boxes and contents by ID within the
// tenant.
func (r *GormShipmentRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*shipment.Shipment, error) {
	if err := errors.Join(orgID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	return r.first(ctx, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes())
}

// GetBySalesOrder retrieves the live shipment of a sales order within the
// tenant. Shipments parked in exception status do not count: their order may
// be re-shipped.
func (r *GormShipmentRepository) GetBySalesOrder(ctx context.Context, orgID, salesOrderID kernel.UUID) (*shipment.Shipment, error) {
	if err := errors.Join(orgID.Validate(), salesOrderID.Validate()); err != nil {
		return nil, err
	}

	return r.first(ctx, "sales_order_id = ? AND org_id = ? AND status <> ?",
		salesOrderID.Bytes(), orgID.Bytes(), int(shipment.Exception))
}

// GetByBox retrieves the shipment owning the given box within the tenant.
// The box is resolved through its shipment's tenant, so a cross-tenant box
// ID is indistinguishable from a nonexistent one.
func (r *GormShipmentRepository) GetByBox(ctx context.Context, orgID, boxID kernel.UUID) (*shipment.Shipment, error) {
	if err := errors.Join(orgID.Validate(), boxID.Validate()); err != nil {
		return nil, err
	}

	var boxDto ShipmentBoxDTO
	err := r.db.WithContext(ctx).
		Table("shipment_boxes").
		Select("shipment_boxes.*").
		Joins("JOIN shipments ON shipments.id = shipment_boxes.shipment_id").
		Where("shipment_boxes.id = ? AND shipments.org_id = ?", boxID.Bytes(), orgID.Bytes()).
		First(&boxDto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("box", boxID.String())
		}
		return nil, err
	}

	return r.first(ctx, "id = ? AND org_id = ?", boxDto.ShipmentID, orgID.Bytes())
}

func (r *GormShipmentRepository) first(ctx context.Context, query string, args ...any) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Boxes", func(db *gorm.DB) *gorm.DB {
			return db.Order("box_number")
		}).
		Preload("Boxes.Contents").
		First(&dto, append([]any{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", fmt.Sprintf("%v", args[0]))
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists the current state of a shipment aggregate. Boxes and
// contents removed from the aggregate are deleted; everything else is
// upserted.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)

	result := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return translateUniqueViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.deleteOrphans(tx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// deleteOrphans removes box and content rows no longer present on the
// aggregate. Contents of a deleted box go with it via the FK cascade.
func (r *GormShipmentRepository) deleteOrphans(tx *gorm.DB, dto ShipmentDTO) error {
	boxIDs := make([]uuid.UUID, 0, len(dto.Boxes))
	contentIDs := make([]uuid.UUID, 0)
	for _, box := range dto.Boxes {
		boxIDs = append(boxIDs, box.ID)
		for _, content := range box.Contents {
			contentIDs = append(contentIDs, content.ID)
		}
	}

	boxScope := tx.Where("shipment_id = ?", dto.ID)
	if len(boxIDs) > 0 {
		boxScope = boxScope.Where("id NOT IN ?", boxIDs)
	}
	if err := boxScope.Delete(&ShipmentBoxDTO{}).Error; err != nil {
		return err
	}

	if len(boxIDs) == 0 {
		return nil
	}
	contentScope := tx.Where("box_id IN ?", boxIDs)
	if len(contentIDs) > 0 {
		contentScope = contentScope.Where("id NOT IN ?", contentIDs)
	}
	return contentScope.Delete(&ShipmentBoxContentDTO{}).Error
}

// NextShipmentNumber computes the next sequential shipment number for the
// tenant and year from the maximum existing one. Gaps from rolled-back
// transactions are acceptable; the unique index keeps duplicates out.
func (r *GormShipmentRepository) NextShipmentNumber(ctx context.Context, orgID kernel.UUID, year int) (string, error) {
	if err := orgID.Validate(); err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("SH-%d-", year)

	var maxSeq int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(RIGHT(shipment_number, 5) AS INTEGER)), 0)
		FROM shipments
		WHERE org_id = ? AND shipment_number LIKE ?
	`, orgID.Bytes(), prefix+"%").Scan(&maxSeq).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, maxSeq+1), nil
}

// PackedQuantityForLineUnit sums the packed contents for one (line, unit)
// pair across all boxes, skipping shipments parked in exception status.
func (r *GormShipmentRepository) PackedQuantityForLineUnit(ctx context.Context, lineID, unitID kernel.UUID) (kernel.Quantity, error) {
	if err := errors.Join(lineID.Validate(), unitID.Validate()); err != nil {
		return kernel.Quantity{}, err
	}

	var packedStr string
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(c.quantity), 0)
		FROM shipment_box_contents c
		JOIN shipment_boxes b ON b.id = c.box_id
		JOIN shipments s ON s.id = b.shipment_id
		WHERE c.sales_order_line_id = ? AND c.inventory_unit_id = ? AND s.status <> ?
	`, lineID.Bytes(), unitID.Bytes(), int(shipment.Exception)).Scan(&packedStr).Error
	if err != nil {
		return kernel.Quantity{}, err
	}

	return kernel.NewQuantityFromString(packedStr)
}

// translateUniqueViolation maps postgres unique-constraint errors onto the
// port errors by constraint name. The gorm postgres driver surfaces them as
// pgconn.PgError; lib/pq connections report pq.Error instead, so both
// shapes are recognized.
func translateUniqueViolation(err error) error {
	constraint, ok := uniqueViolationConstraint(err)
	if !ok {
		return err
	}

	switch constraint {
	case "idx_shipments_sales_order":
		return ports.ErrShipmentExistsForOrder
	case "idx_shipments_org_number":
		return ports.ErrDuplicateShipmentNumber
	default:
		return err
	}
}

// EnsureLiveShipmentIndex creates the partial unique index admitting at most
// one non-exception shipment per sales order. GORM's uniqueIndex tag cannot
// carry a WHERE clause, so the index lives outside AutoMigrate.
func EnsureLiveShipmentIndex(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_shipments_sales_order ON shipments (sales_order_id) WHERE status <> %d",
		int(shipment.Exception),
	)).Error
}

func uniqueViolationConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return pqErr.Constraint, true
	}

	return "", false
}

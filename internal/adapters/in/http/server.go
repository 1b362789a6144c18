// Package http exposes the fulfillment pipeline over a JSON API. Handlers
// bind and validate the request, translate it into a command or query, and
// map use-case errors onto the wire contract; no business rules live here.
package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use-case handlers the server dispatches to.
type Handlers struct {
	PlanAllocation  queries.PlanAllocationQueryHandler
	GetShipment     queries.GetShipmentQueryHandler
	CheckSeparation queries.CheckSeparationQueryHandler

	CommitAllocation   commands.CommitAllocationCommandHandler
	OverrideAllocation commands.OverrideAllocationCommandHandler
	UndoAllocation     commands.UndoAllocationCommandHandler
	ReleaseAllocations commands.ReleaseAllocationsCommandHandler

	CreateShipment  commands.CreateShipmentCommandHandler
	AddBox          commands.AddBoxCommandHandler
	UpdateBox       commands.UpdateBoxCommandHandler
	SetBoxSSCC      commands.SetBoxSSCCCommandHandler
	AddContent      commands.AddContentCommandHandler
	CompletePacking commands.CompletePackingCommandHandler
	ManifestShipment commands.ManifestShipmentCommandHandler
	MarkShipped     commands.MarkShippedCommandHandler
	MarkDelivered   commands.MarkDeliveredCommandHandler
}

// Server routes HTTP requests to the application layer.
type Server struct {
	handlers Handlers
}

// NewServer creates the HTTP server over the given use-case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts every API route on the echo instance behind the
// given middleware (auth, logging, metrics).
func (s *Server) RegisterRoutes(e *echo.Echo, middleware ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1", middleware...)

	api.POST("/allocation-plans", s.PlanAllocation)
	api.POST("/allocations", s.CommitAllocation)
	api.PATCH("/allocations/:allocationId", s.OverrideAllocation)
	api.POST("/allocations/:allocationId/undo", s.UndoAllocation)
	api.POST("/allocation-releases", s.ReleaseAllocations)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/:shipmentId", s.GetShipment)
	api.POST("/shipments/:shipmentId/boxes", s.AddBox)
	api.POST("/shipments/:shipmentId/complete-packing", s.CompletePacking)
	api.POST("/shipments/:shipmentId/manifest", s.ManifestShipment)
	api.POST("/shipments/:shipmentId/ship", s.MarkShipped)
	api.POST("/shipments/:shipmentId/deliver", s.MarkDelivered)

	api.PATCH("/boxes/:boxId", s.UpdateBox)
	api.PUT("/boxes/:boxId/sscc", s.SetBoxSSCC)
	api.POST("/boxes/:boxId/contents", s.AddContent)
	api.POST("/boxes/:boxId/allergen-check", s.CheckSeparation)
}

type planAllocationRequest struct {
	SalesOrderLineID string `json:"sales_order_line_id" validate:"required,uuid"`
	Strategy         string `json:"strategy" validate:"required"`
}

type planEntryResponse struct {
	InventoryUnitID string     `json:"inventory_unit_id"`
	LotNumber       string     `json:"lot_number"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	LocationID      string     `json:"location_id"`
	Quantity        string     `json:"quantity"`
	Remaining       string     `json:"remaining"`
	NearExpiry      bool       `json:"near_expiry"`
}

type planAllocationResponse struct {
	Strategy       string              `json:"strategy"`
	Demand         string              `json:"demand"`
	TotalAllocated string              `json:"total_allocated"`
	ShortfallQty   string              `json:"shortfall_quantity"`
	IsPartial      bool                `json:"is_partial"`
	Entries        []planEntryResponse `json:"entries"`
}

// PlanAllocation handles POST /api/v1/allocation-plans - computes a dry-run
// allocation plan for one sales order line.
func (s *Server) PlanAllocation(c echo.Context) error {
	var req planAllocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	lineID, err := kernel.UUIDFromString(req.SalesOrderLineID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	strategy, err := allocation.StrategyFromString(req.Strategy)
	if err != nil {
		return writeBadRequest(c, err)
	}

	query, err := queries.NewPlanAllocationQuery(callerOrgID(c), lineID, strategy)
	if err != nil {
		return writeBadRequest(c, err)
	}

	plan, err := s.handlers.PlanAllocation.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	entries := make([]planEntryResponse, len(plan.Entries))
	for i, entry := range plan.Entries {
		entries[i] = planEntryResponse{
			InventoryUnitID: entry.InventoryUnitID.String(),
			LotNumber:       entry.LotNumber,
			ExpiryDate:      entry.ExpiryDate,
			LocationID:      entry.LocationID.String(),
			Quantity:        entry.Quantity.String(),
			Remaining:       entry.Remaining.String(),
			NearExpiry:      entry.NearExpiry,
		}
	}
	return c.JSON(http.StatusOK, planAllocationResponse{
		Strategy:       plan.Strategy.String(),
		Demand:         plan.Demand.String(),
		TotalAllocated: plan.TotalAllocated.String(),
		ShortfallQty:   plan.ShortfallQty.String(),
		IsPartial:      plan.IsPartial,
		Entries:        entries,
	})
}

type commitEntryRequest struct {
	InventoryUnitID string `json:"inventory_unit_id" validate:"required,uuid"`
	Quantity        string `json:"quantity" validate:"required"`
}

type commitAllocationRequest struct {
	SalesOrderLineID string               `json:"sales_order_line_id" validate:"required,uuid"`
	Strategy         string               `json:"strategy" validate:"required"`
	Entries          []commitEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// CommitAllocation handles POST /api/v1/allocations - turns a plan into
// persisted reservations.
func (s *Server) CommitAllocation(c echo.Context) error {
	var req commitAllocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	lineID, err := kernel.UUIDFromString(req.SalesOrderLineID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	strategy, err := allocation.StrategyFromString(req.Strategy)
	if err != nil {
		return writeBadRequest(c, err)
	}

	entries := make([]commands.CommitEntry, len(req.Entries))
	for i, entry := range req.Entries {
		unitID, unitErr := kernel.UUIDFromString(entry.InventoryUnitID)
		if unitErr != nil {
			return writeBadRequest(c, unitErr)
		}
		quantity, qtyErr := kernel.NewQuantityFromString(entry.Quantity)
		if qtyErr != nil {
			return writeBadRequest(c, qtyErr)
		}
		entries[i] = commands.CommitEntry{InventoryUnitID: unitID, Quantity: quantity}
	}

	cmd, err := commands.NewCommitAllocationCommand(callerOrgID(c), lineID, strategy, entries)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.CommitAllocation.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

type overrideAllocationRequest struct {
	NewQuantity *string `json:"new_quantity" validate:"omitempty"`
	Remove      bool    `json:"remove"`
}

// OverrideAllocation handles PATCH /api/v1/allocations/:allocationId -
// changes a reservation's quantity or removes it before packing.
func (s *Server) OverrideAllocation(c echo.Context) error {
	allocationID, err := pathUUID(c, "allocationId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	var req overrideAllocationRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	var newQuantity *kernel.Quantity
	switch {
	case req.Remove && req.NewQuantity != nil:
		return writeBadRequest(c, echo.NewHTTPError(http.StatusBadRequest,
			"new_quantity and remove are mutually exclusive"))
	case !req.Remove && req.NewQuantity == nil:
		return writeBadRequest(c, echo.NewHTTPError(http.StatusBadRequest,
			"either new_quantity or remove is required"))
	case req.NewQuantity != nil:
		quantity, qtyErr := kernel.NewQuantityFromString(*req.NewQuantity)
		if qtyErr != nil {
			return writeBadRequest(c, qtyErr)
		}
		newQuantity = &quantity
	}

	cmd, err := commands.NewOverrideAllocationCommand(callerOrgID(c), allocationID, newQuantity)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.OverrideAllocation.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UndoAllocation handles POST /api/v1/allocations/:allocationId/undo -
// releases a freshly committed reservation while the undo window is open.
func (s *Server) UndoAllocation(c echo.Context) error {
	allocationID, err := pathUUID(c, "allocationId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewUndoAllocationCommand(callerOrgID(c), allocationID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.UndoAllocation.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type releaseAllocationsRequest struct {
	SalesOrderLineID *string `json:"sales_order_line_id" validate:"omitempty,uuid"`
	SalesOrderID     *string `json:"sales_order_id" validate:"omitempty,uuid"`
	Reason           string  `json:"reason" validate:"required"`
	Force            bool    `json:"force"`
}

// ReleaseAllocations handles POST /api/v1/allocation-releases - soft-releases
// the active reservations of a line or a whole order.
func (s *Server) ReleaseAllocations(c echo.Context) error {
	var req releaseAllocationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	var (
		cmd commands.ReleaseAllocationsCommand
		err error
	)
	switch {
	case req.SalesOrderLineID != nil && req.SalesOrderID == nil:
		lineID, idErr := kernel.UUIDFromString(*req.SalesOrderLineID)
		if idErr != nil {
			return writeBadRequest(c, idErr)
		}
		cmd, err = commands.NewReleaseLineAllocationsCommand(callerOrgID(c), lineID, req.Reason, req.Force)
	case req.SalesOrderID != nil && req.SalesOrderLineID == nil:
		orderID, idErr := kernel.UUIDFromString(*req.SalesOrderID)
		if idErr != nil {
			return writeBadRequest(c, idErr)
		}
		cmd, err = commands.NewReleaseOrderAllocationsCommand(callerOrgID(c), orderID, req.Reason, req.Force)
	default:
		return writeBadRequest(c, echo.NewHTTPError(http.StatusBadRequest,
			"exactly one of sales_order_line_id or sales_order_id is required"))
	}
	if err != nil {
		return writeBadRequest(c, err)
	}

	if err = s.handlers.ReleaseAllocations.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createShipmentRequest struct {
	SalesOrderID string `json:"sales_order_id" validate:"required,uuid"`
}

type createdResponse struct {
	ID string `json:"id"`
}

// CreateShipment handles POST /api/v1/shipments - opens the packing phase
// for a picked sales order.
func (s *Server) CreateShipment(c echo.Context) error {
	var req createShipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	salesOrderID, err := kernel.UUIDFromString(req.SalesOrderID)
	if err != nil {
		return writeBadRequest(c, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, callerOrgID(c), salesOrderID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: shipmentID.String()})
}

type shipmentContentResponse struct {
	ID               string `json:"id"`
	SalesOrderLineID string `json:"sales_order_line_id"`
	InventoryUnitID  string `json:"inventory_unit_id"`
	Quantity         string `json:"quantity"`
}

type shipmentBoxResponse struct {
	ID        string                    `json:"id"`
	BoxNumber int                       `json:"box_number"`
	SSCC      *string                   `json:"sscc,omitempty"`
	Weight    *string                   `json:"weight,omitempty"`
	Length    *string                   `json:"length,omitempty"`
	Width     *string                   `json:"width,omitempty"`
	Height    *string                   `json:"height,omitempty"`
	Contents  []shipmentContentResponse `json:"contents"`
}

type shipmentResponse struct {
	ID             string                `json:"id"`
	ShipmentNumber string                `json:"shipment_number"`
	SalesOrderID   string                `json:"sales_order_id"`
	Status         string                `json:"status"`
	PackedAt       *time.Time            `json:"packed_at,omitempty"`
	PackedBy       *string               `json:"packed_by,omitempty"`
	ManifestedAt   *time.Time            `json:"manifested_at,omitempty"`
	ShippedAt      *time.Time            `json:"shipped_at,omitempty"`
	TotalBoxes     int                   `json:"total_boxes"`
	Boxes          []shipmentBoxResponse `json:"boxes"`
}

// GetShipment handles GET /api/v1/shipments/:shipmentId - full shipment view
// with boxes and contents.
func (s *Server) GetShipment(c echo.Context) error {
	shipmentID, err := pathUUID(c, "shipmentId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	query, err := queries.NewGetShipmentQuery(callerOrgID(c), shipmentID)
	if err != nil {
		return writeBadRequest(c, err)
	}

	view, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	boxes := make([]shipmentBoxResponse, len(view.Boxes))
	for i, box := range view.Boxes {
		contents := make([]shipmentContentResponse, len(box.Contents))
		for j, content := range box.Contents {
			contents[j] = shipmentContentResponse{
				ID:               content.ID.String(),
				SalesOrderLineID: content.SalesOrderLineID.String(),
				InventoryUnitID:  content.InventoryUnitID.String(),
				Quantity:         content.Quantity.String(),
			}
		}
		boxes[i] = shipmentBoxResponse{
			ID:        box.ID.String(),
			BoxNumber: box.BoxNumber,
			SSCC:      box.SSCC,
			Weight:    quantityString(box.Weight),
			Length:    quantityString(box.Length),
			Width:     quantityString(box.Width),
			Height:    quantityString(box.Height),
			Contents:  contents,
		}
	}

	response := shipmentResponse{
		ID:             view.ID.String(),
		ShipmentNumber: view.ShipmentNumber,
		SalesOrderID:   view.SalesOrderID.String(),
		Status:         view.Status.String(),
		PackedAt:       view.PackedAt,
		ManifestedAt:   view.ManifestedAt,
		ShippedAt:      view.ShippedAt,
		TotalBoxes:     view.TotalBoxes,
		Boxes:          boxes,
	}
	if view.PackedBy != nil {
		packedBy := view.PackedBy.String()
		response.PackedBy = &packedBy
	}
	return c.JSON(http.StatusOK, response)
}

// AddBox handles POST /api/v1/shipments/:shipmentId/boxes - appends an empty
// box; the first box moves the shipment into packing.
func (s *Server) AddBox(c echo.Context) error {
	shipmentID, err := pathUUID(c, "shipmentId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	boxID := kernel.NewUUID()
	cmd, err := commands.NewAddBoxCommand(boxID, callerOrgID(c), shipmentID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.AddBox.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: boxID.String()})
}

type updateBoxRequest struct {
	Weight *string `json:"weight"`
	Length *string `json:"length"`
	Width  *string `json:"width"`
	Height *string `json:"height"`
}

// UpdateBox handles PATCH /api/v1/boxes/:boxId - partial update of weight
// and dimensions.
func (s *Server) UpdateBox(c echo.Context) error {
	boxID, err := pathUUID(c, "boxId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	var req updateBoxRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	patch := shipment.BoxPatch{}
	if patch.Weight, err = quantityFromOptional(req.Weight); err != nil {
		return writeBadRequest(c, err)
	}
	if patch.Length, err = quantityFromOptional(req.Length); err != nil {
		return writeBadRequest(c, err)
	}
	if patch.Width, err = quantityFromOptional(req.Width); err != nil {
		return writeBadRequest(c, err)
	}
	if patch.Height, err = quantityFromOptional(req.Height); err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewUpdateBoxCommand(callerOrgID(c), boxID, patch)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.UpdateBox.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type setBoxSSCCRequest struct {
	SSCC string `json:"sscc" validate:"required,len=18,numeric"`
}

// SetBoxSSCC handles PUT /api/v1/boxes/:boxId/sscc - assigns the shipping
// identifier checked by the manifest gate.
func (s *Server) SetBoxSSCC(c echo.Context) error {
	boxID, err := pathUUID(c, "boxId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	var req setBoxSSCCRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewSetBoxSSCCCommand(callerOrgID(c), boxID, req.SSCC)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.SetBoxSSCC.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addContentRequest struct {
	SalesOrderLineID string `json:"sales_order_line_id" validate:"required,uuid"`
	InventoryUnitID  string `json:"inventory_unit_id" validate:"required,uuid"`
	Quantity         string `json:"quantity" validate:"required"`
}

// AddContent handles POST /api/v1/boxes/:boxId/contents - packs a quantity
// of one inventory unit into a box.
func (s *Server) AddContent(c echo.Context) error {
	boxID, err := pathUUID(c, "boxId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	var req addContentRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}

	lineID, err := kernel.UUIDFromString(req.SalesOrderLineID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	unitID, err := kernel.UUIDFromString(req.InventoryUnitID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	quantity, err := kernel.NewQuantityFromString(req.Quantity)
	if err != nil {
		return writeBadRequest(c, err)
	}

	contentID := kernel.NewUUID()
	cmd, err := commands.NewAddContentCommand(contentID, callerOrgID(c), boxID, lineID, unitID, quantity)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.AddContent.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: contentID.String()})
}

type allergenCheckRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

type allergenCheckResponse struct {
	HasConflict          bool     `json:"has_conflict"`
	IsBlocking           bool     `json:"is_blocking"`
	ConflictingAllergens []string `json:"conflicting_allergens"`
}

// CheckSeparation handles POST /api/v1/boxes/:boxId/allergen-check -
// advisory allergen separation check before packing a product into a box.
func (s *Server) CheckSeparation(c echo.Context) error {
	boxID, err := pathUUID(c, "boxId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	var req allergenCheckRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeBadRequest(c, err)
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return writeBadRequest(c, err)
	}

	query, err := queries.NewCheckSeparationQuery(callerOrgID(c), boxID, productID)
	if err != nil {
		return writeBadRequest(c, err)
	}

	result, err := s.handlers.CheckSeparation.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	conflicting := make([]string, len(result.ConflictingAllergens))
	for i, allergen := range result.ConflictingAllergens {
		conflicting[i] = string(allergen)
	}
	return c.JSON(http.StatusOK, allergenCheckResponse{
		HasConflict:          result.HasConflict,
		IsBlocking:           result.IsBlocking,
		ConflictingAllergens: conflicting,
	})
}

type completePackingResponse struct {
	Status      string    `json:"status"`
	TotalWeight string    `json:"total_weight"`
	TotalBoxes  int       `json:"total_boxes"`
	PackedAt    time.Time `json:"packed_at"`
}

// CompletePacking handles POST /api/v1/shipments/:shipmentId/complete-packing -
// closes the packing phase once every allocation is boxed and weighed.
func (s *Server) CompletePacking(c echo.Context) error {
	shipmentID, err := pathUUID(c, "shipmentId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewCompletePackingCommand(callerOrgID(c), shipmentID, callerUserID(c))
	if err != nil {
		return writeBadRequest(c, err)
	}

	result, err := s.handlers.CompletePacking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, completePackingResponse{
		Status:      result.Status.String(),
		TotalWeight: result.TotalWeight,
		TotalBoxes:  result.TotalBoxes,
		PackedAt:    result.PackedAt,
	})
}

type manifestBoxResponse struct {
	BoxNumber int    `json:"box_number"`
	SSCC      string `json:"sscc"`
	Validated bool   `json:"validated"`
}

type manifestShipmentResponse struct {
	ShipmentNumber string                `json:"shipment_number"`
	Status         string                `json:"status"`
	BoxCount       int                   `json:"box_count"`
	ManifestedAt   time.Time             `json:"manifested_at"`
	Boxes          []manifestBoxResponse `json:"boxes"`
}

// ManifestShipment handles POST /api/v1/shipments/:shipmentId/manifest -
// the compliance gate before carrier handover.
func (s *Server) ManifestShipment(c echo.Context) error {
	shipmentID, err := pathUUID(c, "shipmentId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewManifestShipmentCommand(callerOrgID(c), shipmentID, callerRole(c))
	if err != nil {
		return writeBadRequest(c, err)
	}

	result, err := s.handlers.ManifestShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	boxes := make([]manifestBoxResponse, len(result.Boxes))
	for i, box := range result.Boxes {
		boxes[i] = manifestBoxResponse{
			BoxNumber: box.BoxNumber,
			SSCC:      box.SSCC,
			Validated: box.Validated,
		}
	}
	return c.JSON(http.StatusOK, manifestShipmentResponse{
		ShipmentNumber: result.ShipmentNumber,
		Status:         result.Status.String(),
		BoxCount:       result.BoxCount,
		ManifestedAt:   result.ManifestedAt,
		Boxes:          boxes,
	})
}

// MarkShipped handles POST /api/v1/shipments/:shipmentId/ship - carrier
// handover; consumes the reserved inventory.
func (s *Server) MarkShipped(c echo.Context) error {
	shipmentID, err := pathUUID(c, "shipmentId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewMarkShippedCommand(callerOrgID(c), shipmentID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.MarkShipped.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/shipments/:shipmentId/deliver - closes
// the shipment lifecycle.
func (s *Server) MarkDelivered(c echo.Context) error {
	shipmentID, err := pathUUID(c, "shipmentId")
	if err != nil {
		return writeBadRequest(c, err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(callerOrgID(c), shipmentID)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if err = s.handlers.MarkDelivered.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func pathUUID(c echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(param))
}

func quantityFromOptional(s *string) (*kernel.Quantity, error) {
	if s == nil {
		return nil, nil
	}
	q, err := kernel.NewQuantityFromString(*s)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func quantityString(q *kernel.Quantity) *string {
	if q == nil {
		return nil
	}
	s := q.String()
	return &s
}

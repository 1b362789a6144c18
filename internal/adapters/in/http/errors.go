package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Machine-readable error codes of the wire contract.
const (
	codeValidationFailed       = "VALIDATION_FAILED"
	codeNotFound               = "NOT_FOUND"
	codeShipmentNotFound       = "SHIPMENT_NOT_FOUND"
	codeLicensePlateNotFound   = "LICENSE_PLATE_NOT_FOUND"
	codeInsufficientInventory  = "INSUFFICIENT_INVENTORY"
	codeAlreadyConsumed        = "ALREADY_CONSUMED"
	codeConflict               = "CONFLICT"
	codeInvalidSalesOrder      = "INVALID_SALES_ORDER"
	codeInvalidStatus          = "INVALID_STATUS"
	codeCannotModifyAfterPack  = "CANNOT_MODIFY_AFTER_PACKED"
	codeMissingWeight          = "MISSING_WEIGHT"
	codeUnpackedItems          = "UNPACKED_ITEMS"
	codeSSCCValidationFailed   = "SSCC_VALIDATION_FAILED"
	codeNoBoxes                = "NO_BOXES"
	codeUndoWindowExpired      = "UNDO_WINDOW_EXPIRED"
	codeForbidden              = "FORBIDDEN"
	codeUnauthorized           = "UNAUTHORIZED"
	codeInternal               = "INTERNAL"
)

// ErrorResponse is the uniform error body. Details carries the structured
// payload of errors that enumerate offenders or allowed states.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type boxRefDetail struct {
	BoxID     string `json:"box_id"`
	BoxNumber int    `json:"box_number"`
}

type unpackedItemDetail struct {
	SalesOrderLineID string `json:"sales_order_line_id"`
	InventoryUnitID  string `json:"inventory_unit_id"`
	MissingQuantity  string `json:"missing_quantity"`
}

type statusDetail struct {
	Current string   `json:"current"`
	Allowed []string `json:"allowed"`
}

// writeError translates a use-case error into the wire contract. Unmapped
// errors become an opaque 500 so internals never leak.
func writeError(c echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    notFoundCode(notFound.ParamName),
			Message: err.Error(),
		})
	}
	if errors.Is(err, shipment.ErrBoxNotFound) || errors.Is(err, shipment.ErrContentNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: codeNotFound, Message: err.Error()})
	}

	var insufficient *allocation.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    codeInsufficientInventory,
			Message: err.Error(),
			Details: map[string]string{
				"inventory_unit_id":  insufficient.UnitID.String(),
				"requested_quantity": insufficient.Requested.String(),
				"remaining_quantity": insufficient.Remaining.String(),
			},
		})
	}

	var consumed *allocation.AlreadyConsumedError
	if errors.As(err, &consumed) {
		ids := make([]string, len(consumed.AllocationIDs))
		for i, id := range consumed.AllocationIDs {
			ids[i] = id.String()
		}
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    codeAlreadyConsumed,
			Message: err.Error(),
			Details: map[string][]string{"allocation_ids": ids},
		})
	}

	if errors.Is(err, ports.ErrShipmentExistsForOrder) || errors.Is(err, ports.ErrDuplicateShipmentNumber) {
		return c.JSON(http.StatusConflict, ErrorResponse{Code: codeConflict, Message: err.Error()})
	}

	var orderTransition *order.TransitionError
	if errors.As(err, &orderTransition) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    codeInvalidSalesOrder,
			Message: err.Error(),
			Details: statusDetail{
				Current: orderTransition.Current.String(),
				Allowed: orderStatusNames(orderTransition.Allowed),
			},
		})
	}

	var shipmentTransition *shipment.TransitionError
	if errors.As(err, &shipmentTransition) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    codeInvalidStatus,
			Message: err.Error(),
			Details: statusDetail{
				Current: shipmentTransition.Current.String(),
				Allowed: shipmentStatusNames(shipmentTransition.Allowed),
			},
		})
	}

	var afterPacked *shipment.ModifyAfterPackedError
	if errors.As(err, &afterPacked) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    codeCannotModifyAfterPack,
			Message: err.Error(),
			Details: map[string]string{"current": afterPacked.Status.String()},
		})
	}

	var missingWeight *shipment.MissingWeightError
	if errors.As(err, &missingWeight) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    codeMissingWeight,
			Message: err.Error(),
			Details: map[string][]boxRefDetail{"boxes": boxRefDetails(missingWeight.Boxes)},
		})
	}

	var unpacked *shipment.UnpackedItemsError
	if errors.As(err, &unpacked) {
		items := make([]unpackedItemDetail, len(unpacked.Items))
		for i, item := range unpacked.Items {
			items[i] = unpackedItemDetail{
				SalesOrderLineID: item.SalesOrderLineID.String(),
				InventoryUnitID:  item.InventoryUnitID.String(),
				MissingQuantity:  item.Missing.String(),
			}
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    codeUnpackedItems,
			Message: err.Error(),
			Details: map[string][]unpackedItemDetail{"items": items},
		})
	}

	var ssccFailed *shipment.SSCCValidationError
	if errors.As(err, &ssccFailed) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    codeSSCCValidationFailed,
			Message: err.Error(),
			Details: map[string][]boxRefDetail{"missing": boxRefDetails(ssccFailed.Missing)},
		})
	}

	if errors.Is(err, shipment.ErrNoBoxes) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Code: codeNoBoxes, Message: err.Error()})
	}
	if errors.Is(err, commands.ErrManifestNotPermitted) {
		return c.JSON(http.StatusForbidden, ErrorResponse{Code: codeForbidden, Message: err.Error()})
	}
	if errors.Is(err, commands.ErrUndoWindowExpired) {
		return c.JSON(http.StatusConflict, ErrorResponse{Code: codeUndoWindowExpired, Message: err.Error()})
	}

	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: codeValidationFailed, Message: err.Error()})
	}

	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    codeInternal,
		Message: "internal error",
	})
}

// writeBadRequest reports a malformed or invalid request body.
func writeBadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    codeValidationFailed,
		Message: err.Error(),
	})
}

func notFoundCode(paramName string) string {
	switch paramName {
	case "inventory unit":
		return codeLicensePlateNotFound
	case "shipment":
		return codeShipmentNotFound
	default:
		return codeNotFound
	}
}

func boxRefDetails(refs []shipment.BoxRef) []boxRefDetail {
	details := make([]boxRefDetail, len(refs))
	for i, ref := range refs {
		details[i] = boxRefDetail{BoxID: ref.ID.String(), BoxNumber: ref.BoxNumber}
	}
	return details
}

func orderStatusNames(statuses []order.Status) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return names
}

func shipmentStatusNames(statuses []shipment.Status) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return names
}

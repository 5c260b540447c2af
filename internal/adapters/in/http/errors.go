package http

import (
	"errors"
	"net/http"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/application/usecases/queries"
	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/domain/model/payment"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// failedWith translates a use case error into the matching HTTP response.
// Unknown errors become 500 without leaking internals to the client.
func failedWith(ctx echo.Context, err error) error {
	code := statusCodeFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func statusCodeFor(err error) int {
	switch {
	case isNotFound(err):
		return http.StatusNotFound
	case isConflict(err):
		return http.StatusConflict
	case errors.Is(err, commands.ErrNoOrdersToBatch),
		errors.Is(err, commands.ErrNoRidersAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, commands.ErrOrderNotFound) ||
		errors.Is(err, commands.ErrPaymentNotFound) ||
		errors.Is(err, commands.ErrAssignmentNotFound) ||
		errors.Is(err, commands.ErrRiderNotFound) ||
		errors.Is(err, commands.ErrZoneNotFound) ||
		errors.Is(err, commands.ErrAddressNotFound) ||
		errors.Is(err, queries.ErrOrderNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, errs.ErrStateConflict) ||
		errors.Is(err, order.ErrInvalidTransition) ||
		errors.Is(err, dispatch.ErrInvalidTransition) ||
		errors.Is(err, payment.ErrInvalidTransition) ||
		errors.Is(err, payment.ErrRefundExceedsRemainder) ||
		errors.Is(err, order.ErrDiscountExceedsSubtotal) ||
		errors.Is(err, commands.ErrOrderIsActivelyAssigned) ||
		errors.Is(err, commands.ErrZoneInactive) ||
		errors.Is(err, rider.ErrRiderNotApproved) ||
		errors.Is(err, ports.ErrAlreadyAssigned) ||
		errors.Is(err, ports.ErrInsufficientStock)
}

// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

// respondBindError reports a failed request bind. Field-level validation
// failures come back structured; anything else (malformed JSON) gets the
// generic bad-request shape.
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(fieldErrs))
		return
	}
	utils.BadRequestResponse(c, "Invalid request body", err.Error())
}

// respondServiceError maps the service error taxonomy onto HTTP. Business
// outcomes keep their context (e.g. available quantity); storage failures are
// logged in full but reported generically.
func respondServiceError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error(), gin.H{
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), nil)
	case errors.Is(err, services.ErrValidation):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, services.ErrDuplicateID):
		utils.ConflictResponse(c, "DUPLICATE_ID", err.Error())
	case errors.Is(err, services.ErrAlreadyReceived):
		// Informational, not fatal: the receipt already happened.
		utils.ConflictResponse(c, "ALREADY_RECEIVED", err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Record")
	case errors.Is(err, services.ErrNodeUnreachable):
		utils.ErrorResponse(c, http.StatusBadGateway, "NODE_UNREACHABLE", "Peer node unreachable", nil)
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c)
	}
}

// internal/handlers/checkout.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/middleware"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// POST /v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actx := middleware.GetAuthContext(c)
	// A logged-in customer buys as themselves regardless of the posted id.
	if actx.SubjectID != "" {
		req.CustomerID = actx.SubjectID
	}

	invoice, err := h.checkoutService.Checkout(actx, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"invoice": invoice})
}

// internal/handlers/transfer.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/middleware"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

type TransferHandler struct {
	transferService *services.TransferService
}

func NewTransferHandler(transferService *services.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

type sendShipmentRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type receiveShipmentRequest struct {
	ShipmentID string `json:"shipment_id" binding:"required"`
	ReceivedBy string `json:"received_by"`
}

// POST /v1/shipments
func (h *TransferHandler) Send(c *gin.Context) {
	var req sendShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shipment, err := h.transferService.Send(middleware.GetAuthContext(c), req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"shipment": shipment})
}

// POST /v1/shipments/receive
func (h *TransferHandler) Receive(c *gin.Context) {
	var req receiveShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actx := middleware.GetAuthContext(c)
	receivedBy := req.ReceivedBy
	if receivedBy == "" {
		receivedBy = actx.SubjectID
	}

	receipt, err := h.transferService.Receive(actx, req.ShipmentID, receivedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"receipt": receipt})
}

// GET /v1/shipments/:id
func (h *TransferHandler) GetShipment(c *gin.Context) {
	shipment, err := h.transferService.GetShipment(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"shipment": shipment})
}

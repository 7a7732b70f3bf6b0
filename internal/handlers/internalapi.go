// internal/handlers/internalapi.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

// InternalHandler serves the node-to-node gateway surface. Every endpoint is
// idempotent so the sending side can replay without coordination.
type InternalHandler struct {
	customerService *services.CustomerService
	transferService *services.TransferService
	ledgerService   *services.LedgerService
	node            models.NodeID
}

func NewInternalHandler(customerService *services.CustomerService, transferService *services.TransferService, ledgerService *services.LedgerService, node models.NodeID) *InternalHandler {
	return &InternalHandler{
		customerService: customerService,
		transferService: transferService,
		ledgerService:   ledgerService,
		node:            node,
	}
}

// POST /internal/customers
func (h *InternalHandler) UpsertCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.BadRequestResponse(c, "Invalid customer payload", err.Error())
		return
	}
	if customer.ID == "" {
		utils.BadRequestResponse(c, "Customer id is required", nil)
		return
	}

	if err := h.customerService.StoreReplica(customer); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stored": customer.ID})
}

// POST /internal/shipments
func (h *InternalHandler) ReplicateShipment(c *gin.Context) {
	var shipment models.Shipment
	if err := c.ShouldBindJSON(&shipment); err != nil {
		utils.BadRequestResponse(c, "Invalid shipment payload", err.Error())
		return
	}
	if shipment.ID == "" || shipment.ProductID == "" || shipment.Quantity <= 0 {
		utils.BadRequestResponse(c, "Shipment id, product and quantity are required", nil)
		return
	}

	if err := h.transferService.StoreReplica(shipment); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stored": shipment.ID})
}

// GET /internal/shipments/:id
func (h *InternalHandler) GetShipment(c *gin.Context) {
	shipment, err := h.transferService.GetShipment(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, shipment)
}

// GET /internal/stock/:id
func (h *InternalHandler) GetStock(c *gin.Context) {
	productID := c.Param("id")
	quantity, err := h.ledgerService.Quantity(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"product_id": productID, "quantity": quantity})
}

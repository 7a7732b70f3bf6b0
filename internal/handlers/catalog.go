// internal/handlers/catalog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/middleware"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	ledgerService  *services.LedgerService
	peer           services.PeerClient
	node           models.NodeID
}

func NewCatalogHandler(catalogService *services.CatalogService, ledgerService *services.LedgerService, peer services.PeerClient, node models.NodeID) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		ledgerService:  ledgerService,
		peer:           peer,
		node:           node,
	}
}

// GET /v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products, "node": h.node})
}

// GET /v1/products/:id/stock
// The optional node query parameter lets a caller peek at the other node's
// quantity; that query goes over the gateway.
func (h *CatalogHandler) CheckStock(c *gin.Context) {
	productID := c.Param("id")
	nodeParam := models.NodeID(c.DefaultQuery("node", string(h.node)))
	if !nodeParam.Valid() {
		utils.BadRequestResponse(c, "Unknown node", nil)
		return
	}

	if nodeParam == h.node {
		quantity, err := h.ledgerService.Quantity(productID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{"product_id": productID, "node": nodeParam, "quantity": quantity})
		return
	}

	if h.peer == nil {
		respondServiceError(c, services.ErrNodeUnreachable)
		return
	}
	quantity, err := h.peer.Quantity(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, services.ErrNodeUnreachable)
		return
	}
	utils.SuccessResponse(c, gin.H{"product_id": productID, "node": nodeParam, "quantity": quantity})
}

// POST /v1/products
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var req services.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalogService.AddProduct(middleware.GetAuthContext(c), &req)
	if err != nil {
		// The create committed; only the automatic branch shipment is
		// outstanding. Report success with the warning attached.
		if errors.Is(err, services.ErrBranchAllocationPending) && product != nil {
			utils.CreatedResponse(c, gin.H{"product": product, "warning": err.Error()})
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"product": product})
}

// PUT /v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(middleware.GetAuthContext(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"product": product})
}

// DELETE /v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(middleware.GetAuthContext(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": c.Param("id")})
}

// DELETE /v1/products/:id/local-inventory
func (h *CatalogHandler) DeleteLocalInventory(c *gin.Context) {
	if err := h.catalogService.DeleteLocalInventory(middleware.GetAuthContext(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"cleared": c.Param("id"), "node": h.node})
}

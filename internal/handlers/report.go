// internal/handlers/report.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/middleware"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GET /v1/reports/:entity
func (h *ReportHandler) Run(c *gin.Context) {
	entity := services.ReportEntity(c.Param("entity"))
	params := utils.GetPaginationParams(c)

	result, err := h.reportService.Run(middleware.GetAuthContext(c), entity, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GET /v1/dashboard/stats
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(middleware.GetAuthContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats})
}

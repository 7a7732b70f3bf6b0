// internal/handlers/employee.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/config"
	"github.com/techstore/techstore-backend/internal/middleware"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
	authConfig      config.AuthConfig
	node            string
}

func NewEmployeeHandler(employeeService *services.EmployeeService, cfg *config.Config) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		authConfig:      cfg.Auth,
		node:            string(cfg.Node.Name),
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /v1/employees
func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	var req services.AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.employeeService.AddEmployee(middleware.GetAuthContext(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"employee": employee})
}

// POST /v1/auth/login
func (h *EmployeeHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.employeeService.GetByEmail(req.Email)
	if err != nil || !employee.CheckPassword(req.Password) {
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	token, err := utils.GenerateNodeToken(h.node, string(authz.RoleEmployee), employee.ID, h.authConfig.TokenTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"employee": gin.H{
			"id":    employee.ID,
			"name":  employee.Name,
			"email": employee.Email,
		},
	})
}

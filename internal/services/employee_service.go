// internal/services/employee_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/utils"
)

type AddEmployeeRequest struct {
	ID       string `json:"id" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=255"`
	Address  string `json:"address" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// EmployeeService registers staff at the acting node. Employees are strictly
// node-local; there is no cross-node replication for them.
type EmployeeService struct {
	db   *gorm.DB
	node models.NodeID
}

func NewEmployeeService(db *gorm.DB, node models.NodeID) *EmployeeService {
	return &EmployeeService{db: db, node: node}
}

func (s *EmployeeService) AddEmployee(actx authz.Context, req *AddEmployeeRequest) (*models.Employee, error) {
	if !actx.CanRegisterEmployees() {
		return nil, fmt.Errorf("%w: employee registration requires an employee account", ErrUnauthorized)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	employee := models.Employee{
		ID:      req.ID,
		NodeID:  s.node,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := employee.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.db.Create(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: employee id or email already registered", ErrDuplicateID)
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &employee, nil
}

func (s *EmployeeService) GetByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Where("email = ?", email).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee: %w", err)
	}
	return &employee, nil
}

// internal/services/employee_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/techstore/techstore-backend/internal/models"
)

type EmployeeSuite struct {
	ServiceSuite
	employees *EmployeeService
}

func (s *EmployeeSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.employees = NewEmployeeService(s.db, models.NodeBranch)
}

func addEmployeeRequest(id, email string) *AddEmployeeRequest {
	return &AddEmployeeRequest{
		ID:       id,
		Name:     "Employee " + id,
		Email:    email,
		Password: "s3cret-pass",
	}
}

func (s *EmployeeSuite) TestAddEmployee() {
	employee, err := s.employees.AddEmployee(branchEmployee(), addEmployeeRequest("E1", "e1@techstore.test"))
	s.Require().NoError(err)
	s.Equal("E1", employee.ID)
	s.Equal(models.NodeBranch, employee.NodeID)
	s.True(employee.CheckPassword("s3cret-pass"))
	s.False(employee.CheckPassword("wrong"))
}

func (s *EmployeeSuite) TestOnlyEmployeesRegisterEmployees() {
	_, err := s.employees.AddEmployee(branchGuest(), addEmployeeRequest("E1", "e1@techstore.test"))
	s.ErrorIs(err, ErrUnauthorized)

	_, err = s.employees.AddEmployee(branchCustomer("C1"), addEmployeeRequest("E1", "e1@techstore.test"))
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *EmployeeSuite) TestDuplicateEmailRejected() {
	_, err := s.employees.AddEmployee(branchEmployee(), addEmployeeRequest("E1", "shared@techstore.test"))
	s.Require().NoError(err)

	_, err = s.employees.AddEmployee(branchEmployee(), addEmployeeRequest("E2", "shared@techstore.test"))
	s.ErrorIs(err, ErrDuplicateID)
}

func (s *EmployeeSuite) TestWeakPasswordRejected() {
	req := addEmployeeRequest("E1", "e1@techstore.test")
	req.Password = "short"

	_, err := s.employees.AddEmployee(branchEmployee(), req)
	s.ErrorIs(err, ErrValidation)
}

func (s *EmployeeSuite) TestGetByEmail() {
	_, err := s.employees.AddEmployee(branchEmployee(), addEmployeeRequest("E1", "e1@techstore.test"))
	s.Require().NoError(err)

	employee, err := s.employees.GetByEmail("e1@techstore.test")
	s.Require().NoError(err)
	s.Equal("E1", employee.ID)

	_, err = s.employees.GetByEmail("nobody@techstore.test")
	s.ErrorIs(err, ErrNotFound)
}

func TestEmployeeSuite(t *testing.T) {
	suite.Run(t, new(EmployeeSuite))
}

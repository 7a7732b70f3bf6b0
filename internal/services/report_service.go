// internal/services/report_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/utils"
)

// ReportEntity is the closed set of things an operator can list. Each entity
// maps to its own typed query; caller input never reaches a table name.
type ReportEntity string

const (
	ReportProducts  ReportEntity = "products"
	ReportCustomers ReportEntity = "customers"
	ReportEmployees ReportEntity = "employees"
	ReportInvoices  ReportEntity = "invoices"
	ReportShipments ReportEntity = "shipments"
)

// ShipmentReportRow carries the derived transfer state: RECEIVED when a
// matching receipt exists, SENT otherwise.
type ShipmentReportRow struct {
	ID          string                `json:"id"`
	ProductID   string                `json:"product_id"`
	ProductName string                `json:"product_name"`
	Quantity    int                   `json:"quantity"`
	SentAt      time.Time             `json:"sent_at"`
	Status      models.ShipmentStatus `json:"status"`
	ReceivedBy  string                `json:"received_by,omitempty"`
	ReceivedAt  *time.Time            `json:"received_at,omitempty"`
}

type DashboardStats struct {
	Products         int64   `json:"products"`
	Customers        int64   `json:"customers"`
	Employees        int64   `json:"employees"`
	Invoices         int64   `json:"invoices"`
	Revenue          float64 `json:"revenue"`
	ShipmentsPending int64   `json:"shipments_pending"`
}

type ReportService struct {
	db   *gorm.DB
	node models.NodeID
}

func NewReportService(db *gorm.DB, node models.NodeID) *ReportService {
	return &ReportService{db: db, node: node}
}

// Run executes the typed query for one reportable entity.
func (s *ReportService) Run(actx authz.Context, entity ReportEntity, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if !actx.CanViewReports() {
		return nil, fmt.Errorf("%w: reports require an employee account", ErrUnauthorized)
	}

	switch entity {
	case ReportProducts:
		return s.listProducts(params)
	case ReportCustomers:
		var rows []models.Customer
		return s.paginateInto(s.db.Model(&models.Customer{}), "id", params, &rows)
	case ReportEmployees:
		var rows []models.Employee
		return s.paginateInto(s.db.Model(&models.Employee{}), "id", params, &rows)
	case ReportInvoices:
		var rows []models.Invoice
		return s.paginateInto(s.db.Model(&models.Invoice{}).Preload("Lines"), "id DESC", params, &rows)
	case ReportShipments:
		return s.listShipments(params)
	default:
		return nil, fmt.Errorf("%w: unknown report entity %q", ErrValidation, entity)
	}
}

func (s *ReportService) Dashboard(actx authz.Context) (*DashboardStats, error) {
	if !actx.CanViewReports() {
		return nil, fmt.Errorf("%w: reports require an employee account", ErrUnauthorized)
	}

	var stats DashboardStats
	if err := s.db.Model(&models.Product{}).Count(&stats.Products).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if err := s.db.Model(&models.Customer{}).Count(&stats.Customers).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if err := s.db.Model(&models.Employee{}).Count(&stats.Employees).Error; err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}
	if err := s.db.Model(&models.Invoice{}).Count(&stats.Invoices).Error; err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}
	if err := s.db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.Revenue).Error; err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if err := s.db.Model(&models.Shipment{}).
		Where("id NOT IN (SELECT shipment_id FROM receipts)").
		Count(&stats.ShipmentsPending).Error; err != nil {
		return nil, fmt.Errorf("count pending shipments: %w", err)
	}

	return &stats, nil
}

func (s *ReportService) listProducts(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var total int64
	if err := s.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	var rows []models.ProductWithStock
	err := s.db.Raw(`
		SELECT p.id, p.name, p.brand, p.price, COALESCE(i.quantity, 0) AS quantity
		FROM products p
		LEFT JOIN inventory_records i
			ON i.product_id = p.id AND i.node_id = ?
		ORDER BY p.id
		LIMIT ? OFFSET ?`,
		s.node, params.Limit, (params.Page-1)*params.Limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	result := utils.CreatePaginationResult(rows, total, params)
	return &result, nil
}

func (s *ReportService) listShipments(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var total int64
	if err := s.db.Model(&models.Shipment{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count shipments: %w", err)
	}

	var rows []ShipmentReportRow
	err := s.db.Raw(`
		SELECT
			s.id, s.product_id, COALESCE(p.name, '') AS product_name,
			s.quantity, s.sent_at,
			CASE WHEN r.id IS NOT NULL THEN 'RECEIVED' ELSE 'SENT' END AS status,
			COALESCE(r.received_by, '') AS received_by,
			r.received_at
		FROM shipments s
		LEFT JOIN products p ON p.id = s.product_id
		LEFT JOIN receipts r ON r.shipment_id = s.id
		ORDER BY s.sent_at DESC
		LIMIT ? OFFSET ?`,
		params.Limit, (params.Page-1)*params.Limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	result := utils.CreatePaginationResult(rows, total, params)
	return &result, nil
}

func (s *ReportService) paginateInto(query *gorm.DB, order string, params utils.PaginationParams, dest interface{}) (*utils.PaginationResult, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	err := utils.ApplyPagination(query.Order(order), params).Find(dest).Error
	if err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}

	result := utils.CreatePaginationResult(dest, total, params)
	return &result, nil
}

// internal/services/checkout_service.go
package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/utils"
)

type CheckoutRequest struct {
	CustomerID string           `json:"customer_id" validate:"required,max=50"`
	Profile    *CustomerProfile `json:"profile,omitempty"`
	ProductID  string           `json:"product_id" validate:"required,max=50"`
	Quantity   int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64          `json:"unit_price" validate:"gte=0"`
}

// CheckoutService orchestrates ledger, registrar and sequencer into one sale.
// All writes share a single transaction against this node's datastore; the
// only thing that escapes it is the best-effort customer forward, which runs
// after commit.
type CheckoutService struct {
	db        *gorm.DB
	node      models.NodeID
	ledger    *LedgerService
	customers *CustomerService
	sequences *SequenceService
}

func NewCheckoutService(db *gorm.DB, node models.NodeID, ledger *LedgerService, customers *CustomerService, sequences *SequenceService) *CheckoutService {
	return &CheckoutService{
		db:        db,
		node:      node,
		ledger:    ledger,
		customers: customers,
		sequences: sequences,
	}
}

// Checkout performs one sale: validate input, decrement stock conditionally,
// find-or-create the customer, issue the invoice. InsufficientStock and
// validation failures are expected business outcomes and leave no writes
// behind.
func (s *CheckoutService) Checkout(actx authz.Context, req *CheckoutRequest) (*models.Invoice, error) {
	if !actx.CanCheckout() {
		return nil, fmt.Errorf("%w: employees cannot purchase with their work account", ErrUnauthorized)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Profile != nil {
		if err := utils.ValidateStruct(req.Profile); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	var (
		invoice         *models.Invoice
		customer        *models.Customer
		customerCreated bool
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.Adjust(tx, req.ProductID, -req.Quantity); err != nil {
			return err
		}

		var err error
		customer, customerCreated, err = s.customers.Ensure(tx, req.CustomerID, req.Profile)
		if err != nil {
			return err
		}

		id, err := s.sequences.NextInvoiceID(tx)
		if err != nil {
			return err
		}

		total := float64(req.Quantity) * req.UnitPrice
		invoice = &models.Invoice{
			ID:         id,
			CustomerID: customer.ID,
			NodeID:     s.node,
			Total:      total,
			IssuedAt:   time.Now(),
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		line := models.InvoiceLine{
			InvoiceID: id,
			ProductID: req.ProductID,
			NodeID:    s.node,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
			Subtotal:  total,
		}
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("create invoice line: %w", err)
		}
		invoice.Lines = []models.InvoiceLine{line}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The forward stays outside the transaction boundary: its latency or
	// failure never affects the committed sale.
	if customerCreated {
		s.customers.ForwardAsync(*customer)
	}

	logrus.WithFields(logrus.Fields{
		"invoice_id":  invoice.ID,
		"customer_id": invoice.CustomerID,
		"product_id":  req.ProductID,
		"quantity":    req.Quantity,
		"total":       invoice.Total,
		"node":        s.node,
	}).Info("Checkout completed")

	return invoice, nil
}

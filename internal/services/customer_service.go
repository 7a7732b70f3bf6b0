// internal/services/customer_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/techstore/techstore-backend/internal/models"
)

// CustomerProfile carries the fields needed to register a customer seen for
// the first time at this node.
type CustomerProfile struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CustomerService is the registrar: find-or-create locally, then replicate new
// customers to the peer node best-effort. Cross-node customer consistency is
// eventual; the local checkout never waits on the peer.
type CustomerService struct {
	db             *gorm.DB
	node           models.NodeID
	peer           PeerClient
	forwardTimeout time.Duration
}

func NewCustomerService(db *gorm.DB, node models.NodeID, peer PeerClient, forwardTimeout time.Duration) *CustomerService {
	return &CustomerService{
		db:             db,
		node:           node,
		peer:           peer,
		forwardTimeout: forwardTimeout,
	}
}

// Ensure returns the existing row for id unchanged, or inserts one from the
// profile. The returned bool reports whether a row was created; the caller
// forwards newly created customers after its transaction commits.
func (s *CustomerService) Ensure(tx *gorm.DB, id string, profile *CustomerProfile) (*models.Customer, bool, error) {
	var existing models.Customer
	err := tx.Where("id = ?", id).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("query customer: %w", err)
	}

	if profile == nil {
		return nil, false, fmt.Errorf("%w: unknown customer %s and no profile supplied", ErrValidation, id)
	}

	customer := models.Customer{
		ID:      id,
		NodeID:  s.node,
		Name:    profile.Name,
		Address: profile.Address,
		Phone:   profile.Phone,
		Email:   profile.Email,
	}
	if err := tx.Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration; use the winner.
			if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
				return nil, false, fmt.Errorf("query customer: %w", err)
			}
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("create customer: %w", err)
	}
	return &customer, true, nil
}

// Get looks a customer up at this node only.
func (s *CustomerService) Get(id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Where("id = ?", id).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &customer, nil
}

// ForwardAsync replicates a newly registered customer to the peer node in the
// background. Failures are logged and swallowed: replication is best-effort
// and must never fail or slow down the checkout that triggered it.
func (s *CustomerService) ForwardAsync(customer models.Customer) {
	if s.peer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.forwardTimeout)
		defer cancel()

		if err := s.peer.UpsertCustomer(ctx, customer); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"customer_id": customer.ID,
				"node":        s.node,
				"peer":        s.node.Peer(),
			}).Warn("Best-effort customer forward failed")
		}
	}()
}

// StoreReplica is the receiving side of the forward: upsert that never
// overwrites an existing row, so whichever node registered the customer first
// wins locally.
func (s *CustomerService) StoreReplica(customer models.Customer) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&customer).Error
	if err != nil {
		return fmt.Errorf("store customer replica: %w", err)
	}
	return nil
}

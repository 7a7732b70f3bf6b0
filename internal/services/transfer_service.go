// internal/services/transfer_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
)

// TransferService is the shipment/receipt protocol that moves physical stock
// from hub to branch. Stock in transit is counted on neither ledger: the hub
// debits on send, the branch credits exactly once on first receipt.
type TransferService struct {
	db             *gorm.DB
	node           models.NodeID
	ledger         *LedgerService
	peer           PeerClient
	forwardTimeout time.Duration
}

func NewTransferService(db *gorm.DB, node models.NodeID, ledger *LedgerService, peer PeerClient, forwardTimeout time.Duration) *TransferService {
	return &TransferService{
		db:             db,
		node:           node,
		ledger:         ledger,
		peer:           peer,
		forwardTimeout: forwardTimeout,
	}
}

// Send debits the hub ledger and records the shipment in one transaction; the
// shipment row exists only if the debit succeeded. The branch replica is
// pushed afterwards, best-effort.
func (s *TransferService) Send(actx authz.Context, productID string, quantity int) (*models.Shipment, error) {
	if !actx.CanSendShipments() {
		return nil, fmt.Errorf("%w: only the hub originates shipments", ErrUnauthorized)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: shipment quantity must be positive", ErrValidation)
	}

	shipment := models.Shipment{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		Status:    models.ShipmentStatusSent,
		SentAt:    time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.Adjust(tx, productID, -quantity); err != nil {
			return err
		}
		if err := tx.Create(&shipment).Error; err != nil {
			return fmt.Errorf("create shipment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.replicateAsync(shipment)

	logrus.WithFields(logrus.Fields{
		"shipment_id": shipment.ID,
		"product_id":  productID,
		"quantity":    quantity,
	}).Info("Shipment sent")

	return &shipment, nil
}

// Receive credits the branch ledger for a shipment exactly once. The unique
// index on receipts.shipment_id decides replays: a duplicate insert rolls the
// whole transaction back before the ledger is touched, and the caller gets
// ErrAlreadyReceived.
func (s *TransferService) Receive(actx authz.Context, shipmentID, receivedBy string) (*models.Receipt, error) {
	if !actx.CanReceiveShipments() {
		return nil, fmt.Errorf("%w: only the branch confirms receipts", ErrUnauthorized)
	}
	if receivedBy == "" {
		return nil, fmt.Errorf("%w: received_by is required", ErrValidation)
	}

	shipment, err := s.resolveShipment(shipmentID)
	if err != nil {
		return nil, err
	}

	receipt := models.Receipt{
		ID:         uuid.NewString(),
		ShipmentID: shipment.ID,
		ReceivedBy: receivedBy,
		ReceivedAt: time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyReceived
			}
			return fmt.Errorf("create receipt: %w", err)
		}
		return s.ledger.Adjust(tx, shipment.ProductID, shipment.Quantity)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"receipt_id":  receipt.ID,
		"shipment_id": shipment.ID,
		"product_id":  shipment.ProductID,
		"quantity":    shipment.Quantity,
		"received_by": receivedBy,
	}).Info("Shipment received")

	return &receipt, nil
}

// resolveShipment prefers the local replica and falls back to asking the hub.
// A fetched shipment is cached locally so a retry after a hub outage works
// offline.
func (s *TransferService) resolveShipment(shipmentID string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := s.db.Where("id = ?", shipmentID).First(&shipment).Error
	if err == nil {
		return &shipment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query shipment: %w", err)
	}

	if s.peer == nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.forwardTimeout)
	defer cancel()

	fetched, err := s.peer.FetchShipment(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrNodeUnreachable, err)
	}

	if err := s.StoreReplica(*fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// StoreReplica records a hub shipment at the branch for visibility and later
// receipt lookup. Idempotent.
func (s *TransferService) StoreReplica(shipment models.Shipment) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&shipment).Error
	if err != nil {
		return fmt.Errorf("store shipment replica: %w", err)
	}
	return nil
}

// GetShipment returns a locally known shipment; used by the peer gateway's
// fetch endpoint at the hub.
func (s *TransferService) GetShipment(id string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := s.db.Where("id = ?", id).First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query shipment: %w", err)
	}
	return &shipment, nil
}

func (s *TransferService) replicateAsync(shipment models.Shipment) {
	if s.peer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.forwardTimeout)
		defer cancel()

		if err := s.peer.ReplicateShipment(ctx, shipment); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"shipment_id": shipment.ID,
				"peer":        s.node.Peer(),
			}).Warn("Best-effort shipment replication failed")
		}
	}()
}

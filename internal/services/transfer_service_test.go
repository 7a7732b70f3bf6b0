// internal/services/transfer_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/techstore/techstore-backend/internal/models"
)

type TransferSuite struct {
	ServiceSuite
	hubPeer      *stubPeer
	branchPeer   *stubPeer
	hubLedger    *LedgerService
	branchLedger *LedgerService
	hub          *TransferService
	branch       *TransferService
}

func (s *TransferSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.hubPeer = newStubPeer()
	s.branchPeer = newStubPeer()
	s.hubLedger = NewLedgerService(s.db, models.NodeHub)
	s.branchLedger = NewLedgerService(s.db, models.NodeBranch)
	s.hub = NewTransferService(s.db, models.NodeHub, s.hubLedger, s.hubPeer, testForwardTimeout)
	s.branch = NewTransferService(s.db, models.NodeBranch, s.branchLedger, s.branchPeer, testForwardTimeout)

	s.seedProduct("p1", "Laptop", 1000)
	s.seedStock(models.NodeHub, "p1", 20)
}

func (s *TransferSuite) TestSendDebitsHubAndRecordsShipment() {
	shipment, err := s.hub.Send(hubEmployee(), "p1", 10)
	s.Require().NoError(err)

	s.Equal("p1", shipment.ProductID)
	s.Equal(10, shipment.Quantity)
	s.Equal(models.ShipmentStatusSent, shipment.Status)
	s.Equal(10, s.stockAt(models.NodeHub, "p1"))

	stored, err := s.hub.GetShipment(shipment.ID)
	s.Require().NoError(err)
	s.Equal(shipment.ID, stored.ID)

	// Replica pushed to the branch, best-effort.
	s.Require().Eventually(func() bool {
		return len(s.hubPeer.replicatedShipments()) == 1
	}, time.Second, 10*time.Millisecond)
}

func (s *TransferSuite) TestSendInsufficientStockLeavesNoShipment() {
	_, err := s.hub.Send(hubEmployee(), "p1", 30)

	var stockErr *InsufficientStockError
	s.ErrorAs(err, &stockErr)
	s.Equal(20, stockErr.Available)
	s.Equal(20, s.stockAt(models.NodeHub, "p1"))

	var count int64
	s.db.Model(&models.Shipment{}).Count(&count)
	s.Equal(int64(0), count)
}

func (s *TransferSuite) TestOnlyHubSends() {
	_, err := s.branch.Send(branchEmployee(), "p1", 5)
	s.ErrorIs(err, ErrUnauthorized)

	_, err = s.hub.Send(branchCustomer("C1"), "p1", 5)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *TransferSuite) TestOnlyBranchReceives() {
	shipment, err := s.hub.Send(hubEmployee(), "p1", 10)
	s.Require().NoError(err)

	_, err = s.hub.Receive(hubEmployee(), shipment.ID, "emp-hub")
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *TransferSuite) TestReceiveCreditsExactlyOnce() {
	shipment, err := s.hub.Send(hubEmployee(), "p1", 10)
	s.Require().NoError(err)

	receipt, err := s.branch.Receive(branchEmployee(), shipment.ID, "emp-branch")
	s.Require().NoError(err)
	s.Equal(shipment.ID, receipt.ShipmentID)
	s.Equal(10, s.stockAt(models.NodeBranch, "p1"))
	s.Equal(10, s.stockAt(models.NodeHub, "p1"))

	// Replaying the receipt is a recognized no-op and credits nothing.
	_, err = s.branch.Receive(branchEmployee(), shipment.ID, "emp-branch")
	s.ErrorIs(err, ErrAlreadyReceived)
	s.Equal(10, s.stockAt(models.NodeBranch, "p1"))

	var receipts int64
	s.db.Model(&models.Receipt{}).Count(&receipts)
	s.Equal(int64(1), receipts)
}

func (s *TransferSuite) TestReceiveUnknownShipment() {
	_, err := s.branch.Receive(branchEmployee(), uuid.NewString(), "emp-branch")
	s.ErrorIs(err, ErrNotFound)
}

func (s *TransferSuite) TestReceiveRequiresReceivedBy() {
	_, err := s.branch.Receive(branchEmployee(), uuid.NewString(), "")
	s.ErrorIs(err, ErrValidation)
}

func (s *TransferSuite) TestReceiveFetchesMissingShipmentFromPeer() {
	// The shipment is known only at the (stubbed) hub, as if the replica push
	// never arrived.
	shipment := models.Shipment{
		ID:        uuid.NewString(),
		ProductID: "p1",
		Quantity:  4,
		Status:    models.ShipmentStatusSent,
		SentAt:    time.Now(),
	}
	s.branchPeer.known[shipment.ID] = shipment

	receipt, err := s.branch.Receive(branchEmployee(), shipment.ID, "emp-branch")
	s.Require().NoError(err)
	s.Equal(shipment.ID, receipt.ShipmentID)
	s.Equal(4, s.stockAt(models.NodeBranch, "p1"))

	// The fetched shipment was cached locally.
	cached, err := s.branch.GetShipment(shipment.ID)
	s.Require().NoError(err)
	s.Equal(shipment.ProductID, cached.ProductID)
}

func (s *TransferSuite) TestReceiveWithPeerDown() {
	s.branchPeer.setFail(true)

	_, err := s.branch.Receive(branchEmployee(), uuid.NewString(), "emp-branch")
	s.ErrorIs(err, ErrNodeUnreachable)
}

func (s *TransferSuite) TestStoreReplicaIsIdempotent() {
	shipment := models.Shipment{
		ID:        uuid.NewString(),
		ProductID: "p1",
		Quantity:  3,
		Status:    models.ShipmentStatusSent,
		SentAt:    time.Now(),
	}

	s.NoError(s.branch.StoreReplica(shipment))
	s.NoError(s.branch.StoreReplica(shipment))

	var count int64
	s.db.Model(&models.Shipment{}).Count(&count)
	s.Equal(int64(1), count)
}

func TestTransferSuite(t *testing.T) {
	suite.Run(t, new(TransferSuite))
}

// internal/services/testutil_test.go
package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
)

// ServiceSuite runs against the PostgreSQL database named by TEST_DATABASE_DSN
// and skips when it is unset. Hub and branch services share the one database in
// tests; that works because every per-node table is keyed by node id, and it
// conveniently makes a hub shipment visible to the branch without a wire.
type ServiceSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *ServiceSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		s.T().Skip("TEST_DATABASE_DSN not set; skipping database-backed tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)

	s.Require().NoError(db.AutoMigrate(
		&models.Product{},
		&models.InventoryRecord{},
		&models.Customer{},
		&models.Employee{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.InvoiceCounter{},
		&models.Shipment{},
		&models.Receipt{},
	))
	s.db = db
}

func (s *ServiceSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(`
		TRUNCATE TABLE invoice_lines, invoices, invoice_counters, receipts,
			shipments, inventory_records, customers, employees, products
		CASCADE`).Error)
}

func (s *ServiceSuite) seedProduct(id, name string, price float64) {
	s.Require().NoError(s.db.Create(&models.Product{
		ID:    id,
		Name:  name,
		Price: price,
	}).Error)
}

func (s *ServiceSuite) seedStock(node models.NodeID, productID string, quantity int) {
	s.Require().NoError(s.db.Create(&models.InventoryRecord{
		ProductID: productID,
		NodeID:    node,
		Quantity:  quantity,
	}).Error)
}

func (s *ServiceSuite) stockAt(node models.NodeID, productID string) int {
	qty, err := NewLedgerService(s.db, node).Quantity(productID)
	s.Require().NoError(err)
	return qty
}

func hubEmployee() authz.Context {
	return authz.Context{Node: models.NodeHub, Role: authz.RoleEmployee, SubjectID: "emp-hub"}
}

func branchEmployee() authz.Context {
	return authz.Context{Node: models.NodeBranch, Role: authz.RoleEmployee, SubjectID: "emp-branch"}
}

func branchGuest() authz.Context {
	return authz.Context{Node: models.NodeBranch, Role: authz.RoleGuest}
}

func branchCustomer(id string) authz.Context {
	return authz.Context{Node: models.NodeBranch, Role: authz.RoleCustomer, SubjectID: id}
}

// stubPeer is an in-memory PeerClient that records what was sent to it. With
// fail set, every call errors, standing in for an unreachable node.
type stubPeer struct {
	mu        sync.Mutex
	fail      bool
	customers []models.Customer
	shipments []models.Shipment
	known     map[string]models.Shipment
}

func newStubPeer() *stubPeer {
	return &stubPeer{known: make(map[string]models.Shipment)}
}

func (p *stubPeer) UpsertCustomer(ctx context.Context, customer models.Customer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("peer down")
	}
	p.customers = append(p.customers, customer)
	return nil
}

func (p *stubPeer) ReplicateShipment(ctx context.Context, shipment models.Shipment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("peer down")
	}
	p.shipments = append(p.shipments, shipment)
	return nil
}

func (p *stubPeer) FetchShipment(ctx context.Context, id string) (*models.Shipment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return nil, errors.New("peer down")
	}
	if shipment, ok := p.known[id]; ok {
		return &shipment, nil
	}
	return nil, ErrNotFound
}

func (p *stubPeer) Quantity(ctx context.Context, productID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return 0, errors.New("peer down")
	}
	return 0, nil
}

func (p *stubPeer) forwardedCustomers() []models.Customer {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Customer, len(p.customers))
	copy(out, p.customers)
	return out
}

func (p *stubPeer) replicatedShipments() []models.Shipment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Shipment, len(p.shipments))
	copy(out, p.shipments)
	return out
}

func (p *stubPeer) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

const testForwardTimeout = 2 * time.Second

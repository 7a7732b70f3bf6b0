// internal/services/ledger_service_test.go
package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/models"
)

type LedgerSuite struct {
	ServiceSuite
	ledger *LedgerService
}

func (s *LedgerSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.ledger = NewLedgerService(s.db, models.NodeBranch)
	s.seedProduct("p1", "Laptop", 999.99)
}

func (s *LedgerSuite) TestMissingRowMeansZero() {
	qty, err := s.ledger.Quantity("p1")
	s.NoError(err)
	s.Equal(0, qty)
}

func (s *LedgerSuite) TestCreditCreatesRow() {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.Adjust(tx, "p1", 7)
	})
	s.NoError(err)

	qty, err := s.ledger.Quantity("p1")
	s.NoError(err)
	s.Equal(7, qty)
}

func (s *LedgerSuite) TestDebitBelowZeroRejected() {
	s.seedStock(models.NodeBranch, "p1", 3)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.Adjust(tx, "p1", -5)
	})

	var stockErr *InsufficientStockError
	s.ErrorAs(err, &stockErr)
	s.Equal("p1", stockErr.ProductID)
	s.Equal(5, stockErr.Requested)
	s.Equal(3, stockErr.Available)
	s.ErrorIs(err, ErrInsufficientStock)

	s.Equal(3, s.stockAt(models.NodeBranch, "p1"))
}

func (s *LedgerSuite) TestDebitMissingRowRejected() {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.Adjust(tx, "p1", -1)
	})

	var stockErr *InsufficientStockError
	s.ErrorAs(err, &stockErr)
	s.Equal(0, stockErr.Available)
}

func (s *LedgerSuite) TestConcurrentDebitsNeverOversell() {
	s.seedStock(models.NodeBranch, "p1", 10)

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.db.Transaction(func(tx *gorm.DB) error {
				return s.ledger.Adjust(tx, "p1", -1)
			})
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			s.True(errors.Is(err, ErrInsufficientStock), "unexpected error: %v", err)
		}
	}

	s.Equal(10, succeeded)
	s.Equal(0, s.stockAt(models.NodeBranch, "p1"))
}

func (s *LedgerSuite) TestNodesAreIsolated() {
	hub := NewLedgerService(s.db, models.NodeHub)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return hub.Adjust(tx, "p1", 10)
	})
	s.NoError(err)

	s.Equal(10, s.stockAt(models.NodeHub, "p1"))
	s.Equal(0, s.stockAt(models.NodeBranch, "p1"))
}

func (s *LedgerSuite) TestSetAndClearQuantity() {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.SetQuantity(tx, "p1", 42)
	})
	s.NoError(err)
	s.Equal(42, s.stockAt(models.NodeBranch, "p1"))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.SetQuantity(tx, "p1", 5)
	})
	s.NoError(err)
	s.Equal(5, s.stockAt(models.NodeBranch, "p1"))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.ClearQuantity(tx, "p1")
	})
	s.NoError(err)
	s.Equal(0, s.stockAt(models.NodeBranch, "p1"))
}

func (s *LedgerSuite) TestSetNegativeQuantityRejected() {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.SetQuantity(tx, "p1", -1)
	})
	s.ErrorIs(err, ErrValidation)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

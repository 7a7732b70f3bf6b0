// internal/services/sequence_service_test.go
package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/models"
)

type SequenceSuite struct {
	ServiceSuite
	sequences *SequenceService
}

func (s *SequenceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.sequences = NewSequenceService(s.db, models.NodeBranch)
}

func (s *SequenceSuite) nextCommitted() int64 {
	var id int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = s.sequences.NextInvoiceID(tx)
		return err
	})
	s.Require().NoError(err)
	return id
}

func (s *SequenceSuite) TestIDsStartAtOneAndIncrement() {
	s.Equal(int64(1), s.nextCommitted())
	s.Equal(int64(2), s.nextCommitted())
	s.Equal(int64(3), s.nextCommitted())
}

func (s *SequenceSuite) TestRolledBackIDIsReused() {
	s.Equal(int64(1), s.nextCommitted())

	sentinel := errors.New("abort")
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.sequences.NextInvoiceID(tx); err != nil {
			return err
		}
		return sentinel
	})
	s.ErrorIs(err, sentinel)

	// The counter bump rolled back with the transaction, so the sequence
	// stays gapless.
	s.Equal(int64(2), s.nextCommitted())
}

func (s *SequenceSuite) TestNodesCountIndependently() {
	hub := NewSequenceService(s.db, models.NodeHub)

	s.Equal(int64(1), s.nextCommitted())
	s.Equal(int64(2), s.nextCommitted())

	var hubID int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		hubID, err = hub.NextInvoiceID(tx)
		return err
	})
	s.NoError(err)
	s.Equal(int64(1), hubID)
}

func (s *SequenceSuite) TestConcurrentIDsAreUnique() {
	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var id int64
			err := s.db.Transaction(func(tx *gorm.DB) error {
				var err error
				id, err = s.sequences.NextInvoiceID(tx)
				return err
			})
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		s.False(seen[id], "duplicate invoice id %d", id)
		seen[id] = true
	}
	s.Len(seen, workers)
	for i := int64(1); i <= workers; i++ {
		s.True(seen[i], "missing invoice id %d", i)
	}
}

func TestSequenceSuite(t *testing.T) {
	suite.Run(t, new(SequenceSuite))
}

// internal/services/sequence_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/models"
)

// SequenceService issues invoice ids for this node: strictly increasing, no
// duplicates under any concurrency. One counter row per node, bumped and read
// back in a single upsert; never "select max + 1".
type SequenceService struct {
	db   *gorm.DB
	node models.NodeID
}

func NewSequenceService(db *gorm.DB, node models.NodeID) *SequenceService {
	return &SequenceService{db: db, node: node}
}

// NextInvoiceID reserves the next id on the caller's transaction; the counter
// bump commits or rolls back together with the rest of the sale. Concurrent
// checkouts serialize briefly on the counter row, which is what guarantees
// uniqueness.
func (s *SequenceService) NextInvoiceID(tx *gorm.DB) (int64, error) {
	var id int64
	err := tx.Raw(`
		INSERT INTO invoice_counters (node_id, next_id)
		VALUES (?, 1)
		ON CONFLICT (node_id)
		DO UPDATE SET next_id = invoice_counters.next_id + 1
		RETURNING next_id`,
		s.node,
	).Scan(&id).Error
	if err != nil {
		return 0, fmt.Errorf("next invoice id: %w", err)
	}
	return id, nil
}

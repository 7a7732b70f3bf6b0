// internal/services/ledger_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/models"
)

// LedgerService is the per-node store of on-hand quantity. Every mutation goes
// through Adjust, a single conditional statement; there is deliberately no
// "set quantity after reading it" path for sales or transfers.
type LedgerService struct {
	db   *gorm.DB
	node models.NodeID
}

func NewLedgerService(db *gorm.DB, node models.NodeID) *LedgerService {
	return &LedgerService{db: db, node: node}
}

func (s *LedgerService) Node() models.NodeID {
	return s.node
}

// Quantity returns the on-hand quantity for a product at this node. A missing
// inventory row means zero.
func (s *LedgerService) Quantity(productID string) (int, error) {
	return s.quantity(s.db, productID)
}

func (s *LedgerService) quantity(tx *gorm.DB, productID string) (int, error) {
	var record models.InventoryRecord
	err := tx.Where("product_id = ? AND node_id = ?", productID, s.node).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query inventory: %w", err)
	}
	return record.Quantity, nil
}

// Adjust applies delta to the product's inventory row as one atomic statement.
// A negative delta only applies if the resulting quantity stays >= 0; the
// affected-row count decides, so two concurrent requests for the last unit
// cannot both win. Runs on the caller's transaction handle so checkout and
// transfers can compose it with their other writes.
func (s *LedgerService) Adjust(tx *gorm.DB, productID string, delta int) error {
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		err := tx.Exec(`
			INSERT INTO inventory_records (product_id, node_id, quantity, updated_at)
			VALUES (?, ?, ?, NOW())
			ON CONFLICT (product_id, node_id)
			DO UPDATE SET quantity = inventory_records.quantity + EXCLUDED.quantity, updated_at = NOW()`,
			productID, s.node, delta,
		).Error
		if err != nil {
			return fmt.Errorf("credit inventory: %w", err)
		}
		return nil
	}

	result := tx.Exec(`
		UPDATE inventory_records
		SET quantity = quantity + ?, updated_at = NOW()
		WHERE product_id = ? AND node_id = ? AND quantity + ? >= 0`,
		delta, productID, s.node, delta,
	)
	if result.Error != nil {
		return fmt.Errorf("debit inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		available, err := s.quantity(tx, productID)
		if err != nil {
			return err
		}
		return &InsufficientStockError{
			ProductID: productID,
			Requested: -delta,
			Available: available,
		}
	}
	return nil
}

// SetQuantity is the absolute upsert behind hub-side catalog stock edits. Not
// used by checkout or transfers.
func (s *LedgerService) SetQuantity(tx *gorm.DB, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	err := tx.Exec(`
		INSERT INTO inventory_records (product_id, node_id, quantity, updated_at)
		VALUES (?, ?, ?, NOW())
		ON CONFLICT (product_id, node_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
		productID, s.node, quantity,
	).Error
	if err != nil {
		return fmt.Errorf("set inventory: %w", err)
	}
	return nil
}

// ClearQuantity removes the local inventory row, leaving the catalog alone.
func (s *LedgerService) ClearQuantity(tx *gorm.DB, productID string) error {
	err := tx.Where("product_id = ? AND node_id = ?", productID, s.node).
		Delete(&models.InventoryRecord{}).Error
	if err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}
	return nil
}

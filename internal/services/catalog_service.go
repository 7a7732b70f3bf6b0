// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/utils"
)

type AddProductRequest struct {
	ID    string  `json:"id" validate:"required,max=50"`
	Name  string  `json:"name" validate:"required,max=255"`
	Brand string  `json:"brand" validate:"max=100"`
	Price float64 `json:"price" validate:"gte=0"`
	// Physical intake at the hub warehouse, and the slice of it destined for
	// the branch. The branch share goes out as a regular shipment.
	InitialHubStock    int `json:"initial_hub_stock" validate:"gte=0"`
	InitialBranchStock int `json:"initial_branch_stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name  string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Brand string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Price float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	// When set, overwrites the hub's on-hand quantity for this product.
	LocalStock *int `json:"local_stock,omitempty" validate:"omitempty"`
}

// CatalogService manages the hub-owned product catalog. The branch never
// mutates the catalog; its only write is clearing its own inventory rows.
type CatalogService struct {
	db        *gorm.DB
	node      models.NodeID
	ledger    *LedgerService
	transfers *TransferService
}

func NewCatalogService(db *gorm.DB, node models.NodeID, ledger *LedgerService, transfers *TransferService) *CatalogService {
	return &CatalogService{
		db:        db,
		node:      node,
		ledger:    ledger,
		transfers: transfers,
	}
}

// AddProduct creates the catalog row and credits the full physical intake to
// the hub ledger; the branch allocation then leaves through the transfer
// protocol like any other shipment.
func (s *CatalogService) AddProduct(actx authz.Context, req *AddProductRequest) (*models.Product, error) {
	if !actx.CanManageCatalog() {
		return nil, fmt.Errorf("%w: only the hub manages the catalog", ErrUnauthorized)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product := models.Product{
		ID:    req.ID,
		Name:  req.Name,
		Brand: req.Brand,
		Price: req.Price,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: product %s already exists", ErrDuplicateID, req.ID)
			}
			return fmt.Errorf("create product: %w", err)
		}
		if total := req.InitialHubStock + req.InitialBranchStock; total > 0 {
			if err := s.ledger.Adjust(tx, product.ID, total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.InitialBranchStock > 0 {
		if _, err := s.transfers.Send(actx, product.ID, req.InitialBranchStock); err != nil {
			// The product exists and all stock sits at the hub; the operator
			// retries the shipment on its own. The distinct error keeps this
			// partial outcome apart from a failed create.
			logrus.WithError(err).WithField("product_id", product.ID).
				Error("Automatic branch allocation failed")
			return &product, fmt.Errorf("%w: %v", ErrBranchAllocationPending, err)
		}
	}

	return &product, nil
}

func (s *CatalogService) UpdateProduct(actx authz.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	if !actx.CanManageCatalog() {
		return nil, fmt.Errorf("%w: only the hub manages the catalog", ErrUnauthorized)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("query product: %w", err)
		}

		updates := make(map[string]interface{})
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Brand != "" {
			updates["brand"] = req.Brand
		}
		if req.Price > 0 {
			updates["price"] = req.Price
		}
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("update product: %w", err)
			}
		}

		if req.LocalStock != nil {
			if err := s.ledger.SetQuantity(tx, id, *req.LocalStock); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes the product and every local reference to it: its
// shipments, its invoice lines at this node, its inventory row and the catalog
// entry. This rewrites sales history for the product, same as the system it
// replaces.
func (s *CatalogService) DeleteProduct(actx authz.Context, id string) error {
	if !actx.CanManageCatalog() {
		return fmt.Errorf("%w: only the hub manages the catalog", ErrUnauthorized)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Shipment{}).Error; err != nil {
			return fmt.Errorf("delete shipments: %w", err)
		}
		if err := tx.Where("product_id = ? AND node_id = ?", id, s.node).
			Delete(&models.InvoiceLine{}).Error; err != nil {
			return fmt.Errorf("delete invoice lines: %w", err)
		}
		if err := s.ledger.ClearQuantity(tx, id); err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Product{})
		if result.Error != nil {
			return fmt.Errorf("delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteLocalInventory clears the branch's stock of a product without touching
// the catalog. The hub uses DeleteProduct instead.
func (s *CatalogService) DeleteLocalInventory(actx authz.Context, id string) error {
	if !actx.CanCleanLocalInventory() {
		return fmt.Errorf("%w: local inventory cleanup is a branch operation", ErrUnauthorized)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.ledger.ClearQuantity(tx, id)
	})
}

// ListProducts is the storefront query: the whole catalog with this node's
// on-hand quantity, zero when no inventory row exists.
func (s *CatalogService) ListProducts() ([]models.ProductWithStock, error) {
	var rows []models.ProductWithStock
	err := s.db.Raw(`
		SELECT p.id, p.name, p.brand, p.price, COALESCE(i.quantity, 0) AS quantity
		FROM products p
		LEFT JOIN inventory_records i
			ON i.product_id = p.id AND i.node_id = ?
		ORDER BY p.id`,
		s.node,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return rows, nil
}

// GetProduct returns one catalog row.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &product, nil
}

// internal/models/product.go
package models

import "time"

// Product is the hub-owned catalog entry. IDs are operator-assigned at the
// hub, not generated.
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Brand     string    `json:"brand" gorm:"size:100"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryRecord holds the on-hand quantity for one (product, node) pair.
// A missing row means quantity zero. Mutated only through the ledger's
// conditional-adjust statements.
type InventoryRecord struct {
	ProductID string    `json:"product_id" gorm:"primaryKey;size:50"`
	NodeID    NodeID    `json:"node_id" gorm:"primaryKey;size:10"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductWithStock is the storefront row: catalog joined with local on-hand
// quantity.
type ProductWithStock struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

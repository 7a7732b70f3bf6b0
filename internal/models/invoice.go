// internal/models/invoice.go
package models

import "time"

// Invoice ids are issued by the per-node sequencer; they are unique and
// monotonic within a node only. Invoices are write-once.
type Invoice struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CustomerID string    `json:"customer_id" gorm:"size:50;not null;index"`
	NodeID     NodeID    `json:"node_id" gorm:"size:10;not null"`
	Total      float64   `json:"total" gorm:"type:decimal(10,2);not null"`
	IssuedAt   time.Time `json:"issued_at" gorm:"not null"`

	Lines []InvoiceLine `json:"lines,omitempty" gorm:"foreignKey:InvoiceID"`
}

type InvoiceLine struct {
	InvoiceID int64   `json:"invoice_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID string  `json:"product_id" gorm:"primaryKey;size:50"`
	NodeID    NodeID  `json:"node_id" gorm:"size:10;not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	// Subtotal = Quantity * UnitPrice, computed at issue time.
	Subtotal float64 `json:"subtotal" gorm:"type:decimal(10,2);not null"`
}

// InvoiceCounter backs the sequencer: one row per node, bumped with a single
// conditional upsert. Never read-then-written.
type InvoiceCounter struct {
	NodeID NodeID `gorm:"primaryKey;size:10"`
	NextID int64  `gorm:"not null"`
}

// internal/models/transfer.go
package models

import "time"

// Shipment records stock leaving the hub. The hub ledger is decremented in the
// same transaction that inserts the row, so in-transit stock is counted on
// neither ledger. Rows are replicated to the branch for visibility only.
type Shipment struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	ProductID string         `json:"product_id" gorm:"size:50;not null;index"`
	Quantity  int            `json:"quantity" gorm:"not null"`
	Status    ShipmentStatus `json:"status" gorm:"size:10;not null;default:'SENT'"`
	SentAt    time.Time      `json:"sent_at" gorm:"not null"`
}

// Receipt confirms a shipment at the branch. The unique index on ShipmentID is
// what makes ReceiveShipment idempotent: a replay hits the constraint and the
// ledger is never credited twice.
type Receipt struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ShipmentID string    `json:"shipment_id" gorm:"size:36;not null;uniqueIndex"`
	ReceivedBy string    `json:"received_by" gorm:"size:100;not null"`
	ReceivedAt time.Time `json:"received_at" gorm:"not null"`
}

// internal/models/customer.go
package models

import "time"

// Customer is logically global but physically has a row per node: the node a
// customer is first seen at inserts the row and forwards it to the peer
// best-effort. NodeID records the node of first registration.
type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	NodeID    NodeID    `json:"node_id" gorm:"size:10;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Address   string    `json:"address" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:30"`
	Email     string    `json:"email" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

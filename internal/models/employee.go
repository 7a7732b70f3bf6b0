// internal/models/employee.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Employee belongs to exactly one node and cannot act at the other. The login
// flow itself lives outside this service; only credential storage is handled
// here.
type Employee struct {
	ID           string    `json:"id" gorm:"primaryKey;size:50"`
	NodeID       NodeID    `json:"node_id" gorm:"size:10;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Address      string    `json:"address" gorm:"size:255"`
	Phone        string    `json:"phone" gorm:"size:30"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (e *Employee) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.PasswordHash = string(hashedPassword)
	return nil
}

func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) == nil
}

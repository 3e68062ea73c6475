package models

import (
	"time"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	Provider      string    `json:"provider" gorm:"not null"` // stripe, tranzila, paypal
	Amount        float64   `json:"amount" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"not null;default:'ILS'"`
	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex;not null"`
	Status        string    `json:"status" gorm:"not null;default:'pending'"` // pending, completed, failed, refunded
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	User User `json:"user,omitempty"`
}

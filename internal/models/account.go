package models

import "time"

// Account represents a bank account owned by a user
// @Description Account structure
type Account struct {
	ID            string    `json:"id" db:"id"`                         // Account record ID
	AccountNumber string    `json:"accountNumber" example:"AC1"`        // Account number (unique)
	Balance       float64   `json:"balance" example:"100"`              // Current balance
	OwnerID       string    `json:"ownerId,omitempty" db:"owner_id"`    // Owning user ID
	OwnerEmail    string    `json:"ownerEmail,omitempty"`               // Owning user email, resolved on read
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import "time"

// Transaction types accepted by the balance-update operation. Transfers are
// part of the record schema but have no dedicated endpoint yet.
const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
	TransactionTransfer   = "transfer"
)

// Transaction represents a single balance movement
// @Description Transaction structure
type Transaction struct {
	ID          string    `json:"id" db:"id"`                     // Transaction ID
	Type        string    `json:"type" example:"deposit"`         // deposit, withdrawal or transfer
	Amount      float64   `json:"amount" example:"50"`            // Transaction amount
	FromAccount string    `json:"fromAccount,omitempty"`          // Source account ID
	ToAccount   string    `json:"toAccount,omitempty"`            // Destination account ID
	Timestamp   time.Time `json:"timestamp" db:"created_at"`      // Time the movement was recorded
}

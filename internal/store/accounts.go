package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jaaystones/bank-app-backend/internal/models"
)

// AccountStore provides account CRUD and balance mutation against the
// database.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Create inserts a new account record.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	account.ID = uuid.NewString()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, account_number, balance, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		account.ID, account.AccountNumber, account.Balance, account.OwnerID,
		account.CreatedAt, account.UpdatedAt)
	return err
}

// Get looks an account up by record ID or account number.
func (s *AccountStore) Get(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := s.db.QueryRowContext(ctx,
		"SELECT id, account_number, balance, owner_id, created_at, updated_at FROM accounts WHERE id = $1 OR account_number = $1 LIMIT 1",
		id).Scan(&account.ID, &account.AccountNumber, &account.Balance,
		&account.OwnerID, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateBalance applies a deposit or withdrawal and records the matching
// transaction row in the same database transaction. The mutation is a single
// conditional UPDATE rather than read-then-write, so concurrent withdrawals
// cannot both observe a stale balance.
func (s *AccountStore) UpdateBalance(ctx context.Context, id, txType string, amount float64) (float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var accountID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM accounts WHERE id = $1 OR account_number = $1 LIMIT 1",
		id).Scan(&accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var newBalance float64
	switch txType {
	case models.TransactionDeposit:
		err = tx.QueryRowContext(ctx,
			"UPDATE accounts SET balance = balance + $1, updated_at = $2 WHERE id = $3 RETURNING balance",
			amount, time.Now().UTC(), accountID).Scan(&newBalance)
		if err != nil {
			return 0, err
		}
	case models.TransactionWithdrawal:
		err = tx.QueryRowContext(ctx,
			"UPDATE accounts SET balance = balance - $1, updated_at = $2 WHERE id = $3 AND balance >= $1 RETURNING balance",
			amount, time.Now().UTC(), accountID).Scan(&newBalance)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInsufficientFunds
		}
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("invalid transaction type %q", txType)
	}

	if err := s.recordTransaction(ctx, tx, accountID, txType, amount); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Delete removes an account by record ID or account number in one step.
func (s *AccountStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM accounts WHERE id = $1 OR account_number = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AccountStore) recordTransaction(ctx context.Context, tx *sql.Tx, accountID, txType string, amount float64) error {
	var fromAccount, toAccount sql.NullString
	if txType == models.TransactionWithdrawal {
		fromAccount = sql.NullString{String: accountID, Valid: true}
	} else {
		toAccount = sql.NullString{String: accountID, Valid: true}
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO transactions (id, type, amount, from_account, to_account, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		uuid.NewString(), txType, amount, fromAccount, toAccount, time.Now().UTC())
	return err
}

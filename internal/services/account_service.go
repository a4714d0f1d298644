package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"

	"github.com/Jaaystones/bank-app-backend/internal/middleware"
	"github.com/Jaaystones/bank-app-backend/internal/models"
	"github.com/Jaaystones/bank-app-backend/internal/store"
)

type AccountService struct {
	accounts  *store.AccountStore
	users     *store.UserStore
	validator *validator.Validate
}

// CreateAccountRequest represents the account creation payload
// @Description Account creation request structure
type CreateAccountRequest struct {
	AccountNumber string   `json:"accountNumber" validate:"required" example:"AC1"` // Account number
	Balance       *float64 `json:"balance" validate:"required,gte=0" example:"100"` // Opening balance
}

// BalanceUpdateRequest represents the balance mutation payload
// @Description Balance update request structure
type BalanceUpdateRequest struct {
	Type   string  `json:"type" validate:"required" example:"deposit"` // deposit or withdrawal
	Amount float64 `json:"amount" validate:"required,gt=0" example:"50"` // Amount to move
}

func NewAccountService(accounts *store.AccountStore, users *store.UserStore) *AccountService {
	return &AccountService{
		accounts:  accounts,
		users:     users,
		validator: validator.New(),
	}
}

// CreateAccount handles account creation
// @Summary Create a new account
// @Description Create an account owned by the authenticated user
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account creation request"
// @Success 201 {object} models.Account "Account created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /accounts [post]
func (s *AccountService) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("[ACCOUNT] Create failed - invalid request: %v", err)
		SendErrorResponse(w, "Account number and balance are required", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		log.Printf("[ACCOUNT] Create validation failed: %v", err)
		SendErrorResponse(w, "Account number and balance are required", http.StatusBadRequest, err)
		return
	}

	account := &models.Account{
		AccountNumber: req.AccountNumber,
		Balance:       *req.Balance,
	}
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		account.OwnerID = user.ID
	}

	if err := s.accounts.Create(r.Context(), account); err != nil {
		log.Printf("[ACCOUNT] Create failed for %s: %v", req.AccountNumber, err)
		SendErrorResponse(w, "Server Error", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[ACCOUNT] Account created - ID: %s, Number: %s", account.ID, account.AccountNumber)
	SendJSONResponse(w, http.StatusCreated, map[string]any{
		"message": "Account created successfully",
		"account": account,
	})
}

// GetAccount returns account details
// @Summary Get account details
// @Description Fetch an account by record ID or account number
// @Tags accounts
// @Produce json
// @Param accountId path string true "Account ID or number"
// @Success 200 {object} models.Account "Account details"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /accounts/{accountId} [get]
func (s *AccountService) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	account, err := s.accounts.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			SendErrorResponse(w, "Account not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[ACCOUNT] Lookup failed for %s: %v", accountID, err)
		SendErrorResponse(w, "Server Error", http.StatusInternalServerError, nil)
		return
	}

	// Best effort: attach the owning user's email for display.
	if owner, err := s.users.FindByAccountOwner(r.Context(), account.AccountNumber); err == nil {
		account.OwnerEmail = owner.Email
	}

	SendJSONResponse(w, http.StatusOK, account)
}

// UpdateBalance applies a deposit or withdrawal
// @Summary Update account balance
// @Description Apply a deposit or withdrawal to the account
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID or number"
// @Param request body BalanceUpdateRequest true "Balance update request"
// @Success 200 {object} map[string]any "Balance updated"
// @Failure 400 {object} ErrorResponse "Invalid request or insufficient funds"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /accounts/{accountId} [put]
func (s *AccountService) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var req BalanceUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("[ACCOUNT] Balance update failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		log.Printf("[ACCOUNT] Balance update validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if req.Type != models.TransactionDeposit && req.Type != models.TransactionWithdrawal {
		SendErrorResponse(w, "Invalid transaction type", http.StatusBadRequest, nil)
		return
	}

	newBalance, err := s.accounts.UpdateBalance(r.Context(), accountID, req.Type, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			SendErrorResponse(w, "Account not found", http.StatusNotFound, nil)
		case errors.Is(err, store.ErrInsufficientFunds):
			SendErrorResponse(w, "Insufficient funds", http.StatusBadRequest, nil)
		default:
			log.Printf("[ACCOUNT] Balance update failed for %s: %v", accountID, err)
			SendErrorResponse(w, "Server Error", http.StatusInternalServerError, nil)
		}
		return
	}

	log.Printf("[ACCOUNT] Balance updated - Account: %s, Type: %s, Amount: %.2f", accountID, req.Type, req.Amount)
	SendJSONResponse(w, http.StatusOK, map[string]any{
		"message":    "Account balance updated successfully",
		"newBalance": newBalance,
	})
}

// DeleteAccount removes an account
// @Summary Delete account
// @Description Remove an account by record ID or account number
// @Tags accounts
// @Produce json
// @Param accountId path string true "Account ID or number"
// @Success 200 {object} map[string]string "Account deleted"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /accounts/{accountId} [delete]
func (s *AccountService) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	if err := s.accounts.Delete(r.Context(), accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			SendErrorResponse(w, "Account not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[ACCOUNT] Delete failed for %s: %v", accountID, err)
		SendErrorResponse(w, "Server Error", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[ACCOUNT] Account deleted: %s", accountID)
	SendJSONResponse(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

// ShareCode renders an account number as a QR code
// @Summary Account share code
// @Description Render the account number as a PNG QR code
// @Tags accounts
// @Produce png
// @Param accountId path string true "Account ID or number"
// @Success 200 {file} binary "QR code image"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /accounts/{accountId}/qr [get]
func (s *AccountService) ShareCode(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	account, err := s.accounts.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			SendErrorResponse(w, "Account not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[ACCOUNT] Lookup failed for %s: %v", accountID, err)
		SendErrorResponse(w, "Server Error", http.StatusInternalServerError, nil)
		return
	}

	png, err := qrcode.Encode(account.AccountNumber, qrcode.Medium, 256)
	if err != nil {
		log.Printf("[ACCOUNT] QR generation failed for %s: %v", account.AccountNumber, err)
		SendErrorResponse(w, "Server Error", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

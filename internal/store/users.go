package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jaaystones/bank-app-backend/internal/models"
)

const userColumns = "id, first_name, last_name, country, selfie, bvn, security_question, security_answer, email, password, created_at, updated_at"

// UserStore provides credential and user lookups against the database.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create hashes the supplied plaintext password and inserts the user.
// The password value is only ever hashed here, so a stored user never
// carries plaintext. A unique-violation on email maps to ErrDuplicateEmail.
func (s *UserStore) Create(ctx context.Context, user *models.User, plainPassword string) error {
	hashed, err := HashPassword(plainPassword)
	if err != nil {
		return err
	}

	user.ID = uuid.NewString()
	user.Password = hashed
	user.Email = strings.ToLower(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, first_name, last_name, country, selfie, bvn, security_question, security_answer, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		user.ID, user.FirstName, user.LastName, user.Country, user.Selfie, user.BVN,
		user.SecurityQuestion, user.SecurityAnswer, user.Email, user.Password,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// FindByEmail looks a user up by their (lowercased) email address.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(email))
	return scanUser(row)
}

// FindByAccountOwner resolves an account number to its owning user.
// Kept alongside FindByEmail so account-number based identity flows share
// the same adapter.
func (s *UserStore) FindByAccountOwner(ctx context.Context, accountNumber string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT u.id, u.first_name, u.last_name, u.country, u.selfie, u.bvn, u.security_question, u.security_answer, u.email, u.password, u.created_at, u.updated_at FROM users u JOIN accounts a ON a.owner_id = u.id WHERE a.account_number = $1",
		accountNumber)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Country,
		&user.Selfie, &user.BVN, &user.SecurityQuestion, &user.SecurityAnswer,
		&user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// HashPassword applies a salted bcrypt hash. The work factor is deliberately
// slow to resist brute force.
func HashPassword(password string) (string, error) {
	cost := viper.GetInt("bcrypt.cost")
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

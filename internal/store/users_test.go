package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jaaystones/bank-app-backend/internal/models"
)

func TestPasswordHashing(t *testing.T) {
	viper.Set("bcrypt.cost", bcrypt.MinCost)

	password := "testpassword"

	hashed, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)

	assert.True(t, VerifyPassword(password, hashed))
	assert.False(t, VerifyPassword("wrongpassword", hashed))
}

func TestUserStore_Create(t *testing.T) {
	viper.Set("bcrypt.cost", bcrypt.MinCost)

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	users := NewUserStore(db)

	t.Run("hashes the password and lowercases the email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(1, 1))

		user := &models.User{
			FirstName:        "John",
			LastName:         "Doe",
			Country:          "Nigeria",
			BVN:              "1234567890",
			SecurityQuestion: "First pet?",
			SecurityAnswer:   "Rex",
			Email:            "John@Example.com",
		}
		err := users.Create(context.Background(), user, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "john@example.com", user.Email)
		assert.NotEqual(t, "password123", user.Password)
		assert.True(t, VerifyPassword("password123", user.Password))
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505"})

		user := &models.User{Email: "john@example.com"}
		err := users.Create(context.Background(), user, "password123")

		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserStore_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	users := NewUserStore(db)

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := users.FindByEmail(context.Background(), "ghost@example.com")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserStore_FindByAccountOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	users := NewUserStore(db)

	t.Run("resolves the owning user", func(t *testing.T) {
		mock.ExpectQuery("FROM users u JOIN accounts a").
			WithArgs("AC1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "first_name", "last_name", "country", "selfie", "bvn",
				"security_question", "security_answer", "email", "password",
				"created_at", "updated_at",
			}).AddRow("user-1", "John", "Doe", "Nigeria", "", "1234567890",
				"First pet?", "Rex", "john@example.com", "hash",
				time.Now().UTC(), time.Now().UTC()))

		user, err := users.FindByAccountOwner(context.Background(), "AC1")

		assert.NoError(t, err)
		assert.Equal(t, "john@example.com", user.Email)
	})

	t.Run("no owning user", func(t *testing.T) {
		mock.ExpectQuery("FROM users u JOIN accounts a").
			WithArgs("AC9").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := users.FindByAccountOwner(context.Background(), "AC9")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

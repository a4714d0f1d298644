package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/Jaaystones/bank-app-backend/internal/store"
)

func signTestToken(t *testing.T, email, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestAccessGuard(t *testing.T) {
	viper.Set("jwt.access_secret", "access-test-secret")

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	guard := AccessGuard(store.NewUserStore(db))

	downstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		assert.True(t, ok)
		w.Header().Set("X-Resolved-Email", user.Email)
		w.WriteHeader(http.StatusOK)
	})
	handler := guard(downstream)

	t.Run("no authorization header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/protected", nil)
		r.Header.Set("Authorization", "Basic abcdef")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		token := signTestToken(t, "john@example.com", "wrong-secret", time.Hour)

		r := httptest.NewRequest("GET", "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestToken(t, "john@example.com", "access-test-secret", -time.Minute)

		r := httptest.NewRequest("GET", "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token but user no longer exists", func(t *testing.T) {
		token := signTestToken(t, "gone@example.com", "access-test-secret", time.Hour)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("gone@example.com").
			WillReturnError(sql.ErrNoRows)

		r := httptest.NewRequest("GET", "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token resolves the user into context", func(t *testing.T) {
		token := signTestToken(t, "john@example.com", "access-test-secret", time.Hour)

		now := time.Now().UTC()
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("john@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "first_name", "last_name", "country", "selfie", "bvn",
				"security_question", "security_answer", "email", "password",
				"created_at", "updated_at",
			}).AddRow("user-1", "John", "Doe", "Nigeria", "", "1234567890",
				"First pet?", "Rex", "john@example.com", "hash", now, now))

		r := httptest.NewRequest("GET", "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "john@example.com", w.Header().Get("X-Resolved-Email"))
	})
}

package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"

	"github.com/Jaaystones/bank-app-backend/internal/middleware"
	"github.com/Jaaystones/bank-app-backend/internal/models"
	"github.com/Jaaystones/bank-app-backend/internal/store"
)

type AuthService struct {
	users     *store.UserStore
	redis     *redis.Client
	validator *validator.Validate
}

// SignUpRequest represents the registration request payload
// @Description Registration request structure
type SignUpRequest struct {
	FirstName        string `json:"firstName" validate:"required" example:"John"`              // User first name
	LastName         string `json:"lastName" validate:"required" example:"Doe"`                // User last name
	Country          string `json:"country" validate:"required" example:"Nigeria"`             // Country of residence
	Selfie           string `json:"selfie"`                                                    // Optional selfie reference
	BVN              string `json:"bvn" validate:"required,len=10" example:"1234567890"`       // Bank Verification Number
	SecurityQuestion string `json:"securityQuestion" validate:"required"`                      // Security question
	SecurityAnswer   string `json:"securityAnswer" validate:"required"`                        // Security answer
	Email            string `json:"email" validate:"required,email" example:"user@example.com"` // User email address
	Password         string `json:"password" validate:"required,min=6" example:"password123"`  // User password
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"` // User email address
	Password string `json:"password" validate:"required" example:"password123"`         // User password
}

// TokenResponse carries a freshly minted access token
// @Description Access token response structure
type TokenResponse struct {
	AccessToken string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT access token
}

func NewAuthService(users *store.UserStore, redisClient *redis.Client) *AuthService {
	return &AuthService{
		users:     users,
		redis:     redisClient,
		validator: validator.New(),
	}
}

// SignUp handles user registration
// @Summary Register a new user
// @Description Register a new user with identity details, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration request"
// @Success 201 {object} models.User "User created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (s *AuthService) SignUp(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Sign-up attempt from IP: %s", r.RemoteAddr)

	var req SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("[AUTH] Sign-up failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		log.Printf("[AUTH] Sign-up validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	user := &models.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Country:          req.Country,
		Selfie:           req.Selfie,
		BVN:              req.BVN,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		Email:            req.Email,
	}

	if err := s.users.Create(r.Context(), user, req.Password); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			log.Printf("[AUTH] Sign-up rejected - email already registered: %s", req.Email)
			SendErrorResponse(w, "Email is already registered", http.StatusConflict, nil)
			return
		}
		log.Printf("[AUTH] User creation failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "Failed to create user", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] User created successfully - ID: %s, Email: %s", user.ID, user.Email)
	SendJSONResponse(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password; sets the refresh cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} TokenResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("[AUTH] Login failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		log.Printf("[AUTH] Login validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	// Unknown user and wrong password must be indistinguishable to the
	// caller, so both paths share the same status and message.
	user, err := s.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[AUTH] User lookup failed for %s: %v", req.Email, err)
			SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
			return
		}
		log.Printf("[AUTH] Login rejected - user not found: %s", req.Email)
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if !store.VerifyPassword(req.Password, user.Password) {
		log.Printf("[AUTH] Login rejected - invalid password for user: %s", req.Email)
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	accessToken, err := GenerateAccessToken(user.Email)
	if err != nil {
		log.Printf("[AUTH] Access token generation failed for %s: %v", user.Email, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	refreshToken, err := GenerateRefreshToken(user.Email)
	if err != nil {
		log.Printf("[AUTH] Refresh token generation failed for %s: %v", user.Email, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	log.Printf("[AUTH] Login successful for user %s", user.ID)
	SendJSONResponse(w, http.StatusOK, TokenResponse{AccessToken: accessToken})
}

// Refresh mints a new access token from the refresh cookie
// @Summary Refresh access token
// @Description Issue a fresh access token from a valid refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} TokenResponse "Token refreshed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /auth/refresh [get]
func (s *AuthService) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		log.Printf("[AUTH] Refresh rejected - no refresh cookie from IP: %s", r.RemoteAddr)
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if s.isDenylisted(r, cookie.Value) {
		log.Printf("[AUTH] Refresh rejected - denylisted token from IP: %s", r.RemoteAddr)
		SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
		return
	}

	email, err := ParseEmailToken(cookie.Value, viper.GetString("jwt.refresh_secret"))
	if err != nil {
		log.Printf("[AUTH] Refresh rejected - invalid refresh token: %v", err)
		SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
		return
	}

	user, err := s.users.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("[AUTH] Refresh rejected - user lookup failed for %s: %v", email, err)
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	accessToken, err := GenerateAccessToken(user.Email)
	if err != nil {
		log.Printf("[AUTH] Access token generation failed for %s: %v", user.Email, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Token refreshed for user %s", user.ID)
	SendJSONResponse(w, http.StatusOK, TokenResponse{AccessToken: accessToken})
}

// Logout clears the refresh cookie
// @Summary Logout user
// @Description Clear the refresh cookie and denylist the refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Success 204 "No cookie present"
// @Router /auth/logout [post]
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		// Nothing to clear; logout is an idempotent no-op.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if s.redis != nil {
		key := fmt.Sprintf("denylist:%s", cookie.Value)
		if err := s.redis.Set(r.Context(), key, "1", RefreshTokenTTL()).Err(); err != nil {
			log.Printf("[AUTH] Failed to denylist refresh token: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	log.Printf("[AUTH] Logout from IP: %s", r.RemoteAddr)
	SendJSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Protected echoes the identity resolved by the access guard
// @Summary Protected probe
// @Description Return the authenticated user attached by the access guard
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any "Authorized"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /protected [get]
func (s *AuthService) Protected(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	SendJSONResponse(w, http.StatusOK, map[string]any{
		"message": "You are authorized to access this route",
		"user":    user,
	})
}

func (s *AuthService) isDenylisted(r *http.Request, token string) bool {
	if s.redis == nil {
		return false
	}
	key := fmt.Sprintf("denylist:%s", token)
	_, err := s.redis.Get(r.Context(), key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[AUTH] Denylist lookup failed: %v", err)
		return false
	}
	return true
}

package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// RefreshCookieName is the cookie carrying the refresh token.
const RefreshCookieName = "jwt"

// AccessTokenTTL returns the access token lifetime (default 15 minutes).
func AccessTokenTTL() time.Duration {
	minutes := viper.GetInt("jwt.access_ttl_minutes")
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime (default 7 days).
func RefreshTokenTTL() time.Duration {
	days := viper.GetInt("jwt.refresh_ttl_days")
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// GenerateAccessToken signs a short-lived token encoding the user's email
// with the access secret.
func GenerateAccessToken(email string) (string, error) {
	return signEmailToken(email, viper.GetString("jwt.access_secret"), AccessTokenTTL())
}

// GenerateRefreshToken signs a longer-lived token encoding the user's email
// with the separate refresh secret.
func GenerateRefreshToken(email string) (string, error) {
	return signEmailToken(email, viper.GetString("jwt.refresh_secret"), RefreshTokenTTL())
}

func signEmailToken(email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseEmailToken verifies signature and expiry against the given secret and
// returns the embedded email.
func ParseEmailToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return email, nil
}

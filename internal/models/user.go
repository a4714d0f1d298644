package models

import "time"

// User represents a registered customer
// @Description User structure
type User struct {
	ID               string    `json:"id" db:"id"`                       // User ID
	FirstName        string    `json:"firstName" example:"John"`         // User first name
	LastName         string    `json:"lastName" example:"Doe"`           // User last name
	Country          string    `json:"country" example:"Nigeria"`        // Country of residence
	Selfie           string    `json:"selfie,omitempty"`                 // Reference to uploaded selfie
	BVN              string    `json:"bvn" example:"1234567890"`         // Bank Verification Number (10 characters)
	SecurityQuestion string    `json:"securityQuestion"`                 // Security question
	SecurityAnswer   string    `json:"securityAnswer"`                   // Security answer
	Email            string    `json:"email" example:"user@example.com"` // User email (unique)
	Password         string    `json:"-"`                                // bcrypt hash, never serialized
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

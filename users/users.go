package users

import (
	"fmt"
	"time"
	"unicode"
)

// User is a remote-owned user record. The client holds only transient
// copies for rendering; the server is the single source of truth.
type User struct {
	ID        string    `json:"id,omitempty"`        // Unique identifier for the user
	Email     string    `json:"email,omitempty"`     // User's email address
	IsAdmin   bool      `json:"isAdmin,omitempty"`   // Whether the user can create tasks and register users
	CreatedAt time.Time `json:"createdAt,omitempty"` // Date and time when the user was registered
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
//
// This is an advisory pre-check before the register request; the server
// validates again and remains authoritative.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

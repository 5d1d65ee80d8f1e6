package models

import (
	"time"
)

// User is an account that owns exactly one business.
type User struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name"`
	Email         string `json:"email" gorm:"uniqueIndex"`
	PasswordHash  string `json:"-"`
	EmailVerified bool   `json:"email_verified"`

	VerificationCode          *string    `json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"
)

// Client is a person who books with a business. Clients are matched by
// email within the business when one is supplied; walk-ins without an email
// get a fresh record per booking.
type Client struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BusinessID uint      `json:"business_id" gorm:"index:idx_clients_business_email;not null"`
	Name       string    `json:"name"`
	Email      *string   `json:"email" gorm:"index:idx_clients_business_email"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

package models

import (
	"time"
)

// Service is a bookable offering of a business. Duration is the canonical
// slot length in minutes; Price may be absent for services quoted in person.
type Service struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BusinessID uint     `json:"business_id" gorm:"uniqueIndex:idx_services_business_external;not null"`
	ExternalID string   `json:"external_id" gorm:"uniqueIndex:idx_services_business_external;size:64"`
	Name       string   `json:"name"`
	Duration   int      `json:"duration"`
	Price      *float64 `json:"price"`

	Professionals []Professional `json:"professionals,omitempty" gorm:"many2many:service_professionals;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

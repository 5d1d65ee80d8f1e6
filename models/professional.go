package models

import (
	"time"
)

// Professional is a staff member of a business. ExternalID is the
// business-scoped identifier supplied by the configuration frontend and is
// how API callers reference the professional.
type Professional struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BusinessID  uint      `json:"business_id" gorm:"uniqueIndex:idx_professionals_business_external;not null"`
	ExternalID  string    `json:"external_id" gorm:"uniqueIndex:idx_professionals_business_external;size:64"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	BirthDate   time.Time `json:"birth_date" gorm:"type:date"`
	DNI         string    `json:"dni" gorm:"size:20"`
	Description *string   `json:"description"`

	// Individual schedule, used instead of the business schedule when the
	// tenant enables per-professional hours.
	UseIndividualSchedule bool    `json:"use_individual_schedule"`
	GlobalOpenTime        *string `json:"global_open_time" gorm:"size:5"`
	GlobalCloseTime       *string `json:"global_close_time" gorm:"size:5"`
	GlobalDuration        *int    `json:"global_duration"`

	Schedules []ProfessionalSchedule `json:"schedules,omitempty" gorm:"foreignKey:ProfessionalID"`
	Services  []Service              `json:"services,omitempty" gorm:"many2many:service_professionals;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfessionalSchedule is one weekday entry of a professional's own
// schedule, mirroring OperatingHours at the professional level.
type ProfessionalSchedule struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ProfessionalID uint      `json:"professional_id" gorm:"index;not null"`
	DayOfWeek      string    `json:"day_of_week" gorm:"size:10"`
	Enabled        bool      `json:"enabled"`
	OpenTime       string    `json:"open_time" gorm:"size:5"`
	CloseTime      string    `json:"close_time" gorm:"size:5"`
	Duration       int       `json:"duration"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

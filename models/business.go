package models

import (
	"time"
)

// Business is the tenant root. Every other entity is scoped by it, directly
// or through a parent, and queries must always filter by business id.
type Business struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	UserID    uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User    `json:"-" gorm:"foreignKey:UserID"`
	Name      string  `json:"name"`
	AdminName string  `json:"admin_name"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Logo      *string `json:"logo"`

	// Schedule flags and global fallback times used when a weekday has no
	// operating-hours row of its own.
	UseIndividualSchedule             bool    `json:"use_individual_schedule"`
	UseIndividualProfessionalSchedule bool    `json:"use_individual_professional_schedule"`
	GlobalOpenTime                    *string `json:"global_open_time" gorm:"size:5"`
	GlobalCloseTime                   *string `json:"global_close_time" gorm:"size:5"`
	GlobalDuration                    *int    `json:"global_duration"`

	Professionals         []Professional         `json:"professionals,omitempty" gorm:"foreignKey:BusinessID"`
	Services              []Service              `json:"services,omitempty" gorm:"foreignKey:BusinessID"`
	Clients               []Client               `json:"clients,omitempty" gorm:"foreignKey:BusinessID"`
	Appointments          []Appointment          `json:"appointments,omitempty" gorm:"foreignKey:BusinessID"`
	OperatingHours        []OperatingHours       `json:"operating_hours,omitempty" gorm:"foreignKey:BusinessID"`
	BookingPreferences    *BookingPreferences    `json:"booking_preferences,omitempty" gorm:"foreignKey:BusinessID"`
	CommunicationSettings *CommunicationSettings `json:"communication_settings,omitempty" gorm:"foreignKey:BusinessID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OperatingHours is one weekday entry of the business schedule.
type OperatingHours struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BusinessID uint      `json:"business_id" gorm:"index;not null"`
	DayOfWeek  string    `json:"day_of_week" gorm:"size:10"`
	Enabled    bool      `json:"enabled"`
	OpenTime   string    `json:"open_time" gorm:"size:5"`
	CloseTime  string    `json:"close_time" gorm:"size:5"`
	Duration   int       `json:"duration"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookingPreferences holds the tenant's booking policy.
type BookingPreferences struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	BusinessID         uint      `json:"business_id" gorm:"uniqueIndex;not null"`
	AllowCancellation  bool      `json:"allow_cancellation"`
	HoursBeforeBooking int       `json:"hours_before_booking"`
	MaxDaysAhead       int       `json:"max_days_ahead"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CommunicationSettings holds the tenant's email preferences.
type CommunicationSettings struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	BusinessID            uint      `json:"business_id" gorm:"uniqueIndex;not null"`
	SendConfirmationEmail bool      `json:"send_confirmation_email"`
	SendReminderEmail     bool      `json:"send_reminder_email"`
	ReminderHoursBefore   int       `json:"reminder_hours_before"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DaysOfWeek lists the weekday keys in schedule order.
var DaysOfWeek = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayKey maps a time.Weekday to the schedule key used in storage.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}

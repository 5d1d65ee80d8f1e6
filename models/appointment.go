package models

import (
	"time"
)

// AppointmentStatus is the storage-native status value. Client-facing
// payloads use the lowercase labels returned by Label.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "PENDING"
	StatusConfirmed  AppointmentStatus = "CONFIRMED"
	StatusInProgress AppointmentStatus = "IN_PROGRESS"
	StatusCompleted  AppointmentStatus = "COMPLETED"
	StatusCancelled  AppointmentStatus = "CANCELLED"
	StatusNoShow     AppointmentStatus = "NO_SHOW"
)

// Label returns the client-facing form of the status.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusNoShow:
		return "no_show"
	}
	return "pending"
}

// ParseAppointmentStatus maps a client-facing label to its storage value.
func ParseAppointmentStatus(label string) (AppointmentStatus, bool) {
	switch label {
	case "pending":
		return StatusPending, true
	case "confirmed":
		return StatusConfirmed, true
	case "in_progress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	case "cancelled":
		return StatusCancelled, true
	case "no_show":
		return StatusNoShow, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// rank orders the active statuses along the forward path.
func (s AppointmentStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusConfirmed:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	}
	return -1
}

// CanTransitionTo validates the appointment state machine: forward-only
// along pending -> confirmed -> in_progress -> completed, with cancelled
// and no_show reachable from any active status.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.IsTerminal() || s == next {
		return false
	}
	if next == StatusCancelled || next == StatusNoShow {
		return true
	}
	return next.rank() > s.rank()
}

// Appointment is one booked (or formerly booked) slot. Date carries only
// the calendar day; StartTime and EndTime are HH:mm strings, which compare
// correctly as text because they are validated fixed-width 24-hour values.
type Appointment struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	BusinessID     uint              `json:"business_id" gorm:"index;not null"`
	Business       Business          `json:"-" gorm:"foreignKey:BusinessID"`
	ClientID       uint              `json:"client_id"`
	Client         Client            `json:"client" gorm:"foreignKey:ClientID"`
	ProfessionalID uint              `json:"professional_id" gorm:"index:idx_appointments_professional_date"`
	Professional   Professional      `json:"professional" gorm:"foreignKey:ProfessionalID"`
	ServiceID      uint              `json:"service_id"`
	Service        Service           `json:"service" gorm:"foreignKey:ServiceID"`
	Date           time.Time         `json:"date" gorm:"type:date;index:idx_appointments_professional_date"`
	StartTime      string            `json:"start_time" gorm:"size:5"`
	EndTime        string            `json:"end_time" gorm:"size:5"`
	Duration       int               `json:"duration"`
	Status         AppointmentStatus `json:"status" gorm:"size:20;default:PENDING"`
	// Price is snapshotted from the service at booking time and is not
	// recalculated when the service price changes later.
	Price           *float64   `json:"price"`
	Notes           *string    `json:"notes"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	CancelledReason *string    `json:"cancelled_reason"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

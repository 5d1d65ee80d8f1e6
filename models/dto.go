package models

import (
	"time"
)

// Response DTOs. API payloads use camelCase keys and the client-facing
// status labels; dates are YYYY-MM-DD and instants are ISO-8601.

type ClientInfo struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type ServiceInfo struct {
	ID         uint     `json:"id"`
	ExternalID string   `json:"externalId"`
	Name       string   `json:"name"`
	Duration   int      `json:"duration"`
	Price      *float64 `json:"price"`
}

type ProfessionalInfo struct {
	ID         uint   `json:"id"`
	ExternalID string `json:"externalId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

type AppointmentResponse struct {
	ID           uint             `json:"id"`
	Client       ClientInfo       `json:"client"`
	Service      ServiceInfo      `json:"service"`
	Professional ProfessionalInfo `json:"professional"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`

	Status string   `json:"status"`
	Price  *float64 `json:"price"`
	Notes  *string  `json:"notes"`

	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
	CancelledAt     *string `json:"cancelledAt"`
	CancelledReason *string `json:"cancelledReason"`
	CompletedAt     *string `json:"completedAt"`
}

// NewAppointmentResponse builds the response DTO from an appointment with
// its Client, Service and Professional relations preloaded.
func NewAppointmentResponse(a *Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID: a.ID,
		Client: ClientInfo{
			ID:    a.Client.ID,
			Name:  a.Client.Name,
			Email: a.Client.Email,
			Phone: a.Client.Phone,
		},
		Service: ServiceInfo{
			ID:         a.Service.ID,
			ExternalID: a.Service.ExternalID,
			Name:       a.Service.Name,
			Duration:   a.Service.Duration,
			Price:      a.Service.Price,
		},
		Professional: ProfessionalInfo{
			ID:         a.Professional.ID,
			ExternalID: a.Professional.ExternalID,
			FirstName:  a.Professional.FirstName,
			LastName:   a.Professional.LastName,
		},
		Date:            a.Date.Format("2006-01-02"),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Duration:        a.Duration,
		Status:          a.Status.Label(),
		Price:           a.Price,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.UTC().Format(time.RFC3339),
		CancelledAt:     formatInstant(a.CancelledAt),
		CancelledReason: a.CancelledReason,
		CompletedAt:     formatInstant(a.CompletedAt),
	}
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type PaginatedAppointments struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Pagination   Pagination            `json:"pagination"`
}

// Dashboard DTOs.

type UpcomingAppointment struct {
	AppointmentResponse
	TimeUntil    string `json:"timeUntil"`
	MinutesUntil int    `json:"minutesUntil"`
	IsNext       bool   `json:"isNext"`
	IsUrgent     bool   `json:"isUrgent"`
}

type DayStats struct {
	TotalAppointments int `json:"totalAppointments"`
	Confirmed         int `json:"confirmed"`
	Pending           int `json:"pending"`
	InProgress        int `json:"inProgress"`
	Completed         int `json:"completed"`
	Cancelled         int `json:"cancelled"`
	NoShow            int `json:"noShow"`
	// TotalRevenue covers confirmed plus completed appointments;
	// CollectedRevenue covers non-cancelled appointments already past.
	TotalRevenue     float64 `json:"totalRevenue"`
	CollectedRevenue float64 `json:"collectedRevenue"`
	OccupancyRate    int     `json:"occupancyRate"`
}

type ProfessionalStats struct {
	Professional      ProfessionalInfo     `json:"professional"`
	AppointmentsToday int                  `json:"appointmentsToday"`
	NextAppointment   *AppointmentResponse `json:"nextAppointment"`
	IsAvailable       bool                 `json:"isAvailable"`
	CurrentStatus     string               `json:"currentStatus"`
}

type PopularService struct {
	Service    ServiceInfo `json:"service"`
	Count      int         `json:"count"`
	Percentage int         `json:"percentage"`
}

type BusinessHoursInfo struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsOpen    bool   `json:"isOpen"`
}

type TodayDashboard struct {
	CurrentTime          string                `json:"currentTime"`
	UpcomingAppointments []UpcomingAppointment `json:"upcomingAppointments"`
	DayStats             DayStats              `json:"dayStats"`
	ProfessionalStats    []ProfessionalStats   `json:"professionalStats"`
	PopularServices      []PopularService      `json:"popularServices"`
	BusinessHours        BusinessHoursInfo     `json:"businessHours"`
}

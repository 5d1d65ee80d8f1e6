package models

// Configuration DTOs exchanged with the setup frontend. External ids
// supplied here are the ids callers later use to reference professionals
// and services in booking requests, so save/read must round-trip them.

type BusinessInfo struct {
	AdminName string  `json:"adminName"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Logo      *string `json:"logo"`
}

type ProfessionalConfig struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	BirthDate   string  `json:"birthDate"`
	DNI         string  `json:"dni"`
	Description *string `json:"description"`
}

type DaySchedule struct {
	Enabled   bool   `json:"enabled"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	Duration  int    `json:"duration"`
}

type GlobalSchedule struct {
	OpenTime       string `json:"openTime"`
	CloseTime      string `json:"closeTime"`
	Duration       int    `json:"duration"`
	CustomDuration bool   `json:"customDuration,omitempty"`
}

type ProfessionalScheduleConfig struct {
	UseIndividualSchedule bool                   `json:"useIndividualSchedule"`
	GlobalSchedule        GlobalSchedule         `json:"globalSchedule"`
	Days                  map[string]DaySchedule `json:"days"`
}

type OperatingHoursConfig struct {
	UseIndividualSchedule             bool                                  `json:"useIndividualSchedule"`
	UseIndividualProfessionalSchedule bool                                  `json:"useIndividualProfessionalSchedule"`
	GlobalSchedule                    GlobalSchedule                        `json:"globalSchedule"`
	Days                              map[string]DaySchedule                `json:"days"`
	ProfessionalSchedules             map[string]ProfessionalScheduleConfig `json:"professionalSchedules"`
}

type ServiceConfig struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Duration        int      `json:"duration"`
	Price           *float64 `json:"price"`
	ProfessionalIDs []string `json:"professionalIds"`
}

type BookingPreferencesConfig struct {
	AllowCancellation  bool `json:"allowCancellation"`
	HoursBeforeBooking int  `json:"hoursBeforeBooking"`
	MaxDaysAhead       int  `json:"maxDaysAhead"`
}

type CommunicationConfig struct {
	SendConfirmationEmail bool `json:"sendConfirmationEmail"`
	SendReminderEmail     bool `json:"sendReminderEmail"`
	ReminderHoursBefore   *int `json:"reminderHoursBefore"`
}

type BusinessConfiguration struct {
	BusinessInfo       BusinessInfo             `json:"businessInfo"`
	Professionals      []ProfessionalConfig     `json:"professionals"`
	OperatingHours     OperatingHoursConfig     `json:"operatingHours"`
	Services           []ServiceConfig          `json:"services"`
	BookingPreferences BookingPreferencesConfig `json:"bookingPreferences"`
	Communication      CommunicationConfig      `json:"communication"`
}

// DefaultDaySchedule is the placeholder returned for weekdays the tenant
// never configured.
func DefaultDaySchedule() DaySchedule {
	return DaySchedule{
		Enabled:   false,
		OpenTime:  "09:00",
		CloseTime: "18:00",
		Duration:  30,
	}
}

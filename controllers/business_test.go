package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"turnos-backend/db"
	"turnos-backend/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

// swapDB points the package-level connection at a mock for one test.
func swapDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	gdb, mock := newMockDB(t)
	orig := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = orig })
	return mock
}

// runAuthed invokes a handler as user 7, the way the auth middleware
// would after a valid token.
func runAuthed(t *testing.T, handler fiber.Handler) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return handler(c)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	return resp
}

func TestGlobalScheduleOf(t *testing.T) {
	assert.Equal(t,
		models.GlobalSchedule{OpenTime: "09:00", CloseTime: "18:00", Duration: 30},
		globalScheduleOf(nil, nil, nil))

	open, closeTime, duration := "07:30", "22:00", 15
	assert.Equal(t,
		models.GlobalSchedule{OpenTime: "07:30", CloseTime: "22:00", Duration: 15},
		globalScheduleOf(&open, &closeTime, &duration))

	empty := ""
	assert.Equal(t, "09:00", globalScheduleOf(&empty, nil, nil).OpenTime,
		"empty string falls back like nil")
}

func TestDaysConfig(t *testing.T) {
	days := daysConfig([]models.OperatingHours{
		{DayOfWeek: "monday", Enabled: true, OpenTime: "08:00", CloseTime: "16:00", Duration: 20},
	})
	require.Len(t, days, 7, "every weekday must be present")

	assert.Equal(t,
		models.DaySchedule{Enabled: true, OpenTime: "08:00", CloseTime: "16:00", Duration: 20},
		days["monday"])
	for _, day := range models.DaysOfWeek[1:] {
		assert.Equal(t, models.DefaultDaySchedule(), days[day], day)
	}
}

func TestProfessionalDaysConfig(t *testing.T) {
	days := professionalDaysConfig([]models.ProfessionalSchedule{
		{DayOfWeek: "saturday", Enabled: true, OpenTime: "12:00", CloseTime: "21:00", Duration: 60},
	})
	require.Len(t, days, 7)

	assert.Equal(t,
		models.DaySchedule{Enabled: true, OpenTime: "12:00", CloseTime: "21:00", Duration: 60},
		days["saturday"])
	assert.Equal(t, models.DefaultDaySchedule(), days["monday"])
}

func configurationFixture() models.BusinessConfiguration {
	price := 1500.0
	description := "Colorista"
	reminder := 48
	return models.BusinessConfiguration{
		BusinessInfo: models.BusinessInfo{
			AdminName: "Carla",
			Name:      "Estudio Sol",
			Phone:     "11-5555-0000",
			Address:   "Av. Siempreviva 742",
			City:      "Córdoba",
			Province:  "Córdoba",
		},
		Professionals: []models.ProfessionalConfig{
			{ID: "prof-1", FirstName: "Ana", LastName: "García", BirthDate: "1990-05-10", DNI: "30111222"},
			{ID: "prof-2", FirstName: "Luis", LastName: "Pérez", Description: &description},
		},
		OperatingHours: models.OperatingHoursConfig{
			UseIndividualSchedule: true,
			GlobalSchedule:        models.GlobalSchedule{OpenTime: "08:00", CloseTime: "20:00", Duration: 45},
			Days: map[string]models.DaySchedule{
				"monday": {Enabled: true, OpenTime: "08:00", CloseTime: "20:00", Duration: 45},
				"friday": {Enabled: true, OpenTime: "10:00", CloseTime: "16:00", Duration: 30},
			},
			ProfessionalSchedules: map[string]models.ProfessionalScheduleConfig{
				"prof-2": {
					UseIndividualSchedule: true,
					GlobalSchedule:        models.GlobalSchedule{OpenTime: "12:00", CloseTime: "21:00", Duration: 60},
					Days: map[string]models.DaySchedule{
						"saturday": {Enabled: true, OpenTime: "12:00", CloseTime: "21:00", Duration: 60},
					},
				},
			},
		},
		Services: []models.ServiceConfig{
			{ID: "svc-1", Name: "Corte", Duration: 30, Price: &price, ProfessionalIDs: []string{"prof-1", "prof-2"}},
			{ID: "svc-2", Name: "Color", Duration: 90, ProfessionalIDs: []string{"prof-2"}},
		},
		BookingPreferences: models.BookingPreferencesConfig{
			AllowCancellation:  false,
			HoursBeforeBooking: 12,
			MaxDaysAhead:       60,
		},
		Communication: models.CommunicationConfig{
			SendConfirmationEmail: true,
			SendReminderEmail:     true,
			ReminderHoursBefore:   &reminder,
		},
	}
}

// Saving a configuration and reading it back must yield the same
// professionals, services and schedules. The test drives the same pure
// mapping both writes and reads go through.
func TestConfigurationRoundTrip(t *testing.T) {
	config := configurationFixture()

	business := models.Business{ID: 1, UserID: 7}
	applyBusinessInfo(&business, &config)

	for _, pc := range config.Professionals {
		business.Professionals = append(business.Professionals,
			professionalFromConfig(business.ID, pc, config.OperatingHours.ProfessionalSchedules))
	}
	byExternalID := make(map[string]*models.Professional, len(business.Professionals))
	for i := range business.Professionals {
		byExternalID[business.Professionals[i].ExternalID] = &business.Professionals[i]
	}
	for _, sc := range config.Services {
		business.Services = append(business.Services, serviceFromConfig(business.ID, sc, byExternalID))
	}
	business.OperatingHours = operatingHoursFromConfig(business.ID, config.OperatingHours.Days)
	preferences := bookingPreferencesFromConfig(business.ID, config.BookingPreferences)
	business.BookingPreferences = &preferences
	settings := communicationSettingsFromConfig(business.ID, config.Communication)
	business.CommunicationSettings = &settings

	got := buildConfiguration(&business)

	assert.Equal(t, config.BusinessInfo, got.BusinessInfo)
	assert.Equal(t, config.Professionals, got.Professionals)
	assert.Equal(t, config.Services, got.Services)
	assert.Equal(t, config.BookingPreferences, got.BookingPreferences)
	assert.Equal(t, config.Communication, got.Communication)

	assert.Equal(t, config.OperatingHours.UseIndividualSchedule, got.OperatingHours.UseIndividualSchedule)
	assert.Equal(t, config.OperatingHours.GlobalSchedule, got.OperatingHours.GlobalSchedule)

	require.Len(t, got.OperatingHours.Days, 7)
	assert.Equal(t, config.OperatingHours.Days["monday"], got.OperatingHours.Days["monday"])
	assert.Equal(t, config.OperatingHours.Days["friday"], got.OperatingHours.Days["friday"])
	assert.Equal(t, models.DefaultDaySchedule(), got.OperatingHours.Days["tuesday"],
		"unsaved weekdays come back as defaults")

	require.Contains(t, got.OperatingHours.ProfessionalSchedules, "prof-2")
	assert.NotContains(t, got.OperatingHours.ProfessionalSchedules, "prof-1",
		"professionals without individual schedules are omitted")

	sched := got.OperatingHours.ProfessionalSchedules["prof-2"]
	assert.True(t, sched.UseIndividualSchedule)
	assert.Equal(t, config.OperatingHours.ProfessionalSchedules["prof-2"].GlobalSchedule, sched.GlobalSchedule)
	assert.Equal(t,
		config.OperatingHours.ProfessionalSchedules["prof-2"].Days["saturday"],
		sched.Days["saturday"])
	assert.Equal(t, models.DefaultDaySchedule(), sched.Days["monday"])
}

func TestBuildConfigurationDefaults(t *testing.T) {
	got := buildConfiguration(&models.Business{})

	assert.Equal(t,
		models.GlobalSchedule{OpenTime: "09:00", CloseTime: "18:00", Duration: 30},
		got.OperatingHours.GlobalSchedule)
	require.Len(t, got.OperatingHours.Days, 7)
	for _, day := range models.DaysOfWeek {
		assert.Equal(t, models.DefaultDaySchedule(), got.OperatingHours.Days[day], day)
	}

	assert.Equal(t,
		models.BookingPreferencesConfig{AllowCancellation: true, HoursBeforeBooking: 24, MaxDaysAhead: 30},
		got.BookingPreferences)

	assert.True(t, got.Communication.SendConfirmationEmail)
	assert.True(t, got.Communication.SendReminderEmail)
	require.NotNil(t, got.Communication.ReminderHoursBefore)
	assert.Equal(t, 24, *got.Communication.ReminderHoursBefore)

	assert.Empty(t, got.Professionals)
	assert.Empty(t, got.Services)
}

func TestGetConfigurationStorageFailure(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT \* FROM "businesses"`).
		WillReturnError(errors.New("connection refused"))

	resp := runAuthed(t, GetConfiguration)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetConfigurationBusinessMissing(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT \* FROM "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := runAuthed(t, GetConfiguration)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

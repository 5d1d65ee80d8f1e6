package controllers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turnos-backend/models"
)

var (
	testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)  // a Friday
	testNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC) // 14:00
)

func priceOf(v float64) *float64 { return &v }

func testAppointment(id, professionalID, serviceID uint, start, end string, status models.AppointmentStatus, price *float64) models.Appointment {
	return models.Appointment{
		ID:             id,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           testDay,
		StartTime:      start,
		EndTime:        end,
		Status:         status,
		Price:          price,
	}
}

// The fixture day at 14:00: one completed morning slot, one cancelled
// slot, one in progress right now, and two future bookings.
func testDayAppointments() []models.Appointment {
	return []models.Appointment{
		testAppointment(1, 1, 1, "09:00", "09:30", models.StatusCompleted, priceOf(100)),
		testAppointment(2, 2, 1, "10:00", "10:30", models.StatusCancelled, priceOf(50)),
		testAppointment(3, 2, 2, "13:45", "14:15", models.StatusInProgress, nil),
		testAppointment(4, 1, 1, "14:30", "15:00", models.StatusConfirmed, priceOf(100)),
		testAppointment(5, 2, 2, "16:00", "16:30", models.StatusConfirmed, priceOf(100)),
	}
}

func TestBuildUpcoming(t *testing.T) {
	upcoming := buildUpcoming(testDayAppointments(), testNow)

	require.Len(t, upcoming, 2, "only future, still-live appointments qualify")

	assert.Equal(t, uint(4), upcoming[0].ID)
	assert.Equal(t, 30, upcoming[0].MinutesUntil)
	assert.True(t, upcoming[0].IsNext)
	assert.True(t, upcoming[0].IsUrgent)
	assert.Equal(t, "En 30 min", upcoming[0].TimeUntil)

	assert.Equal(t, uint(5), upcoming[1].ID)
	assert.Equal(t, 120, upcoming[1].MinutesUntil)
	assert.False(t, upcoming[1].IsNext)
	assert.False(t, upcoming[1].IsUrgent)
	assert.Equal(t, "En 2h", upcoming[1].TimeUntil)
}

func TestBuildUpcomingEmpty(t *testing.T) {
	appointments := []models.Appointment{
		testAppointment(1, 1, 1, "09:00", "09:30", models.StatusCompleted, nil),
		testAppointment(2, 1, 1, "16:00", "16:30", models.StatusCancelled, nil),
	}
	assert.Empty(t, buildUpcoming(appointments, testNow))
}

func TestBuildDayStats(t *testing.T) {
	appointments := testDayAppointments()
	// the service price was raised after these were booked; revenue keeps
	// the booking-time snapshot
	for i := range appointments {
		appointments[i].Service.Price = priceOf(999)
	}
	stats := buildDayStats(appointments, 2, testNow)

	assert.Equal(t, 5, stats.TotalAppointments)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 0, stats.NoShow)

	// confirmed (100 + 100) plus completed (100); the cancelled slot's
	// price never counts
	assert.Equal(t, 300.0, stats.TotalRevenue)
	// only the completed morning slot has already ended
	assert.Equal(t, 100.0, stats.CollectedRevenue)

	// 4 occupied of 9h * 2 slots * 2 professionals = 36
	assert.Equal(t, 11, stats.OccupancyRate)
}

func TestBuildDayStatsNoProfessionals(t *testing.T) {
	stats := buildDayStats(nil, 0, testNow)
	assert.Equal(t, 0, stats.OccupancyRate)
	assert.Equal(t, 0, stats.TotalAppointments)
}

func TestGetTodayDashboardStorageFailure(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT \* FROM "businesses"`).
		WillReturnError(errors.New("connection refused"))

	resp := runAuthed(t, GetTodayDashboard)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetTodayDashboardBusinessMissing(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT \* FROM "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := runAuthed(t, GetTodayDashboard)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBuildProfessionalStats(t *testing.T) {
	professionals := []models.Professional{
		{ID: 1, ExternalID: "prof-1", FirstName: "Ana", LastName: "García"},
		{ID: 2, ExternalID: "prof-2", FirstName: "Luis", LastName: "Pérez"},
	}

	stats := buildProfessionalStats(testDayAppointments(), professionals, testNow)
	require.Len(t, stats, 2)

	ana := stats[0]
	assert.Equal(t, "prof-1", ana.Professional.ExternalID)
	assert.Equal(t, 2, ana.AppointmentsToday, "cancelled slots do not count")
	assert.True(t, ana.IsAvailable)
	assert.Equal(t, "available", ana.CurrentStatus)
	require.NotNil(t, ana.NextAppointment)
	assert.Equal(t, uint(4), ana.NextAppointment.ID)

	luis := stats[1]
	assert.Equal(t, 2, luis.AppointmentsToday)
	assert.False(t, luis.IsAvailable, "mid-slot at 14:00")
	assert.Equal(t, "busy", luis.CurrentStatus)
	require.NotNil(t, luis.NextAppointment)
	assert.Equal(t, uint(5), luis.NextAppointment.ID)
}

func TestBuildPopularServices(t *testing.T) {
	services := []models.Service{
		{ID: 1, ExternalID: "svc-1", Name: "Corte", Duration: 30},
		{ID: 2, ExternalID: "svc-2", Name: "Color", Duration: 90},
		{ID: 3, ExternalID: "svc-3", Name: "Peinado", Duration: 45},
	}

	popular := buildPopularServices(testDayAppointments(), services)
	require.Len(t, popular, 2, "services without bookings are omitted")

	for _, entry := range popular {
		assert.Equal(t, 2, entry.Count)
		assert.Equal(t, 50, entry.Percentage)
	}
	assert.Equal(t, "svc-1", popular[0].Service.ExternalID)
	assert.Equal(t, "svc-2", popular[1].Service.ExternalID)
}

func TestBuildPopularServicesTopThree(t *testing.T) {
	services := []models.Service{
		{ID: 1, ExternalID: "svc-1"},
		{ID: 2, ExternalID: "svc-2"},
		{ID: 3, ExternalID: "svc-3"},
		{ID: 4, ExternalID: "svc-4"},
	}
	var appointments []models.Appointment
	id := uint(1)
	for serviceID, count := range map[uint]int{1: 4, 2: 3, 3: 2, 4: 1} {
		for i := 0; i < count; i++ {
			appointments = append(appointments, testAppointment(id, 1, serviceID, "09:00", "09:30", models.StatusConfirmed, nil))
			id++
		}
	}

	popular := buildPopularServices(appointments, services)
	require.Len(t, popular, 3)
	assert.Equal(t, 4, popular[0].Count)
	assert.Equal(t, 3, popular[1].Count)
	assert.Equal(t, 2, popular[2].Count)
}

func TestBuildBusinessHours(t *testing.T) {
	open, closeTime := "08:00", "20:00"

	t.Run("weekday row wins over global", func(t *testing.T) {
		business := models.Business{
			GlobalOpenTime:  &open,
			GlobalCloseTime: &closeTime,
			OperatingHours: []models.OperatingHours{
				{DayOfWeek: "friday", Enabled: true, OpenTime: "10:00", CloseTime: "19:00"},
				{DayOfWeek: "saturday", Enabled: true, OpenTime: "09:00", CloseTime: "13:00"},
			},
		}
		hours := buildBusinessHours(&business, testNow)
		assert.Equal(t, "10:00", hours.OpenTime)
		assert.Equal(t, "19:00", hours.CloseTime)
		assert.True(t, hours.IsOpen)
	})

	t.Run("disabled weekday falls back to global", func(t *testing.T) {
		business := models.Business{
			GlobalOpenTime:  &open,
			GlobalCloseTime: &closeTime,
			OperatingHours: []models.OperatingHours{
				{DayOfWeek: "friday", Enabled: false, OpenTime: "10:00", CloseTime: "19:00"},
			},
		}
		hours := buildBusinessHours(&business, testNow)
		assert.Equal(t, "08:00", hours.OpenTime)
		assert.Equal(t, "20:00", hours.CloseTime)
	})

	t.Run("defaults when nothing configured", func(t *testing.T) {
		hours := buildBusinessHours(&models.Business{}, testNow)
		assert.Equal(t, "09:00", hours.OpenTime)
		assert.Equal(t, "18:00", hours.CloseTime)
		assert.True(t, hours.IsOpen)
	})

	t.Run("closing minute is closed", func(t *testing.T) {
		atClose := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
		hours := buildBusinessHours(&models.Business{}, atClose)
		assert.False(t, hours.IsOpen)
	})

	t.Run("opening minute is open", func(t *testing.T) {
		atOpen := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
		hours := buildBusinessHours(&models.Business{}, atOpen)
		assert.True(t, hours.IsOpen)
	})
}

package controllers

import (
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"turnos-backend/db"
	"turnos-backend/models"
	"turnos-backend/utils"
)

// urgentThresholdMinutes marks upcoming appointments that start soon.
const urgentThresholdMinutes = 30

// GetTodayDashboard assembles the "today" view: upcoming appointments,
// day statistics, per-professional status, popular services and the
// business hours for the current weekday.
func GetTodayDashboard(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var business models.Business
	err := db.DB.Preload("OperatingHours").
		Where("user_id = ?", userID).
		First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainError(c, utils.ErrBusinessNotFound)
	}
	if err != nil {
		log.Printf("dashboard: failed to load business for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener el dashboard",
		})
	}

	now := time.Now()
	dayStart, dayEnd := utils.TodayRange(now)

	var appointments []models.Appointment
	err = withRelations(db.DB).
		Where("business_id = ? AND date >= ? AND date <= ?", business.ID, dayStart, dayEnd).
		Order("start_time asc").
		Find(&appointments).Error
	if err != nil {
		log.Printf("dashboard: failed to load appointments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener el dashboard",
		})
	}

	var professionals []models.Professional
	if err := db.DB.Where("business_id = ?", business.ID).Find(&professionals).Error; err != nil {
		log.Printf("dashboard: failed to load professionals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener el dashboard",
		})
	}

	var services []models.Service
	if err := db.DB.Where("business_id = ?", business.ID).Find(&services).Error; err != nil {
		log.Printf("dashboard: failed to load services: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener el dashboard",
		})
	}

	dashboard := models.TodayDashboard{
		CurrentTime:          now.UTC().Format(time.RFC3339),
		UpcomingAppointments: buildUpcoming(appointments, now),
		DayStats:             buildDayStats(appointments, len(professionals), now),
		ProfessionalStats:    buildProfessionalStats(appointments, professionals, now),
		PopularServices:      buildPopularServices(appointments, services),
		BusinessHours:        buildBusinessHours(&business, now),
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dashboard,
	})
}

// startInstant anchors an appointment's HH:mm on its calendar date.
func startInstant(a *models.Appointment) time.Time {
	return utils.CombineDateTime(a.Date, a.StartTime)
}

func endInstant(a *models.Appointment) time.Time {
	return utils.CombineDateTime(a.Date, a.EndTime)
}

// buildUpcoming keeps strictly future appointments that are still live
// (not cancelled or completed), soonest first. The first one is flagged
// as next; anything starting within the urgency threshold is urgent.
func buildUpcoming(appointments []models.Appointment, now time.Time) []models.UpcomingAppointment {
	upcoming := make([]models.UpcomingAppointment, 0)
	for i := range appointments {
		a := &appointments[i]
		if a.Status == models.StatusCancelled || a.Status == models.StatusCompleted {
			continue
		}
		start := startInstant(a)
		if !start.After(now) {
			continue
		}
		minutesUntil := int(start.Sub(now) / time.Minute)
		upcoming = append(upcoming, models.UpcomingAppointment{
			AppointmentResponse: models.NewAppointmentResponse(a),
			TimeUntil:           utils.FormatTimeUntil(minutesUntil),
			MinutesUntil:        minutesUntil,
			IsUrgent:            minutesUntil <= urgentThresholdMinutes,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].MinutesUntil < upcoming[j].MinutesUntil
	})
	if len(upcoming) > 0 {
		upcoming[0].IsNext = true
	}
	return upcoming
}

// buildDayStats aggregates counts and revenue for today. Total revenue
// counts confirmed and completed bookings; collected revenue counts
// everything non-cancelled whose slot already ended.
func buildDayStats(appointments []models.Appointment, professionalCount int, now time.Time) models.DayStats {
	stats := models.DayStats{TotalAppointments: len(appointments)}

	occupied := 0
	for i := range appointments {
		a := &appointments[i]
		price := 0.0
		if a.Price != nil {
			price = *a.Price
		}

		switch a.Status {
		case models.StatusConfirmed:
			stats.Confirmed++
			stats.TotalRevenue += price
		case models.StatusCompleted:
			stats.Completed++
			stats.TotalRevenue += price
		case models.StatusPending:
			stats.Pending++
		case models.StatusCancelled:
			stats.Cancelled++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusNoShow:
			stats.NoShow++
		}

		if a.Status != models.StatusCancelled {
			occupied++
			if endInstant(a).Before(now) {
				stats.CollectedRevenue += price
			}
		}
	}

	// Rough capacity model: a nine hour day at two slots per hour per
	// professional.
	totalSlots := 9 * 2 * professionalCount
	if totalSlots > 0 {
		stats.OccupancyRate = int(math.Round(float64(occupied) / float64(totalSlots) * 100))
	}
	return stats
}

// buildProfessionalStats reports, per professional, today's workload,
// the next future appointment, and whether they are in a slot right now.
func buildProfessionalStats(appointments []models.Appointment, professionals []models.Professional, now time.Time) []models.ProfessionalStats {
	stats := make([]models.ProfessionalStats, 0, len(professionals))
	for i := range professionals {
		p := &professionals[i]
		entry := models.ProfessionalStats{
			Professional: models.ProfessionalInfo{
				ID:         p.ID,
				ExternalID: p.ExternalID,
				FirstName:  p.FirstName,
				LastName:   p.LastName,
			},
			IsAvailable:   true,
			CurrentStatus: "available",
		}

		var next *models.Appointment
		for j := range appointments {
			a := &appointments[j]
			if a.ProfessionalID != p.ID || a.Status == models.StatusCancelled {
				continue
			}
			entry.AppointmentsToday++

			start := startInstant(a)
			end := endInstant(a)
			if !start.After(now) && end.After(now) {
				entry.IsAvailable = false
				entry.CurrentStatus = "busy"
			}
			if start.After(now) && (next == nil || start.Before(startInstant(next))) {
				next = a
			}
		}
		if next != nil {
			resp := models.NewAppointmentResponse(next)
			entry.NextAppointment = &resp
		}
		stats = append(stats, entry)
	}
	return stats
}

// buildPopularServices ranks today's top three services by non-cancelled
// bookings. Services without bookings are left out.
func buildPopularServices(appointments []models.Appointment, services []models.Service) []models.PopularService {
	counts := make(map[uint]int)
	total := 0
	for i := range appointments {
		a := &appointments[i]
		if a.Status == models.StatusCancelled {
			continue
		}
		counts[a.ServiceID]++
		total++
	}

	popular := make([]models.PopularService, 0, len(services))
	for i := range services {
		s := &services[i]
		count := counts[s.ID]
		if count == 0 {
			continue
		}
		popular = append(popular, models.PopularService{
			Service: models.ServiceInfo{
				ID:         s.ID,
				ExternalID: s.ExternalID,
				Name:       s.Name,
				Duration:   s.Duration,
				Price:      s.Price,
			},
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}

	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Count > popular[j].Count
	})
	if len(popular) > 3 {
		popular = popular[:3]
	}
	return popular
}

// buildBusinessHours resolves today's opening hours: the enabled weekday
// row wins, then the business-wide schedule, then 09:00-18:00. Open is
// half-open on the closing minute.
func buildBusinessHours(business *models.Business, now time.Time) models.BusinessHoursInfo {
	openTime, closeTime := "09:00", "18:00"

	if business.GlobalOpenTime != nil && business.GlobalCloseTime != nil {
		openTime = *business.GlobalOpenTime
		closeTime = *business.GlobalCloseTime
	}

	today := models.WeekdayKey(now.Weekday())
	for i := range business.OperatingHours {
		h := &business.OperatingHours[i]
		if h.DayOfWeek == today && h.Enabled {
			openTime = h.OpenTime
			closeTime = h.CloseTime
			break
		}
	}

	minute := now.Hour()*60 + now.Minute()
	return models.BusinessHoursInfo{
		OpenTime:  openTime,
		CloseTime: closeTime,
		IsOpen:    minute >= utils.MinuteOfDay(openTime) && minute < utils.MinuteOfDay(closeTime),
	}
}

package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"turnos-backend/db"
	"turnos-backend/models"
	"turnos-backend/utils"
)

// StartCronJobs launches the background scheduler. Currently it runs the
// appointment reminder job once per minute.
func StartCronJobs() {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", func() {
		if err := sendDueReminders(time.Now()); err != nil {
			log.Printf("cron: reminder job failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("cron: failed to register reminder job: %v", err)
	}

	c.Start()
	log.Println("✅ Cron jobs started")
}

// sendDueReminders mails clients whose appointment starts exactly the
// configured number of hours from now. Matching on the minute means each
// appointment is picked up by a single tick, so no reminder repeats.
func sendDueReminders(now time.Time) error {
	var settings []models.CommunicationSettings
	err := db.DB.Where("send_reminder_email = ?", true).Find(&settings).Error
	if err != nil {
		return err
	}

	for i := range settings {
		s := &settings[i]
		hours := s.ReminderHoursBefore
		if hours <= 0 {
			hours = 24
		}
		target := now.Add(time.Duration(hours) * time.Hour)

		var business models.Business
		if err := db.DB.First(&business, s.BusinessID).Error; err != nil {
			continue
		}

		var appointments []models.Appointment
		err := db.DB.Preload("Client").Preload("Service").
			Where("business_id = ? AND date = ? AND start_time = ? AND status IN ?",
				s.BusinessID,
				target.Format("2006-01-02"),
				target.Format("15:04"),
				[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Find(&appointments).Error
		if err != nil {
			log.Printf("cron: failed to load reminders for business %d: %v", s.BusinessID, err)
			continue
		}

		for j := range appointments {
			a := &appointments[j]
			if a.Client.Email == nil || *a.Client.Email == "" {
				continue
			}
			err := utils.SendBookingReminderEmail(
				*a.Client.Email,
				a.Client.Name,
				business.Name,
				a.Service.Name,
				a.Date.Format("2006-01-02"),
				a.StartTime,
			)
			if err != nil {
				log.Printf("cron: failed to send reminder for appointment %d: %v", a.ID, err)
			}
		}
	}
	return nil
}

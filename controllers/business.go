package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"turnos-backend/db"
	"turnos-backend/models"
	"turnos-backend/utils"
)

// saveConfigurationTimeout bounds the full replace-and-recreate write.
const saveConfigurationTimeout = 15 * time.Second

// SaveConfiguration persists the whole setup wizard payload. The write is
// destructive on purpose: existing professionals, services, schedules and
// preferences are dropped and recreated from the payload inside a single
// transaction, so the stored configuration always mirrors the last save.
func SaveConfiguration(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var config models.BusinessConfiguration
	if err := c.BodyParser(&config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if config.BusinessInfo.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "El nombre del negocio es requerido",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), saveConfigurationTimeout)
	defer cancel()

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var business models.Business
		err := tx.Where("user_id = ?", userID).First(&business).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		business.UserID = userID
		applyBusinessInfo(&business, &config)
		if err := tx.Save(&business).Error; err != nil {
			return err
		}

		if err := clearConfiguration(tx, business.ID); err != nil {
			return err
		}

		// Professionals, keyed by external id so services can link to them.
		byExternalID := make(map[string]*models.Professional, len(config.Professionals))
		for _, pc := range config.Professionals {
			professional := professionalFromConfig(business.ID, pc, config.OperatingHours.ProfessionalSchedules)
			if err := tx.Create(&professional).Error; err != nil {
				return err
			}
			byExternalID[pc.ID] = &professional
		}

		for _, hours := range operatingHoursFromConfig(business.ID, config.OperatingHours.Days) {
			if err := tx.Create(&hours).Error; err != nil {
				return err
			}
		}

		for _, sc := range config.Services {
			service := serviceFromConfig(business.ID, sc, byExternalID)
			if err := tx.Create(&service).Error; err != nil {
				return err
			}
		}

		preferences := bookingPreferencesFromConfig(business.ID, config.BookingPreferences)
		if err := tx.Create(&preferences).Error; err != nil {
			return err
		}

		settings := communicationSettingsFromConfig(business.ID, config.Communication)
		return tx.Create(&settings).Error
	})
	if err != nil {
		log.Printf("business: failed to save configuration for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al guardar la configuración",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Configuración guardada exitosamente",
	})
}

// clearConfiguration deletes the configurable entities of a business.
// Join rows and child schedules go first so no foreign key dangles.
func clearConfiguration(tx *gorm.DB, businessID uint) error {
	steps := []struct {
		sql  string
		args []interface{}
	}{
		{"DELETE FROM service_professionals WHERE service_id IN (SELECT id FROM services WHERE business_id = ?)", []interface{}{businessID}},
		{"DELETE FROM services WHERE business_id = ?", []interface{}{businessID}},
		{"DELETE FROM professional_schedules WHERE professional_id IN (SELECT id FROM professionals WHERE business_id = ?)", []interface{}{businessID}},
		{"DELETE FROM professionals WHERE business_id = ?", []interface{}{businessID}},
		{"DELETE FROM operating_hours WHERE business_id = ?", []interface{}{businessID}},
		{"DELETE FROM booking_preferences WHERE business_id = ?", []interface{}{businessID}},
		{"DELETE FROM communication_settings WHERE business_id = ?", []interface{}{businessID}},
	}
	for _, step := range steps {
		if err := tx.Exec(step.sql, step.args...).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyBusinessInfo copies the payload's scalar fields onto the business
// record. An absent logo keeps whatever was uploaded before.
func applyBusinessInfo(business *models.Business, config *models.BusinessConfiguration) {
	global := config.OperatingHours.GlobalSchedule
	business.Name = config.BusinessInfo.Name
	business.AdminName = config.BusinessInfo.AdminName
	business.Phone = config.BusinessInfo.Phone
	business.Address = config.BusinessInfo.Address
	business.City = config.BusinessInfo.City
	business.Province = config.BusinessInfo.Province
	business.UseIndividualSchedule = config.OperatingHours.UseIndividualSchedule
	business.UseIndividualProfessionalSchedule = config.OperatingHours.UseIndividualProfessionalSchedule
	business.GlobalOpenTime = &global.OpenTime
	business.GlobalCloseTime = &global.CloseTime
	business.GlobalDuration = &global.Duration
	if config.BusinessInfo.Logo != nil {
		business.Logo = config.BusinessInfo.Logo
	}
}

// professionalFromConfig builds a professional record, attaching the
// individual schedule when the payload carries one for its external id.
func professionalFromConfig(businessID uint, pc models.ProfessionalConfig, schedules map[string]models.ProfessionalScheduleConfig) models.Professional {
	birthDate, _ := time.Parse("2006-01-02", pc.BirthDate)
	professional := models.Professional{
		BusinessID:  businessID,
		ExternalID:  pc.ID,
		FirstName:   pc.FirstName,
		LastName:    pc.LastName,
		BirthDate:   birthDate,
		DNI:         pc.DNI,
		Description: pc.Description,
	}
	if sched, ok := schedules[pc.ID]; ok {
		professional.UseIndividualSchedule = sched.UseIndividualSchedule
		professional.GlobalOpenTime = &sched.GlobalSchedule.OpenTime
		professional.GlobalCloseTime = &sched.GlobalSchedule.CloseTime
		professional.GlobalDuration = &sched.GlobalSchedule.Duration
		for _, day := range models.DaysOfWeek {
			if ds, ok := sched.Days[day]; ok {
				professional.Schedules = append(professional.Schedules, models.ProfessionalSchedule{
					DayOfWeek: day,
					Enabled:   ds.Enabled,
					OpenTime:  ds.OpenTime,
					CloseTime: ds.CloseTime,
					Duration:  ds.Duration,
				})
			}
		}
	}
	return professional
}

// operatingHoursFromConfig converts the payload's weekday map into rows,
// in schedule order, skipping days the payload omits.
func operatingHoursFromConfig(businessID uint, days map[string]models.DaySchedule) []models.OperatingHours {
	hours := make([]models.OperatingHours, 0, len(days))
	for _, day := range models.DaysOfWeek {
		ds, ok := days[day]
		if !ok {
			continue
		}
		hours = append(hours, models.OperatingHours{
			BusinessID: businessID,
			DayOfWeek:  day,
			Enabled:    ds.Enabled,
			OpenTime:   ds.OpenTime,
			CloseTime:  ds.CloseTime,
			Duration:   ds.Duration,
		})
	}
	return hours
}

// serviceFromConfig builds a service record linked to the professionals
// whose external ids the payload names. Unknown ids are skipped.
func serviceFromConfig(businessID uint, sc models.ServiceConfig, byExternalID map[string]*models.Professional) models.Service {
	service := models.Service{
		BusinessID: businessID,
		ExternalID: sc.ID,
		Name:       sc.Name,
		Duration:   sc.Duration,
		Price:      sc.Price,
	}
	for _, pid := range sc.ProfessionalIDs {
		if professional, ok := byExternalID[pid]; ok {
			service.Professionals = append(service.Professionals, *professional)
		}
	}
	return service
}

func bookingPreferencesFromConfig(businessID uint, config models.BookingPreferencesConfig) models.BookingPreferences {
	return models.BookingPreferences{
		BusinessID:         businessID,
		AllowCancellation:  config.AllowCancellation,
		HoursBeforeBooking: config.HoursBeforeBooking,
		MaxDaysAhead:       config.MaxDaysAhead,
	}
}

func communicationSettingsFromConfig(businessID uint, config models.CommunicationConfig) models.CommunicationSettings {
	reminderHours := 24
	if config.ReminderHoursBefore != nil {
		reminderHours = *config.ReminderHoursBefore
	}
	return models.CommunicationSettings{
		BusinessID:            businessID,
		SendConfirmationEmail: config.SendConfirmationEmail,
		SendReminderEmail:     config.SendReminderEmail,
		ReminderHoursBefore:   reminderHours,
	}
}

// GetConfiguration returns the stored configuration in the same shape the
// save endpoint accepts. Weekdays or preferences never configured come
// back with defaults so the frontend always has a complete form.
func GetConfiguration(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var business models.Business
	err := db.DB.
		Preload("Professionals.Schedules").
		Preload("Services.Professionals").
		Preload("OperatingHours").
		Preload("BookingPreferences").
		Preload("CommunicationSettings").
		Where("user_id = ?", userID).
		First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainError(c, utils.ErrBusinessNotFound)
	}
	if err != nil {
		log.Printf("business: failed to load configuration for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener la configuración",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   buildConfiguration(&business),
	})
}

// buildConfiguration renders a loaded business back into the payload
// shape the save endpoint accepts.
func buildConfiguration(business *models.Business) models.BusinessConfiguration {
	config := models.BusinessConfiguration{
		BusinessInfo: models.BusinessInfo{
			AdminName: business.AdminName,
			Name:      business.Name,
			Phone:     business.Phone,
			Address:   business.Address,
			City:      business.City,
			Province:  business.Province,
			Logo:      business.Logo,
		},
		OperatingHours: models.OperatingHoursConfig{
			UseIndividualSchedule:             business.UseIndividualSchedule,
			UseIndividualProfessionalSchedule: business.UseIndividualProfessionalSchedule,
			GlobalSchedule:                    globalScheduleOf(business.GlobalOpenTime, business.GlobalCloseTime, business.GlobalDuration),
			Days:                              daysConfig(business.OperatingHours),
			ProfessionalSchedules:             map[string]models.ProfessionalScheduleConfig{},
		},
		Professionals: make([]models.ProfessionalConfig, 0, len(business.Professionals)),
		Services:      make([]models.ServiceConfig, 0, len(business.Services)),
	}

	for i := range business.Professionals {
		p := &business.Professionals[i]
		birthDate := ""
		if !p.BirthDate.IsZero() {
			birthDate = p.BirthDate.Format("2006-01-02")
		}
		config.Professionals = append(config.Professionals, models.ProfessionalConfig{
			ID:          p.ExternalID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			BirthDate:   birthDate,
			DNI:         p.DNI,
			Description: p.Description,
		})
		if p.UseIndividualSchedule || len(p.Schedules) > 0 {
			config.OperatingHours.ProfessionalSchedules[p.ExternalID] = models.ProfessionalScheduleConfig{
				UseIndividualSchedule: p.UseIndividualSchedule,
				GlobalSchedule:        globalScheduleOf(p.GlobalOpenTime, p.GlobalCloseTime, p.GlobalDuration),
				Days:                  professionalDaysConfig(p.Schedules),
			}
		}
	}

	for i := range business.Services {
		s := &business.Services[i]
		professionalIDs := make([]string, 0, len(s.Professionals))
		for j := range s.Professionals {
			professionalIDs = append(professionalIDs, s.Professionals[j].ExternalID)
		}
		config.Services = append(config.Services, models.ServiceConfig{
			ID:              s.ExternalID,
			Name:            s.Name,
			Duration:        s.Duration,
			Price:           s.Price,
			ProfessionalIDs: professionalIDs,
		})
	}

	if business.BookingPreferences != nil {
		config.BookingPreferences = models.BookingPreferencesConfig{
			AllowCancellation:  business.BookingPreferences.AllowCancellation,
			HoursBeforeBooking: business.BookingPreferences.HoursBeforeBooking,
			MaxDaysAhead:       business.BookingPreferences.MaxDaysAhead,
		}
	} else {
		config.BookingPreferences = models.BookingPreferencesConfig{
			AllowCancellation:  true,
			HoursBeforeBooking: 24,
			MaxDaysAhead:       30,
		}
	}

	if business.CommunicationSettings != nil {
		hours := business.CommunicationSettings.ReminderHoursBefore
		config.Communication = models.CommunicationConfig{
			SendConfirmationEmail: business.CommunicationSettings.SendConfirmationEmail,
			SendReminderEmail:     business.CommunicationSettings.SendReminderEmail,
			ReminderHoursBefore:   &hours,
		}
	} else {
		hours := 24
		config.Communication = models.CommunicationConfig{
			SendConfirmationEmail: true,
			SendReminderEmail:     true,
			ReminderHoursBefore:   &hours,
		}
	}

	return config
}

func globalScheduleOf(openTime, closeTime *string, duration *int) models.GlobalSchedule {
	schedule := models.GlobalSchedule{OpenTime: "09:00", CloseTime: "18:00", Duration: 30}
	if openTime != nil && *openTime != "" {
		schedule.OpenTime = *openTime
	}
	if closeTime != nil && *closeTime != "" {
		schedule.CloseTime = *closeTime
	}
	if duration != nil {
		schedule.Duration = *duration
	}
	return schedule
}

// daysConfig maps stored weekday rows onto a full week, defaulting the
// days that were never saved.
func daysConfig(hours []models.OperatingHours) map[string]models.DaySchedule {
	days := make(map[string]models.DaySchedule, len(models.DaysOfWeek))
	for _, day := range models.DaysOfWeek {
		days[day] = models.DefaultDaySchedule()
	}
	for i := range hours {
		h := &hours[i]
		days[h.DayOfWeek] = models.DaySchedule{
			Enabled:   h.Enabled,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			Duration:  h.Duration,
		}
	}
	return days
}

func professionalDaysConfig(schedules []models.ProfessionalSchedule) map[string]models.DaySchedule {
	days := make(map[string]models.DaySchedule, len(models.DaysOfWeek))
	for _, day := range models.DaysOfWeek {
		days[day] = models.DefaultDaySchedule()
	}
	for i := range schedules {
		s := &schedules[i]
		days[s.DayOfWeek] = models.DaySchedule{
			Enabled:   s.Enabled,
			OpenTime:  s.OpenTime,
			CloseTime: s.CloseTime,
			Duration:  s.Duration,
		}
	}
	return days
}

type setupStatus struct {
	HasBusiness       bool `json:"hasBusiness"`
	HasProfessionals  bool `json:"hasProfessionals"`
	HasServices       bool `json:"hasServices"`
	HasOperatingHours bool `json:"hasOperatingHours"`
	IsComplete        bool `json:"isComplete"`
}

// setupStatusForUser reports how far a tenant got through initial setup.
// Also embedded in the login response so the frontend can route straight
// to the wizard.
func setupStatusForUser(userID uint) setupStatus {
	var status setupStatus

	var business models.Business
	if err := db.DB.Where("user_id = ?", userID).First(&business).Error; err != nil {
		return status
	}
	status.HasBusiness = true

	var professionals, services, hours int64
	db.DB.Model(&models.Professional{}).Where("business_id = ?", business.ID).Count(&professionals)
	db.DB.Model(&models.Service{}).Where("business_id = ?", business.ID).Count(&services)
	db.DB.Model(&models.OperatingHours{}).Where("business_id = ? AND enabled = ?", business.ID, true).Count(&hours)

	status.HasProfessionals = professionals > 0
	status.HasServices = services > 0
	status.HasOperatingHours = hours > 0
	status.IsComplete = status.HasBusiness && status.HasProfessionals && status.HasServices && status.HasOperatingHours
	return status
}

// GetSetupStatus exposes the setup progress of the authenticated tenant.
func GetSetupStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   setupStatusForUser(userID),
	})
}

// UploadLogo stores the business logo in Cloudinary and persists the URL.
func UploadLogo(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	business, err := businessForUser(db.DB, userID)
	if err != nil {
		return domainError(c, err)
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "El archivo del logo es requerido",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "No se pudo leer el archivo del logo",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadBusinessLogo(file)
	if err != nil {
		log.Printf("business: failed to upload logo for business %d: %v", business.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al subir el logo",
		})
	}

	if err := db.DB.Model(business).Update("logo", url).Error; err != nil {
		log.Printf("business: failed to persist logo for business %d: %v", business.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al guardar el logo",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"logo": url},
	})
}

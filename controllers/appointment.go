package controllers

import (
	"errors"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"turnos-backend/db"
	"turnos-backend/models"
	"turnos-backend/utils"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// parseAppointmentID validates the :id path parameter. Anything that is
// not a positive integer cannot name an appointment, so callers treat a
// failed parse as not-found rather than handing garbage to the database.
func parseAppointmentID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// businessForUser resolves the tenant owned by the authenticated user.
func businessForUser(tx *gorm.DB, userID uint) (*models.Business, error) {
	var business models.Business
	err := tx.Where("user_id = ?", userID).First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrBusinessNotFound
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// withRelations preloads the relations every appointment response needs.
func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Client").Preload("Service").Preload("Professional")
}

func domainError(c *fiber.Ctx, err error) error {
	status := utils.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("appointment: unexpected error: %v", err)
	}
	return c.Status(status).JSON(utils.ErrorResponse{
		Message: utils.ErrorMessage(err),
	})
}

type createAppointmentRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail *string `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone"`

	ServiceID      string `json:"serviceId"`
	ProfessionalID string `json:"professionalId"`

	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`

	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

// validate returns the message for the first invalid field, empty when ok.
func (r *createAppointmentRequest) validate() string {
	if r.ClientName == "" {
		return "El nombre del cliente es requerido"
	}
	if r.ServiceID == "" {
		return "El servicio es requerido"
	}
	if r.ProfessionalID == "" {
		return "El profesional es requerido"
	}
	if !utils.IsValidDateFormat(r.Date) {
		return "La fecha es requerida y debe tener formato YYYY-MM-DD"
	}
	if !utils.IsValidTimeFormat(r.StartTime) {
		return "La hora de inicio es requerida y debe tener formato HH:mm"
	}
	if r.EndTime != nil && !utils.IsValidTimeFormat(*r.EndTime) {
		return "La hora de fin debe tener formato HH:mm"
	}
	if r.EndTime != nil && *r.EndTime <= r.StartTime {
		return "La hora de fin debe ser posterior a la hora de inicio"
	}
	if r.ClientEmail != nil && *r.ClientEmail != "" && !emailRe.MatchString(*r.ClientEmail) {
		return "El email del cliente no es válido"
	}
	return ""
}

// CreateAppointment books a new slot. Professional/service resolution, the
// availability check, client find-or-create and the insert all run in one
// transaction so concurrent requests for overlapping slots cannot both
// commit and no orphaned client survives a failed booking.
func CreateAppointment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var req createAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: msg})
	}

	business, err := businessForUser(db.DB, userID)
	if err != nil {
		return domainError(c, err)
	}

	status := models.StatusConfirmed
	if req.Status != nil {
		parsed, ok := models.ParseAppointmentStatus(*req.Status)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "El estado proporcionado no es válido",
			})
		}
		status = parsed
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domainError(c, utils.ErrInvalidDate)
	}

	var created models.Appointment
	isNewClient := false

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var professional models.Professional
		if err := tx.Where("business_id = ? AND external_id = ?", business.ID, req.ProfessionalID).
			First(&professional).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrProfessionalNotFound
			}
			return err
		}

		var service models.Service
		if err := tx.Where("business_id = ? AND external_id = ?", business.ID, req.ServiceID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrServiceNotFound
			}
			return err
		}

		endTime := utils.CalculateEndTime(req.StartTime, service.Duration)
		if req.EndTime != nil {
			endTime = *req.EndTime
		}

		conflict, err := utils.HasConflict(tx, professional.ID, date, req.StartTime, endTime, 0)
		if err != nil {
			return err
		}
		if conflict {
			return utils.ErrTimeSlotNotAvailable
		}

		client, newClient, err := resolveClient(tx, business.ID, req.ClientName, req.ClientEmail, req.ClientPhone)
		if err != nil {
			return err
		}
		isNewClient = newClient

		appointment := models.Appointment{
			BusinessID:     business.ID,
			ClientID:       client.ID,
			ProfessionalID: professional.ID,
			ServiceID:      service.ID,
			Date:           date,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Duration:       service.Duration,
			Status:         status,
			Price:          service.Price,
			Notes:          req.Notes,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		return withRelations(tx).First(&created, appointment.ID).Error
	})
	if err != nil {
		return domainError(c, err)
	}

	notifyBookingConfirmed(business, &created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Turno creado exitosamente",
		"data": fiber.Map{
			"appointment": models.NewAppointmentResponse(&created),
			"isNewClient": isNewClient,
		},
	})
}

// resolveClient finds a client by email within the business, refreshing
// name/phone when the caller supplied different values, or creates a new
// record. Bookings without an email always create a fresh client.
func resolveClient(tx *gorm.DB, businessID uint, name string, email, phone *string) (*models.Client, bool, error) {
	var client models.Client

	if email != nil && *email != "" {
		err := tx.Where("business_id = ? AND email = ?", businessID, *email).First(&client).Error
		if err == nil {
			updates := map[string]interface{}{}
			if client.Name != name {
				updates["name"] = name
			}
			if phone != nil && *phone != "" && (client.Phone == nil || *client.Phone != *phone) {
				updates["phone"] = *phone
			}
			if len(updates) > 0 {
				if err := tx.Model(&client).Updates(updates).Error; err != nil {
					return nil, false, err
				}
			}
			return &client, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Email:      email,
		Phone:      phone,
	}
	if err := tx.Create(&client).Error; err != nil {
		return nil, false, err
	}
	return &client, true, nil
}

// notifyBookingConfirmed fires the confirmation email when the tenant has
// it enabled and the client left an address. Failures are logged only.
func notifyBookingConfirmed(business *models.Business, appointment *models.Appointment) {
	if appointment.Client.Email == nil || *appointment.Client.Email == "" {
		return
	}

	var settings models.CommunicationSettings
	err := db.DB.Where("business_id = ?", business.ID).First(&settings).Error
	if err != nil || !settings.SendConfirmationEmail {
		return
	}

	to := *appointment.Client.Email
	clientName := appointment.Client.Name
	serviceName := appointment.Service.Name
	date := appointment.Date.Format("2006-01-02")
	startTime := appointment.StartTime
	businessName := business.Name

	go func() {
		if err := utils.SendBookingConfirmationEmail(to, clientName, businessName, serviceName, date, startTime); err != nil {
			log.Printf("appointment: failed to send confirmation email to %s: %v", to, err)
		}
	}()
}

// sortColumn maps the API sort field to its column.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "createdAt":
		return "created_at"
	case "status":
		return "status"
	default:
		return "date"
	}
}

// normalizeSortOrder falls back to ascending for anything but "desc".
func normalizeSortOrder(order string) string {
	if order == "desc" {
		return "desc"
	}
	return "asc"
}

// parseStatusFilter converts the repeated status query parameter into
// storage values. Unknown labels are reported back to the caller.
func parseStatusFilter(values []string) ([]models.AppointmentStatus, string) {
	statuses := make([]models.AppointmentStatus, 0, len(values))
	for _, value := range values {
		parsed, ok := models.ParseAppointmentStatus(value)
		if !ok {
			return nil, value
		}
		statuses = append(statuses, parsed)
	}
	return statuses, ""
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetAppointments lists the tenant's appointments with filters, sorting
// and pagination.
func GetAppointments(c *fiber.Ctx) error {
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

	query := db.DB.Model(&models.Appointment{}).Where("business_id = ?", business.ID)

	if startDate := c.Query("startDate"); startDate != "" {
		if !utils.IsValidDateFormat(startDate) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "startDate debe tener formato YYYY-MM-DD",
			})
		}
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if !utils.IsValidDateFormat(endDate) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "endDate debe tener formato YYYY-MM-DD",
			})
		}
		query = query.Where("date <= ?", endDate)
	}

	// Professional/service filters resolve business-scoped external ids; a
	// miss simply matches nothing rather than failing the request.
	if professionalID := c.Query("professionalId"); professionalID != "" {
		var professional models.Professional
		err := db.DB.Where("business_id = ? AND external_id = ?", business.ID, professionalID).
			First(&professional).Error
		if err == nil {
			query = query.Where("professional_id = ?", professional.ID)
		} else {
			query = query.Where("1 = 0")
		}
	}
	if serviceID := c.Query("serviceId"); serviceID != "" {
		var service models.Service
		err := db.DB.Where("business_id = ? AND external_id = ?", business.ID, serviceID).
			First(&service).Error
		if err == nil {
			query = query.Where("service_id = ?", service.ID)
		} else {
			query = query.Where("1 = 0")
		}
	}
	if clientID := c.Query("clientId"); clientID != "" {
		id, err := strconv.ParseUint(clientID, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "clientId debe ser numérico",
			})
		}
		query = query.Where("client_id = ?", uint(id))
	}

	if statusValues := statusQueryValues(c); len(statusValues) > 0 {
		statuses, bad := parseStatusFilter(statusValues)
		if bad != "" {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Estado desconocido: " + bad,
			})
		}
		query = query.Where("status IN ?", statuses)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("appointment: failed to count appointments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener los turnos",
		})
	}

	order := sortColumn(c.Query("sortBy", "date")) + " " + normalizeSortOrder(c.Query("sortOrder", "asc"))

	var appointments []models.Appointment
	err = withRelations(query).
		Order(order).
		Order("start_time asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		log.Printf("appointment: failed to list appointments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al obtener los turnos",
		})
	}

	responses := make([]models.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, models.NewAppointmentResponse(&appointments[i]))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return c.JSON(fiber.Map{
		"status": "success",
		"data": models.PaginatedAppointments{
			Appointments: responses,
			Pagination: models.Pagination{
				Total:      total,
				Page:       page,
				Limit:      limit,
				TotalPages: totalPages,
			},
		},
	})
}

// statusQueryValues collects every status query parameter, so both
// repeated parameters and a single value work.
func statusQueryValues(c *fiber.Ctx) []string {
	raw := c.Context().QueryArgs().PeekMulti("status")
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if len(v) > 0 {
			values = append(values, string(v))
		}
	}
	return values
}

// GetAppointment returns one appointment scoped to the tenant.
func GetAppointment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	appointmentID, valid := parseAppointmentID(c.Params("id"))
	if !valid {
		return domainError(c, utils.ErrAppointmentNotFound)
	}

	business, err := businessForUser(db.DB, userID)
	if err != nil {
		return domainError(c, err)
	}

	var appointment models.Appointment
	err = withRelations(db.DB).
		Where("business_id = ?", business.ID).
		First(&appointment, "id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainError(c, utils.ErrAppointmentNotFound)
	}
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"appointment": models.NewAppointmentResponse(&appointment)},
	})
}

type updateAppointmentRequest struct {
	ClientName  *string `json:"clientName"`
	ClientEmail *string `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone"`

	ServiceID      *string `json:"serviceId"`
	ProfessionalID *string `json:"professionalId"`

	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`

	Notes           *string `json:"notes"`
	Status          *string `json:"status"`
	CancelledReason *string `json:"cancelledReason"`
}

func (r *updateAppointmentRequest) validate() string {
	if r.Date != nil && !utils.IsValidDateFormat(*r.Date) {
		return "La fecha debe tener formato YYYY-MM-DD"
	}
	if r.StartTime != nil && !utils.IsValidTimeFormat(*r.StartTime) {
		return "La hora de inicio debe tener formato HH:mm"
	}
	if r.EndTime != nil && !utils.IsValidTimeFormat(*r.EndTime) {
		return "La hora de fin debe tener formato HH:mm"
	}
	if r.StartTime != nil && r.EndTime != nil && *r.EndTime <= *r.StartTime {
		return "La hora de fin debe ser posterior a la hora de inicio"
	}
	if r.ClientEmail != nil && *r.ClientEmail != "" && !emailRe.MatchString(*r.ClientEmail) {
		return "El email del cliente no es válido"
	}
	return ""
}

// applyAppointmentUpdate runs the shared update path used by PUT, cancel
// and complete. The conflict re-check and every write happen inside one
// transaction.
func applyAppointmentUpdate(userID uint, appointmentID uint, req *updateAppointmentRequest) (*models.Appointment, error) {
	business, err := businessForUser(db.DB, userID)
	if err != nil {
		return nil, err
	}

	var updated models.Appointment

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		err := tx.Preload("Client").Preload("Service").
			Where("business_id = ?", business.ID).
			First(&appointment, "id = ?", appointmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrAppointmentNotFound
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}

		professionalID := appointment.ProfessionalID
		if req.ProfessionalID != nil {
			var professional models.Professional
			err := tx.Where("business_id = ? AND external_id = ?", business.ID, *req.ProfessionalID).
				First(&professional).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrProfessionalNotFound
			}
			if err != nil {
				return err
			}
			professionalID = professional.ID
			updates["professional_id"] = professional.ID
		}

		serviceDuration := appointment.Service.Duration
		if req.ServiceID != nil {
			var service models.Service
			err := tx.Where("business_id = ? AND external_id = ?", business.ID, *req.ServiceID).
				First(&service).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrServiceNotFound
			}
			if err != nil {
				return err
			}
			serviceDuration = service.Duration
			updates["service_id"] = service.ID
			updates["duration"] = service.Duration
			updates["price"] = service.Price
		}

		date := appointment.Date
		if req.Date != nil {
			parsed, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				return utils.ErrInvalidDate
			}
			date = parsed
			updates["date"] = parsed
		}

		startTime := appointment.StartTime
		if req.StartTime != nil {
			startTime = *req.StartTime
		}
		endTime := utils.CalculateEndTime(startTime, serviceDuration)
		if req.EndTime != nil {
			endTime = *req.EndTime
		}
		if req.StartTime != nil {
			updates["start_time"] = startTime
			updates["end_time"] = endTime
		}

		// Moving the appointment in time or to another professional
		// requires a fresh availability check, excluding its own booking.
		if req.Date != nil || req.StartTime != nil || req.ProfessionalID != nil {
			conflict, err := utils.HasConflict(tx, professionalID, date, startTime, endTime, appointment.ID)
			if err != nil {
				return err
			}
			if conflict {
				return utils.ErrTimeSlotNotAvailable
			}
		}

		if req.Status != nil {
			newStatus, ok := models.ParseAppointmentStatus(*req.Status)
			if !ok {
				return utils.ErrInvalidStatusTransition
			}
			if newStatus != appointment.Status {
				if !appointment.Status.CanTransitionTo(newStatus) {
					return utils.ErrInvalidStatusTransition
				}
				updates["status"] = newStatus
				now := time.Now()
				switch newStatus {
				case models.StatusCancelled:
					updates["cancelled_at"] = now
					updates["cancelled_reason"] = req.CancelledReason
				case models.StatusCompleted:
					updates["completed_at"] = now
				}
			}
		}

		if req.Notes != nil {
			updates["notes"] = req.Notes
		}

		if req.ClientName != nil || req.ClientEmail != nil || req.ClientPhone != nil {
			clientUpdates := map[string]interface{}{}
			if req.ClientName != nil && *req.ClientName != "" {
				clientUpdates["name"] = *req.ClientName
			}
			if req.ClientEmail != nil {
				clientUpdates["email"] = req.ClientEmail
			}
			if req.ClientPhone != nil {
				clientUpdates["phone"] = req.ClientPhone
			}
			if len(clientUpdates) > 0 {
				if err := tx.Model(&models.Client{}).
					Where("id = ?", appointment.ClientID).
					Updates(clientUpdates).Error; err != nil {
					return err
				}
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&appointment).Updates(updates).Error; err != nil {
				return err
			}
		}

		return withRelations(tx).First(&updated, appointment.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAppointment applies a partial update to an appointment.
func UpdateAppointment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var req updateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: msg})
	}

	appointmentID, valid := parseAppointmentID(c.Params("id"))
	if !valid {
		return domainError(c, utils.ErrAppointmentNotFound)
	}

	appointment, err := applyAppointmentUpdate(userID, appointmentID, &req)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Turno actualizado exitosamente",
		"data":    fiber.Map{"appointment": models.NewAppointmentResponse(appointment)},
	})
}

// CancelAppointment is sugar for an update with status=cancelled.
func CancelAppointment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var body struct {
		Reason *string `json:"reason"`
	}
	// The body is optional; a missing reason cancels without one.
	_ = c.BodyParser(&body)

	appointmentID, valid := parseAppointmentID(c.Params("id"))
	if !valid {
		return domainError(c, utils.ErrAppointmentNotFound)
	}

	status := "cancelled"
	appointment, err := applyAppointmentUpdate(userID, appointmentID, &updateAppointmentRequest{
		Status:          &status,
		CancelledReason: body.Reason,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Turno cancelado exitosamente",
		"data":    fiber.Map{"appointment": models.NewAppointmentResponse(appointment)},
	})
}

// CompleteAppointment is sugar for an update with status=completed.
func CompleteAppointment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	appointmentID, valid := parseAppointmentID(c.Params("id"))
	if !valid {
		return domainError(c, utils.ErrAppointmentNotFound)
	}

	status := "completed"
	appointment, err := applyAppointmentUpdate(userID, appointmentID, &updateAppointmentRequest{
		Status: &status,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Turno completado exitosamente",
		"data":    fiber.Map{"appointment": models.NewAppointmentResponse(appointment)},
	})
}

// DeleteAppointment removes an appointment permanently, bypassing the
// status machine. Cancellation is almost always the right call instead;
// this exists for data correction.
func DeleteAppointment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	appointmentID, valid := parseAppointmentID(c.Params("id"))
	if !valid {
		return domainError(c, utils.ErrAppointmentNotFound)
	}

	business, err := businessForUser(db.DB, userID)
	if err != nil {
		return domainError(c, err)
	}

	var appointment models.Appointment
	err = db.DB.Where("business_id = ?", business.ID).
		First(&appointment, "id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainError(c, utils.ErrAppointmentNotFound)
	}
	if err != nil {
		return domainError(c, err)
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		log.Printf("appointment: failed to delete appointment %d: %v", appointment.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor al eliminar el turno",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Turno eliminado exitosamente",
	})
}

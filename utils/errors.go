package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Domain errors raised by the scheduling core. Each maps to a distinct
// externally observable HTTP outcome.
var (
	ErrBusinessNotFound        = errors.New("BUSINESS_NOT_FOUND")
	ErrProfessionalNotFound    = errors.New("PROFESSIONAL_NOT_FOUND")
	ErrServiceNotFound         = errors.New("SERVICE_NOT_FOUND")
	ErrAppointmentNotFound     = errors.New("APPOINTMENT_NOT_FOUND")
	ErrInvalidDate             = errors.New("INVALID_DATE")
	ErrTimeSlotNotAvailable    = errors.New("TIME_SLOT_NOT_AVAILABLE")
	ErrInvalidStatusTransition = errors.New("INVALID_STATUS_TRANSITION")
)

// StatusCode maps a domain error to its HTTP status. Unknown errors are
// treated as internal failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidStatusTransition):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrBusinessNotFound),
		errors.Is(err, ErrProfessionalNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrAppointmentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTimeSlotNotAvailable):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// ErrorMessage returns the caller-facing message for a domain error. For
// unknown errors a generic message is returned so internal detail never
// leaks to the caller.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrBusinessNotFound):
		return "No se encontró el negocio. Configure su negocio primero."
	case errors.Is(err, ErrProfessionalNotFound):
		return "El profesional seleccionado no existe"
	case errors.Is(err, ErrServiceNotFound):
		return "El servicio seleccionado no existe"
	case errors.Is(err, ErrAppointmentNotFound):
		return "Turno no encontrado"
	case errors.Is(err, ErrInvalidDate):
		return "La fecha proporcionada no es válida"
	case errors.Is(err, ErrTimeSlotNotAvailable):
		return "El horario seleccionado no está disponible para este profesional"
	case errors.Is(err, ErrInvalidStatusTransition):
		return "La transición de estado solicitada no es válida"
	}
	return "Error interno del servidor"
}

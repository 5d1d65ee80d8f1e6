package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// SendEmail delivers an HTML email through the configured SMTP server.
func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendVerificationCodeEmail sends the registration verification code.
func SendVerificationCodeEmail(to, name, code string) error {
	subject := "Verificá tu cuenta"
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Tu código de verificación es:</p>
		<h2>%s</h2>
		<p>El código expira en 15 minutos.</p>
	`, name, code)
	return SendEmail(to, subject, body)
}

// SendBookingConfirmationEmail notifies a client that their booking was
// registered.
func SendBookingConfirmationEmail(to, clientName, businessName, serviceName, date, startTime string) error {
	subject := fmt.Sprintf("Turno confirmado - %s", businessName)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Tu turno en <strong>%s</strong> fue registrado.</p>
		<ul>
			<li><strong>Servicio:</strong> %s</li>
			<li><strong>Fecha:</strong> %s</li>
			<li><strong>Hora:</strong> %s</li>
		</ul>
		<p>Si necesitás reprogramar o cancelar, contactá al negocio.</p>
	`, clientName, businessName, serviceName, date, startTime)
	return SendEmail(to, subject, body)
}

// SendBookingReminderEmail reminds a client of an upcoming appointment.
func SendBookingReminderEmail(to, clientName, businessName, serviceName, date, startTime string) error {
	subject := fmt.Sprintf("Recordatorio de turno - %s", businessName)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Te recordamos tu próximo turno en <strong>%s</strong>.</p>
		<ul>
			<li><strong>Servicio:</strong> %s</li>
			<li><strong>Fecha:</strong> %s</li>
			<li><strong>Hora:</strong> %s</li>
		</ul>
		<p>Por favor llegá a horario.</p>
	`, clientName, businessName, serviceName, date, startTime)
	return SendEmail(to, subject, body)
}

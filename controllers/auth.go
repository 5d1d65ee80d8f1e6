package controllers

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"turnos-backend/db"
	"turnos-backend/models"
	"turnos-backend/redis"
	"turnos-backend/utils"
)

const verificationCodeTTL = 15 * time.Minute

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and mails a verification code.
func Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "El nombre es requerido",
		})
	}
	if req.Email == "" || !emailRe.MatchString(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "El email no es válido",
		})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "La contraseña debe tener al menos 8 caracteres",
		})
	}

	var existing models.User
	err := db.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Ya existe una cuenta con ese email",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("auth: failed to look up user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("auth: failed to hash password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	code := utils.GenerateVerificationCode()
	expiresAt := time.Now().Add(verificationCodeTTL)

	user := models.User{
		Name:                      req.Name,
		Email:                     req.Email,
		PasswordHash:              string(hash),
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &expiresAt,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("auth: failed to create user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	go func() {
		if err := utils.SendVerificationCodeEmail(user.Email, user.Name, code); err != nil {
			log.Printf("auth: failed to send verification email to %s: %v", user.Email, err)
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Cuenta creada. Revisá tu email para verificarla",
		"data":    fiber.Map{"user": user},
	})
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyEmail confirms a pending account with its 6-digit code.
func VerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Usuario no encontrado",
		})
	}
	if user.EmailVerified {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "El email ya estaba verificado",
		})
	}
	if user.VerificationCode == nil || *user.VerificationCode != req.Code {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "El código de verificación no es válido",
		})
	}
	if user.VerificationCodeExpiresAt == nil || time.Now().After(*user.VerificationCodeExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "El código de verificación expiró",
		})
	}

	err := db.DB.Model(&user).Updates(map[string]interface{}{
		"email_verified":               true,
		"verification_code":            nil,
		"verification_code_expires_at": nil,
	}).Error
	if err != nil {
		log.Printf("auth: failed to verify user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Email verificado exitosamente",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified user and issues a 7-day JWT. The token
// is also stored as the user's single redis session, so logging in again
// invalidates older tokens.
func Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Email o contraseña incorrectos",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Email o contraseña incorrectos",
		})
	}
	if !user.EmailVerified {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Tenés que verificar tu email antes de iniciar sesión",
		})
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key"
	}

	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Printf("auth: failed to sign token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	err = redis.SaveSession(user.ID, redis.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		LoginTime: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("auth: failed to save session for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"token":       token,
			"user":        user,
			"setupStatus": setupStatusForUser(user.ID),
		},
	})
}

// Logout revokes the current session.
func Logout(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	if err := redis.DeleteSession(userID); err != nil {
		log.Printf("auth: failed to delete session for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error interno del servidor",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Sesión cerrada exitosamente",
	})
}

// Me returns the authenticated user.
func Me(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Usuario no autenticado",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Usuario no encontrado",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": user},
	})
}

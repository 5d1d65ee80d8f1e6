package db

import (
	"fmt"
	"log"

	"turnos-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.OperatingHours{},
		&models.BookingPreferences{},
		&models.CommunicationSettings{},
		&models.Professional{},
		&models.ProfessionalSchedule{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}

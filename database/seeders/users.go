package seeders

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/config"
	"github.com/risewynn/qellum/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("demo-user", SeedDemoUser)
}

// SeedAdminUser creates the initial admin account if it does not exist.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdminUser(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@qellum.co.uk")
	password := config.Get("ADMIN_PASSWORD", "change-me-please")

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		UID:          uuid.NewString(),
		DisplayName:  "Qellum Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
	}
	return db.Create(&admin).Error
}

// SeedDemoUser creates a consumer account for local development. It
// signs in through the regular login flow, so it gets the starting
// balance from the column default.
func SeedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "demo@qellum.co.uk").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := models.User{
		UID:         uuid.NewString(),
		DisplayName: "Demo User",
		Email:       "demo@qellum.co.uk",
	}
	return db.Create(&demo).Error
}

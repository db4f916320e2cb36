package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/database"
)

// setupDB points the app at a throwaway SQLite database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MealPlan{},
		&models.Transaction{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

// seedUser inserts a consumer account and returns it with the granted
// starting balance loaded.
func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		UID:         uuid.NewString(),
		DisplayName: "Test User",
		Email:       uuid.NewString() + "@example.com",
		Role:        "user",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.First(&user, user.ID).Error)
	return user
}

func balanceOf(t *testing.T, db *gorm.DB, uid string) int64 {
	t.Helper()

	var user models.User
	require.NoError(t, db.Where("uid = ?", uid).First(&user).Error)
	return user.TokenBalance
}

package migrations

import (
	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_meal_plans_table", &CreateMealPlansTable{})
	migration.Register("20260301000002_create_transactions_table", &CreateTransactionsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: meal_plans --------

type CreateMealPlansTable struct{}

func (m *CreateMealPlansTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.MealPlan{})
}

func (m *CreateMealPlansTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("meal_plans")
}

// -------- 0003: transactions --------

type CreateTransactionsTable struct{}

func (m *CreateTransactionsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Transaction{})
}

func (m *CreateTransactionsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("transactions")
}

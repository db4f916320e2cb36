package repositories

import (
	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/orm"
)

// MealPlanRepository handles database operations for MealPlan.
type MealPlanRepository struct{}

func NewMealPlanRepository() *MealPlanRepository {
	return &MealPlanRepository{}
}

// FindByReference looks up a plan by its public reference id.
func (r *MealPlanRepository) FindByReference(ref string) (models.MealPlan, error) {
	var plan models.MealPlan
	err := orm.DB().Model(&models.MealPlan{}).Where("reference_id = ?", ref).First(&plan)
	return plan, err
}

// AllForUser returns a user's plans, newest first.
func (r *MealPlanRepository) AllForUser(uid string) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := orm.DB().
		Model(&models.MealPlan{}).
		Where("user_uid = ?", uid).
		Order("created_at desc").
		Get(&plans)
	return plans, err
}

// All returns every plan, newest first. Admin surface only.
func (r *MealPlanRepository) All() ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := orm.DB().Model(&models.MealPlan{}).Order("created_at desc").Get(&plans)
	return plans, err
}

// PendingChefRequests returns chef plan orders awaiting fulfilment,
// oldest first so the queue is worked in order.
func (r *MealPlanRepository) PendingChefRequests() ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := orm.DB().
		Model(&models.MealPlan{}).
		Where("type = ? AND status = ?", models.PlanTypeChef, models.StatusPending).
		Order("created_at asc").
		Get(&plans)
	return plans, err
}

// Update persists changes to an existing plan.
func (r *MealPlanRepository) Update(plan *models.MealPlan) error {
	return orm.DB().Save(plan)
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/repositories"
	"github.com/risewynn/qellum/pkg/event"
	"github.com/risewynn/qellum/pkg/logger"
	"github.com/risewynn/qellum/pkg/orm"
)

// FulfillmentService is the admin-side surface: the queue of pending
// chef requests and the completion operation that delivers content.
type FulfillmentService struct {
	plans *repositories.MealPlanRepository
	users *repositories.UserRepository
}

func NewFulfillmentService() *FulfillmentService {
	return &FulfillmentService{
		plans: repositories.NewMealPlanRepository(),
		users: repositories.NewUserRepository(),
	}
}

// AllPlans returns every order in the system, newest first.
func (s *FulfillmentService) AllPlans() ([]models.MealPlan, error) {
	return s.plans.All()
}

// PendingRequests returns chef orders awaiting content, oldest first.
func (s *FulfillmentService) PendingRequests() ([]models.MealPlan, error) {
	return s.plans.PendingChefRequests()
}

// Complete delivers the chef's content to a pending order. Completing a
// plan that is not pending fails with ErrAlreadyCompleted and changes
// nothing.
func (s *FulfillmentService) Complete(ref, chefUID, content string) (*models.MealPlan, error) {
	if _, err := s.plans.FindByReference(ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	// The pending guard lives in the UPDATE itself so two racing
	// completions cannot both pass a stale read. The loser's content
	// is discarded.
	affected, err := orm.DB().Model(&models.MealPlan{}).
		Where("reference_id = ? AND status = ?", ref, models.StatusPending).
		Updates(map[string]interface{}{
			"content":      content,
			"status":       models.StatusCompleted,
			"chef_uid":     chefUID,
			"completed_at": time.Now(),
		})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyCompleted
	}

	plan, err := s.plans.FindByReference(ref)
	if err != nil {
		return nil, err
	}

	logger.Info("fulfillment: plan completed", "plan", plan.ReferenceID, "chef", chefUID)

	email := ""
	if user, err := s.users.FindByUID(plan.UserUID); err == nil {
		email = user.Email
	}
	event.FireAsync("order.completed", OrderCompleted{Plan: plan, UserEmail: email})

	return &plan, nil
}

package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/pricing"
	"github.com/risewynn/qellum/app/repositories"
	"github.com/risewynn/qellum/pkg/event"
)

// OrderCompleted is the payload fired on the "order.completed" event.
type OrderCompleted struct {
	Plan      models.MealPlan
	UserEmail string
}

// ChefRequest is the payload for a human-chef plan order.
type ChefRequest struct {
	DietaryRequirements string `json:"dietaryRequirements" validate:"required,max=1000"`
	Preferences         string `json:"preferences"         validate:"required,max=1000"`
	Goals               string `json:"goals,omitempty"     validate:"nullable,max=1000"`
}

// Summary is the short order description stored on the meal plan row.
func (r ChefRequest) Summary() string {
	return fmt.Sprintf("Chef-crafted plan: %s", truncate(r.DietaryRequirements, 100))
}

// Details renders the full request for the chef to work from.
func (r ChefRequest) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dietary requirements: %s\n", r.DietaryRequirements)
	fmt.Fprintf(&b, "Preferences: %s\n", r.Preferences)
	if r.Goals != "" {
		fmt.Fprintf(&b, "Goals: %s\n", r.Goals)
	}
	return b.String()
}

// MealPlanService handles plan ordering. The AI path generates first and
// charges second so a failed generation never costs tokens; the chef
// path charges up front and leaves the order pending for fulfilment.
type MealPlanService struct {
	ledger  *LedgerService
	planner *PlannerService
	users   *repositories.UserRepository
	plans   *repositories.MealPlanRepository
}

func NewMealPlanService() *MealPlanService {
	return &MealPlanService{
		ledger:  NewLedgerService(),
		planner: NewPlannerService(),
		users:   repositories.NewUserRepository(),
		plans:   repositories.NewMealPlanRepository(),
	}
}

// OrderAIPlan generates a plan, then debits the quoted cost and records
// the completed order in one transaction.
func (s *MealPlanService) OrderAIPlan(uid string, req PlanRequest) (*models.MealPlan, error) {
	user, err := s.users.FindByUID(uid)
	if err != nil {
		return nil, ErrUserNotFound
	}

	cost := req.Quote()

	// Generate before charging. If this fails the user pays nothing.
	content, err := s.planner.Generate(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan, _, err := s.ledger.Debit(uid, cost, OrderDraft{
		Type:        models.PlanTypeAI,
		Details:     req.Summary(),
		Content:     content,
		Status:      models.StatusCompleted,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, err
	}

	event.FireAsync("order.completed", OrderCompleted{Plan: *plan, UserEmail: user.Email})

	return plan, nil
}

// OrderChefPlan charges the flat chef rate and records a pending order
// for the fulfilment queue.
func (s *MealPlanService) OrderChefPlan(uid string, req ChefRequest) (*models.MealPlan, error) {
	if _, err := s.users.FindByUID(uid); err != nil {
		return nil, ErrUserNotFound
	}

	plan, _, err := s.ledger.Debit(uid, pricing.QuoteChefPlan(), OrderDraft{
		Type:    models.PlanTypeChef,
		Details: req.Summary(),
		Content: req.Details(), // the request itself, until the chef delivers
		Status:  models.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// PlansForUser returns a user's order history, newest first.
func (s *MealPlanService) PlansForUser(uid string) ([]models.MealPlan, error) {
	return s.plans.AllForUser(uid)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

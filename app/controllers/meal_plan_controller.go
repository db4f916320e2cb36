package controllers

import (
	"net/http"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/pricing"
	"github.com/risewynn/qellum/app/services"
	"github.com/risewynn/qellum/pkg/bind"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/response"
	"github.com/risewynn/qellum/pkg/validate"
)

type MealPlanController struct {
	service *services.MealPlanService
}

func NewMealPlanController() *MealPlanController {
	return &MealPlanController{service: services.NewMealPlanService()}
}

// orderInput is the tagged order payload: exactly one of plan/request
// must match the declared type.
type orderInput struct {
	Type    string                `json:"type" validate:"required,in=AI Plan,Chef Plan"`
	Plan    *services.PlanRequest `json:"plan,omitempty"`
	Request *services.ChefRequest `json:"request,omitempty"`
}

func (in *orderInput) validateBody() map[string]string {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return errs
	}

	switch in.Type {
	case models.PlanTypeAI:
		if in.Plan == nil {
			return map[string]string{"plan": "The plan field is required for AI orders."}
		}
		if errs := validate.Struct(in.Plan); validate.HasErrors(errs) {
			return errs
		}
	case models.PlanTypeChef:
		if in.Request == nil {
			return map[string]string{"request": "The request field is required for chef orders."}
		}
		if errs := validate.Struct(in.Request); validate.HasErrors(errs) {
			return errs
		}
	}
	return nil
}

// Create orders a meal plan. The AI path generates content and returns a
// completed order; the chef path records a pending order for the
// fulfilment queue. Either way the quoted cost is debited atomically
// with the order.
func (c *MealPlanController) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in orderInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := in.validateBody(); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var (
		plan *models.MealPlan
		err  error
	)
	switch in.Type {
	case models.PlanTypeAI:
		plan, err = c.service.OrderAIPlan(uid, *in.Plan)
	case models.PlanTypeChef:
		plan, err = c.service.OrderChefPlan(uid, *in.Request)
	}
	if err != nil {
		fail(w, err)
		return
	}

	response.Created(w, plan)
}

// Quote prices an order without placing it. The same input always
// quotes the same cost.
func (c *MealPlanController) Quote(w http.ResponseWriter, r *http.Request) {
	var in orderInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := in.validateBody(); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var cost int64
	switch in.Type {
	case models.PlanTypeAI:
		cost = in.Plan.Quote()
	case models.PlanTypeChef:
		cost = pricing.QuoteChefPlan()
	}

	response.Success(w, map[string]interface{}{
		"type": in.Type,
		"cost": cost,
	})
}

// List returns the caller's order history, newest first.
func (c *MealPlanController) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	plans, err := c.service.PlansForUser(uid)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, plans)
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/risewynn/qellum/app/services"
	"github.com/risewynn/qellum/pkg/bind"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/response"
)

type AdminController struct {
	fulfillment *services.FulfillmentService
	ledger      *services.LedgerService
}

func NewAdminController() *AdminController {
	return &AdminController{
		fulfillment: services.NewFulfillmentService(),
		ledger:      services.NewLedgerService(),
	}
}

// AllPlans returns every order in the system.
func (c *AdminController) AllPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := c.fulfillment.AllPlans()
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, plans)
}

// PendingRequests returns the chef fulfilment queue, oldest first.
func (c *AdminController) PendingRequests(w http.ResponseWriter, r *http.Request) {
	plans, err := c.fulfillment.PendingRequests()
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, plans)
}

// CompleteRequest delivers chef content to a pending order.
func (c *AdminController) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	chefUID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	ref := chi.URLParam(r, "id")

	var in struct {
		Content string `json:"content" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	plan, err := c.fulfillment.Complete(ref, chefUID, in.Content)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, plan)
}

// Adjust applies a signed manual correction to a user's balance.
func (c *AdminController) Adjust(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID  string `json:"userId"  validate:"required,max=64"`
		Tokens  int64  `json:"tokens"  validate:"required,between=-100000,100000"`
		Details string `json:"details" validate:"required,max=512"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tx, err := c.ledger.Adjust(in.UserID, in.Tokens, in.Details)
	if err != nil {
		fail(w, err)
		return
	}

	response.Created(w, tx)
}

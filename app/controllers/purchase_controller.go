package controllers

import (
	"net/http"

	"github.com/risewynn/qellum/app/pricing"
	"github.com/risewynn/qellum/app/services"
	"github.com/risewynn/qellum/pkg/bind"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/response"
)

type PurchaseController struct {
	service *services.PurchaseService
}

func NewPurchaseController() *PurchaseController {
	return &PurchaseController{service: services.NewPurchaseService()}
}

// Packages lists the purchasable token bundles.
func (c *PurchaseController) Packages(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, pricing.Packages)
}

// Purchase credits a token package to the caller's balance.
func (c *PurchaseController) Purchase(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		PackageID string `json:"packageId" validate:"required,in=sprout,gourmet,epicurean"`
		Currency  string `json:"currency"  validate:"required,in=GBP,EUR"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tx, err := c.service.Purchase(uid, in.PackageID, in.Currency)
	if err != nil {
		fail(w, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"success":     true,
		"transaction": tx,
	})
}

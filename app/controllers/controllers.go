// Package controllers holds the HTTP handlers. Each controller decodes
// and validates the body with bind, delegates to a service, and writes
// the JSON envelope via response.
package controllers

import (
	"errors"
	"net/http"

	"github.com/risewynn/qellum/app/services"
	"github.com/risewynn/qellum/pkg/response"
)

// fail maps a domain error onto the HTTP surface.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInsufficientTokens):
		response.Error(w, http.StatusPaymentRequired, "Insufficient token balance")
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrPlanNotFound):
		response.Error(w, http.StatusNotFound, "Meal plan not found")
	case errors.Is(err, services.ErrPackageNotFound):
		response.Error(w, http.StatusNotFound, "Token package not found")
	case errors.Is(err, services.ErrAlreadyCompleted):
		response.Error(w, http.StatusConflict, "Meal plan is not pending")
	case errors.Is(err, services.ErrGenerationFailed):
		response.Error(w, http.StatusBadGateway, "Plan generation failed, no tokens were charged")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w)
	default:
		response.Error(w, http.StatusInternalServerError, "Something went wrong")
	}
}

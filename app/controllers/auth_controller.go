package controllers

import (
	"net/http"

	"github.com/risewynn/qellum/app/services"
	"github.com/risewynn/qellum/pkg/bind"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Login upserts a consumer account from the identity provider payload
// and returns a JWT plus the account (including token balance).
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(in)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// StaffLogin authenticates an admin or chef account with a password.
func (c *AuthController) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.StaffLogin(in.Email, in.Password)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Me returns the caller's account, served through the balance cache.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(uid)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, user)
}

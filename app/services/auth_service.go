package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/repositories"
	"github.com/risewynn/qellum/pkg/auth"
	"github.com/risewynn/qellum/pkg/logger"
)

// AuthService handles sign-in. Consumer accounts come from the identity
// provider and are upserted on first sight with the initial token grant;
// staff accounts authenticate with a password.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// LoginInput is the identity payload from the frontend's auth provider.
// The uid is the provider's stable identifier and the upsert key; the
// rest are mutable profile fields.
type LoginInput struct {
	UID         string `json:"uid"                   validate:"required,max=128"`
	Email       string `json:"email,omitempty"       validate:"nullable,email"`
	DisplayName string `json:"displayName,omitempty" validate:"nullable,max=255"`
	PhotoURL    string `json:"photoURL,omitempty"    validate:"nullable,url"`
}

// Login upserts the user by uid and issues a JWT. New users receive the
// default token grant from the column default.
func (s *AuthService) Login(in LoginInput) (string, *models.User, error) {
	user, err := s.users.FindByUID(in.UID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			UID:         in.UID,
			Email:       in.Email,
			DisplayName: in.DisplayName,
			PhotoURL:    in.PhotoURL,
			Role:        "user",
		}
		if err := s.users.Create(&user); err != nil {
			return "", nil, err
		}
		// Re-read so the response carries the granted starting balance,
		// which is applied as a column default.
		if created, err := s.users.FindByUID(in.UID); err == nil {
			user = created
		}
		logger.Info("auth: new user registered", "uid", user.UID)

	case err != nil:
		return "", nil, err

	default:
		// Returning user. Refresh whatever profile fields the provider
		// sent; absent fields keep their stored values.
		if in.Email != "" {
			user.Email = in.Email
		}
		if in.DisplayName != "" {
			user.DisplayName = in.DisplayName
		}
		if in.PhotoURL != "" {
			user.PhotoURL = in.PhotoURL
		}
		if err := s.users.Update(&user); err != nil {
			return "", nil, err
		}
		s.users.InvalidateBalance(user.UID)
	}

	token, err := auth.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// StaffLogin authenticates a password-holding account (admins, chefs).
func (s *AuthService) StaffLogin(email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Profile returns the user's account including the token balance,
// served through the balance cache.
func (s *AuthService) Profile(uid string) (*models.User, error) {
	user, err := s.users.FindByUIDCached(uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		// A cached empty result or a miss that found nothing.
		return nil, ErrUserNotFound
	}
	return &user, nil
}

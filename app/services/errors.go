package services

import "errors"

// Domain errors. Controllers map these to HTTP status codes.
var (
	// ErrInsufficientTokens is returned when a debit would take the
	// balance below zero. The whole operation is rejected, nothing is
	// written.
	ErrInsufficientTokens = errors.New("insufficient token balance")

	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPlanNotFound is returned when a meal plan reference does not
	// resolve.
	ErrPlanNotFound = errors.New("meal plan not found")

	// ErrPackageNotFound is returned for an unknown token package id.
	ErrPackageNotFound = errors.New("token package not found")

	// ErrAlreadyCompleted is returned when completing a chef request
	// that is no longer pending.
	ErrAlreadyCompleted = errors.New("meal plan is not pending")

	// ErrGenerationFailed is returned when the upstream planner call
	// fails or returns a malformed payload. No tokens are debited.
	ErrGenerationFailed = errors.New("plan generation failed")

	// ErrInvalidCredentials is returned on a failed staff login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/auth"
)

func TestLogin_NewUserGetsStartingBalance(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	token, user, err := svc.Login(LoginInput{
		UID:         "provider-uid-ada",
		Email:       "ada@example.com",
		DisplayName: "Ada",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "provider-uid-ada", user.UID)
	assert.Equal(t, int64(2000), user.TokenBalance)
	assert.Equal(t, "user", user.Role)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UID, claims.UID)
	assert.Equal(t, "user", claims.Role)
}

func TestLogin_ExistingUserKeepsBalance(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService()

	_, first, err := svc.Login(LoginInput{UID: "provider-uid-bob", Email: "bob@example.com", DisplayName: "Bob"})
	require.NoError(t, err)

	// Spend some tokens, then sign in again.
	_, _, err = NewLedgerService().Debit(first.UID, 500, OrderDraft{
		Type: models.PlanTypeChef, Details: "chef", Status: models.StatusPending,
	})
	require.NoError(t, err)

	_, second, err := svc.Login(LoginInput{UID: "provider-uid-bob", Email: "bob@example.com", DisplayName: "Bobby"})
	require.NoError(t, err)

	assert.Equal(t, first.UID, second.UID)
	assert.Equal(t, "Bobby", second.DisplayName)
	assert.Equal(t, int64(1500), balanceOf(t, db, second.UID))
}

// The uid is the identity key. Signing in again with the same uid and a
// changed email must update the existing account, never insert a second
// row.
func TestLogin_SameUIDChangedEmail(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService()

	_, first, err := svc.Login(LoginInput{UID: "provider-uid-1", Email: "old@example.com", DisplayName: "Cara"})
	require.NoError(t, err)

	_, second, err := svc.Login(LoginInput{UID: "provider-uid-1", Email: "new@example.com", DisplayName: "Cara"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new@example.com", second.Email)
	assert.Equal(t, first.TokenBalance, second.TokenBalance)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// A sign-in without optional profile fields must not blank out what is
// already stored.
func TestLogin_AbsentFieldsKeepStoredValues(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, _, err := svc.Login(LoginInput{
		UID: "provider-uid-2", Email: "dee@example.com", DisplayName: "Dee", PhotoURL: "https://example.com/dee.png",
	})
	require.NoError(t, err)

	_, again, err := svc.Login(LoginInput{UID: "provider-uid-2"})
	require.NoError(t, err)

	assert.Equal(t, "dee@example.com", again.Email)
	assert.Equal(t, "Dee", again.DisplayName)
	assert.Equal(t, "https://example.com/dee.png", again.PhotoURL)
}

func TestStaffLogin(t *testing.T) {
	db := setupDB(t)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	staff := models.User{
		UID:          "chef-uid",
		DisplayName:  "Chef",
		Email:        "chef@qellum.co.uk",
		PasswordHash: hash,
		Role:         "chef",
	}
	require.NoError(t, db.Create(&staff).Error)

	svc := NewAuthService()

	token, user, err := svc.StaffLogin("chef@qellum.co.uk", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "chef", user.Role)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "chef", claims.Role)

	_, _, err = svc.StaffLogin("chef@qellum.co.uk", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.StaffLogin("nobody@qellum.co.uk", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaffLogin_ConsumerAccountHasNoPassword(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, user, err := svc.Login(LoginInput{UID: "provider-uid-eve", Email: "eve@example.com", DisplayName: "Eve"})
	require.NoError(t, err)

	_, _, err = svc.StaffLogin(user.Email, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

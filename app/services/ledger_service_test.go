package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/repositories"
)

func TestCredit(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewLedgerService()

	tx, err := svc.Credit(user.UID, 1200, decimal.NewFromInt(10), models.CurrencyGBP, "Gourmet package (1200 tokens)")
	require.NoError(t, err)

	assert.Equal(t, int64(1200), tx.Tokens)
	assert.Equal(t, models.TxPurchase, tx.Type)
	assert.Equal(t, user.TokenBalance+1200, balanceOf(t, db, user.UID))
}

func TestCredit_RejectsNonPositive(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewLedgerService()

	_, err := svc.Credit(user.UID, 0, decimal.Zero, models.CurrencyGBP, "nothing")
	assert.Error(t, err)
	_, err = svc.Credit(user.UID, -5, decimal.Zero, models.CurrencyGBP, "negative")
	assert.Error(t, err)

	assert.Equal(t, user.TokenBalance, balanceOf(t, db, user.UID))
}

func TestCredit_UnknownUser(t *testing.T) {
	setupDB(t)
	svc := NewLedgerService()

	_, err := svc.Credit("no-such-uid", 500, decimal.NewFromInt(5), models.CurrencyGBP, "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDebit_AtomicSpend(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewLedgerService()

	plan, tx, err := svc.Debit(user.UID, 500, OrderDraft{
		Type:    models.PlanTypeChef,
		Details: "Chef-crafted plan",
		Status:  models.StatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, user.TokenBalance-500, balanceOf(t, db, user.UID))
	assert.Equal(t, models.StatusPending, plan.Status)
	assert.Equal(t, int64(500), plan.Cost)
	assert.Equal(t, int64(-500), tx.Tokens)
	assert.Equal(t, models.TxMealPlan, tx.Type)
	assert.Equal(t, plan.ReferenceID, tx.MealPlanRef)
}

func TestDebit_InsufficientTokens(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewLedgerService()

	_, _, err := svc.Debit(user.UID, user.TokenBalance+1, OrderDraft{
		Type:    models.PlanTypeChef,
		Details: "too expensive",
		Status:  models.StatusPending,
	})
	require.ErrorIs(t, err, ErrInsufficientTokens)

	// Nothing may be written: no plan, no transaction, balance intact.
	assert.Equal(t, user.TokenBalance, balanceOf(t, db, user.UID))

	var plans, txs int64
	require.NoError(t, db.Model(&models.MealPlan{}).Count(&plans).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txs).Error)
	assert.Zero(t, plans)
	assert.Zero(t, txs)
}

func TestDebit_ExactBalance(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewLedgerService()

	_, _, err := svc.Debit(user.UID, user.TokenBalance, OrderDraft{
		Type:    models.PlanTypeChef,
		Details: "all in",
		Status:  models.StatusPending,
	})
	require.NoError(t, err)
	assert.Zero(t, balanceOf(t, db, user.UID))
}

func TestAdjust(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewLedgerService()

	tx, err := svc.Adjust(user.UID, -300, "support correction")
	require.NoError(t, err)
	assert.Equal(t, int64(-300), tx.Tokens)
	assert.Equal(t, models.TxAdjustment, tx.Type)
	assert.Equal(t, user.TokenBalance-300, balanceOf(t, db, user.UID))

	// An adjustment may never push the balance negative.
	_, err = svc.Adjust(user.UID, -(user.TokenBalance + 1000), "too deep")
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, user.TokenBalance-300, balanceOf(t, db, user.UID))
}

// The scenario from the dashboard walkthrough: grant, chef spend,
// declined overspend, purchase.
func TestLedger_Scenario(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	require.Equal(t, int64(2000), user.TokenBalance)

	svc := NewLedgerService()

	_, _, err := svc.Debit(user.UID, 500, OrderDraft{
		Type: models.PlanTypeChef, Details: "chef plan", Status: models.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balanceOf(t, db, user.UID))

	_, _, err = svc.Debit(user.UID, 2000, OrderDraft{
		Type: models.PlanTypeChef, Details: "second chef plan", Status: models.StatusPending,
	})
	require.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, int64(1500), balanceOf(t, db, user.UID))

	_, err = svc.Credit(user.UID, 1200, decimal.NewFromInt(10), models.CurrencyGBP, "Gourmet package")
	require.NoError(t, err)
	assert.Equal(t, int64(2700), balanceOf(t, db, user.UID))
}

// Auditability: initial grant plus the sum of all deltas equals the
// current balance after any sequence of operations.
func TestLedger_Auditability(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	initialGrant := user.TokenBalance

	svc := NewLedgerService()

	_, _, err := svc.Debit(user.UID, 135, OrderDraft{Type: models.PlanTypeAI, Details: "ai", Status: models.StatusCompleted})
	require.NoError(t, err)
	_, err = svc.Credit(user.UID, 3000, decimal.NewFromInt(20), models.CurrencyGBP, "Epicurean package")
	require.NoError(t, err)
	_, err = svc.Adjust(user.UID, -250, "correction")
	require.NoError(t, err)
	_, _, err = svc.Debit(user.UID, 500, OrderDraft{Type: models.PlanTypeChef, Details: "chef", Status: models.StatusPending})
	require.NoError(t, err)

	sum, err := repositories.NewTransactionRepository().SumForUser(user.UID)
	require.NoError(t, err)

	assert.Equal(t, balanceOf(t, db, user.UID), initialGrant+sum)
}

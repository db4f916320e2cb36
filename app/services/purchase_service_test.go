package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risewynn/qellum/app/models"
)

func TestPurchase(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewPurchaseService()

	tx, err := svc.Purchase(user.UID, "gourmet", models.CurrencyGBP)
	require.NoError(t, err)

	assert.Equal(t, int64(1200), tx.Tokens)
	assert.Equal(t, models.TxPurchase, tx.Type)
	assert.Equal(t, models.CurrencyGBP, tx.Currency)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, user.TokenBalance+1200, balanceOf(t, db, user.UID))
}

func TestPurchase_EURPriceConverted(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewPurchaseService()

	tx, err := svc.Purchase(user.UID, "sprout", models.CurrencyEUR)
	require.NoError(t, err)

	assert.Equal(t, int64(500), tx.Tokens)
	assert.Equal(t, models.CurrencyEUR, tx.Currency)
	assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(5.90)), "5 GBP at 1.18 should be 5.90 EUR, got %s", tx.Amount)
	assert.Equal(t, user.TokenBalance+500, balanceOf(t, db, user.UID))
}

func TestPurchase_UnknownPackage(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	svc := NewPurchaseService()

	_, err := svc.Purchase(user.UID, "banquet", models.CurrencyGBP)
	assert.ErrorIs(t, err, ErrPackageNotFound)
	assert.Equal(t, user.TokenBalance, balanceOf(t, db, user.UID))
}

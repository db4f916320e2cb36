package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TxPurchase   = "Purchase"
	TxMealPlan   = "MealPlan"
	TxAdjustment = "Adjustment"
)

// Supported currencies.
const (
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
)

// Transaction is one row in a user's token ledger. Tokens is a signed
// delta: positive for purchases and adjustments up, negative for spends.
// The auditability invariant is that the sum of a user's deltas plus the
// initial grant equals their current balance.
type Transaction struct {
	gorm.Model
	ReferenceID string          `gorm:"uniqueIndex;size:36;not null" json:"id"`
	UserID      uint            `gorm:"not null;index"               json:"-"`
	UserUID     string          `gorm:"size:64;not null;index"       json:"userId"`
	Details     string          `gorm:"size:512"                     json:"details"`
	Tokens      int64           `gorm:"not null"                     json:"tokens"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"amount"`
	Currency    string          `gorm:"size:3;not null;default:GBP"  json:"currency"`
	Type        string          `gorm:"size:20;not null"             json:"type"`
	MealPlanID  *uint           `gorm:"index"                        json:"-"`
	MealPlanRef string          `gorm:"size:36"                      json:"mealPlanId,omitempty"`
}

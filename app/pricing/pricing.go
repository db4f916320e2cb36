// Package pricing holds the compiled-in price and cost tables. Token
// packages and per-feature surcharges are configuration baked into the
// binary, not runtime state.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Package is one purchasable token bundle.
type Package struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Tokens   int64           `json:"tokens"`
	PriceGBP decimal.Decimal `json:"priceGBP"`
	Bonus    string          `json:"bonus,omitempty"`
}

// gbpToEUR is the fixed conversion rate applied at purchase time.
var gbpToEUR = decimal.NewFromFloat(1.18)

// Packages is the fixed token package table, cheapest first.
var Packages = []Package{
	{ID: "sprout", Name: "Sprout", Tokens: 500, PriceGBP: decimal.NewFromInt(5)},
	{ID: "gourmet", Name: "Gourmet", Tokens: 1200, PriceGBP: decimal.NewFromInt(10), Bonus: "20% bonus"},
	{ID: "epicurean", Name: "Epicurean", Tokens: 3000, PriceGBP: decimal.NewFromInt(20), Bonus: "50% bonus"},
}

// FindPackage returns the package with the given id.
func FindPackage(id string) (Package, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// Price returns the package price in the requested currency.
// GBP is the list price; EUR applies the fixed conversion rate.
func (p Package) Price(currency string) (decimal.Decimal, error) {
	switch currency {
	case "GBP":
		return p.PriceGBP, nil
	case "EUR":
		return p.PriceGBP.Mul(gbpToEUR).Round(2), nil
	default:
		return decimal.Zero, fmt.Errorf("pricing: unsupported currency %q", currency)
	}
}

// Token cost table for plan orders.
const (
	AIBaseCost      int64 = 10  // flat cost of any AI plan
	AIPerDayCost    int64 = 10  // per requested day
	AIPerOptionCost int64 = 5   // per selected option field
	ChefPlanCost    int64 = 500 // flat cost of a chef-crafted plan
)

// PlanOptions are the per-feature selections that each add a surcharge
// when set. Empty string means the option was not selected.
type PlanOptions struct {
	ActivityLevel string `json:"activityLevel,omitempty"`
	CalorieMethod string `json:"calorieMethod,omitempty"`
	ProteinTarget string `json:"proteinTarget,omitempty"`
	MealStructure string `json:"mealStructure,omitempty"`
	DietType      string `json:"dietType,omitempty"`
}

// selected counts how many option fields are set.
func (o PlanOptions) selected() int64 {
	var n int64
	for _, v := range []string{o.ActivityLevel, o.CalorieMethod, o.ProteinTarget, o.MealStructure, o.DietType} {
		if v != "" {
			n++
		}
	}
	return n
}

// QuoteAIPlan computes the deterministic token cost of an AI plan:
// base + per-day + per-selected-option surcharges.
func QuoteAIPlan(days int, opts PlanOptions) int64 {
	return AIBaseCost + AIPerDayCost*int64(days) + AIPerOptionCost*opts.selected()
}

// QuoteChefPlan returns the flat chef plan cost.
func QuoteChefPlan() int64 {
	return ChefPlanCost
}

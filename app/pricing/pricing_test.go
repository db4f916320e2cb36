package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risewynn/qellum/app/pricing"
)

func TestFindPackage(t *testing.T) {
	p, ok := pricing.FindPackage("gourmet")
	require.True(t, ok)
	assert.Equal(t, int64(1200), p.Tokens)
	assert.True(t, p.PriceGBP.Equal(decimal.NewFromInt(10)))

	_, ok = pricing.FindPackage("banquet")
	assert.False(t, ok)
}

func TestPackagePrice_EURConversion(t *testing.T) {
	p, _ := pricing.FindPackage("epicurean")

	gbp, err := p.Price("GBP")
	require.NoError(t, err)
	assert.True(t, gbp.Equal(decimal.NewFromInt(20)))

	eur, err := p.Price("EUR")
	require.NoError(t, err)
	assert.True(t, eur.Equal(decimal.NewFromFloat(23.60)), "20 GBP at 1.18 should be 23.60 EUR, got %s", eur)

	_, err = p.Price("USD")
	assert.Error(t, err)
}

func TestQuoteAIPlan(t *testing.T) {
	// No options: base + days only.
	assert.Equal(t, int64(10+10*3), pricing.QuoteAIPlan(3, pricing.PlanOptions{}))

	// Every option selected adds 5 each.
	all := pricing.PlanOptions{
		ActivityLevel: "moderate",
		CalorieMethod: "mifflin",
		ProteinTarget: "high",
		MealStructure: "3+2",
		DietType:      "vegetarian",
	}
	assert.Equal(t, int64(10+10*7+5*5), pricing.QuoteAIPlan(7, all))

	// Partial selection.
	some := pricing.PlanOptions{DietType: "vegan", ActivityLevel: "sedentary"}
	assert.Equal(t, int64(10+10*1+5*2), pricing.QuoteAIPlan(1, some))
}

func TestQuoteAIPlan_Deterministic(t *testing.T) {
	opts := pricing.PlanOptions{CalorieMethod: "katch", MealStructure: "omad"}
	first := pricing.QuoteAIPlan(5, opts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, pricing.QuoteAIPlan(5, opts))
	}
}

func TestQuoteChefPlan(t *testing.T) {
	assert.Equal(t, int64(500), pricing.QuoteChefPlan())
}

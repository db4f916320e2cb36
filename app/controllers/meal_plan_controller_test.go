package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postQuote(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/meal-plans/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewMealPlanController().Quote(rec, req)
	return rec
}

func TestQuote_AIPlan(t *testing.T) {
	rec := postQuote(t, `{
		"type": "AI Plan",
		"plan": {"days": 3, "dietType": "vegan", "activityLevel": "moderate"}
	}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			Cost int64 `json:"cost"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	// 10 base + 10×3 days + 5×2 options
	assert.Equal(t, int64(50), out.Data.Cost)
}

func TestQuote_ChefPlan(t *testing.T) {
	rec := postQuote(t, `{
		"type": "Chef Plan",
		"request": {"dietaryRequirements": "no nuts", "preferences": "italian"}
	}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			Cost int64 `json:"cost"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(500), out.Data.Cost)
}

func TestQuote_RejectsUnknownType(t *testing.T) {
	rec := postQuote(t, `{"type": "Mystery Plan"}`)
	assert.Equal(t, 422, rec.Code)
}

func TestQuote_RejectsDaysOutOfRange(t *testing.T) {
	rec := postQuote(t, `{"type": "AI Plan", "plan": {"days": 9}}`)
	assert.Equal(t, 422, rec.Code)
}

func TestQuote_RejectsMissingPayload(t *testing.T) {
	rec := postQuote(t, `{"type": "AI Plan"}`)
	assert.Equal(t, 422, rec.Code)

	rec = postQuote(t, `{"type": "Chef Plan"}`)
	assert.Equal(t, 422, rec.Code)
}

func TestQuote_MalformedJSON(t *testing.T) {
	rec := postQuote(t, `{not json`)
	assert.Equal(t, 400, rec.Code)
}

package services

import (
	"bytes"
	"io"
	gohttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risewynn/qellum/app/models"
	qhttp "github.com/risewynn/qellum/pkg/http"
)

type roundTripFunc func(*gohttp.Request) (*gohttp.Response, error)

func (f roundTripFunc) RoundTrip(r *gohttp.Request) (*gohttp.Response, error) { return f(r) }

func mockProvider(t *testing.T, status int, body string) {
	t.Helper()

	t.Setenv("PLANNER_API_URL", "http://planner.test")
	t.Setenv("PLANNER_API_KEY", "test-key")

	qhttp.DefaultClient.Transport = roundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
		return &gohttp.Response{
			StatusCode: status,
			Header:     gohttp.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	})
	t.Cleanup(qhttp.ResetTransport)
}

const providerOK = `{"candidates":[{"content":{"parts":[{"text":"# 3-Day Plan\n\nDay 1: …"}]}}]}`

func TestPlannerGenerate(t *testing.T) {
	mockProvider(t, 200, providerOK)

	svc := NewPlannerService()
	plan, err := svc.Generate(PlanRequest{Days: 3, Brief: "high protein"})
	require.NoError(t, err)
	assert.Contains(t, plan, "3-Day Plan")
}

func TestPlannerGenerate_ProviderError(t *testing.T) {
	mockProvider(t, 500, `{"error":"boom"}`)

	svc := NewPlannerService()
	_, err := svc.Generate(PlanRequest{Days: 2})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestPlannerGenerate_EmptyPayload(t *testing.T) {
	mockProvider(t, 200, `{"candidates":[]}`)

	svc := NewPlannerService()
	_, err := svc.Generate(PlanRequest{Days: 2})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestPlannerGenerate_NotConfigured(t *testing.T) {
	t.Setenv("PLANNER_API_URL", "")
	t.Setenv("PLANNER_API_KEY", "")

	svc := NewPlannerService()
	_, err := svc.Generate(PlanRequest{Days: 1})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

// Generate-then-charge: a successful AI order debits exactly the quote
// and stores the generated content as a completed plan.
func TestOrderAIPlan(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	mockProvider(t, 200, providerOK)

	req := PlanRequest{Days: 3, Brief: "high protein"}
	svc := NewMealPlanService()

	plan, err := svc.OrderAIPlan(user.UID, req)
	require.NoError(t, err)

	assert.Equal(t, models.PlanTypeAI, plan.Type)
	assert.Equal(t, models.StatusCompleted, plan.Status)
	assert.Equal(t, req.Quote(), plan.Cost)
	assert.Contains(t, plan.Content, "3-Day Plan")
	assert.Equal(t, user.TokenBalance-req.Quote(), balanceOf(t, db, user.UID))

	// completedAt commits with the order row, not in a follow-up write.
	var stored models.MealPlan
	require.NoError(t, db.Where("reference_id = ?", plan.ReferenceID).First(&stored).Error)
	assert.NotNil(t, stored.CompletedAt)
}

// A failed generation must cost nothing: no debit, no order, no
// transaction.
func TestOrderAIPlan_FailedGenerationCostsNothing(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	mockProvider(t, 502, `bad gateway`)

	svc := NewMealPlanService()
	_, err := svc.OrderAIPlan(user.UID, PlanRequest{Days: 5})
	require.ErrorIs(t, err, ErrGenerationFailed)

	assert.Equal(t, user.TokenBalance, balanceOf(t, db, user.UID))

	var plans, txs int64
	require.NoError(t, db.Model(&models.MealPlan{}).Count(&plans).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txs).Error)
	assert.Zero(t, plans)
	assert.Zero(t, txs)
}

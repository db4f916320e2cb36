package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/event"
)

func TestFulfillment_Complete(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	t.Cleanup(event.Flush)

	plans := NewMealPlanService()
	order, err := plans.OrderChefPlan(user.UID, ChefRequest{
		DietaryRequirements: "no dairy",
		Preferences:         "mediterranean",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, order.Status)

	svc := NewFulfillmentService()
	done, err := svc.Complete(order.ReferenceID, "chef-1", "# Your plan\n\nDay 1…")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Equal(t, "chef-1", done.ChefUID)
	assert.NotNil(t, done.CompletedAt)
	assert.Contains(t, done.Content, "Day 1")
}

func TestFulfillment_CompleteTwice(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	t.Cleanup(event.Flush)

	plans := NewMealPlanService()
	order, err := plans.OrderChefPlan(user.UID, ChefRequest{
		DietaryRequirements: "vegetarian",
		Preferences:         "spicy",
	})
	require.NoError(t, err)

	svc := NewFulfillmentService()
	_, err = svc.Complete(order.ReferenceID, "chef-1", "first delivery")
	require.NoError(t, err)

	_, err = svc.Complete(order.ReferenceID, "chef-2", "second delivery")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// The first delivery must stand untouched.
	got, err := NewFulfillmentService().plans.FindByReference(order.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, "first delivery", got.Content)
	assert.Equal(t, "chef-1", got.ChefUID)
}

// The pending check is part of the UPDATE's WHERE clause, so a status
// change that lands after the initial read still blocks the delivery.
func TestFulfillment_CompleteGuardsOnCurrentStatus(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	t.Cleanup(event.Flush)

	plans := NewMealPlanService()
	order, err := plans.OrderChefPlan(user.UID, ChefRequest{
		DietaryRequirements: "halal",
		Preferences:         "quick meals",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.MealPlan{}).
		Where("reference_id = ?", order.ReferenceID).
		Update("status", models.StatusCancelled).Error)

	svc := NewFulfillmentService()
	_, err = svc.Complete(order.ReferenceID, "chef-1", "late delivery")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	got, err := svc.plans.FindByReference(order.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.NotContains(t, got.Content, "late delivery")
}

func TestFulfillment_UnknownReference(t *testing.T) {
	setupDB(t)

	svc := NewFulfillmentService()
	_, err := svc.Complete("does-not-exist", "chef-1", "content")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestFulfillment_PendingQueueOrder(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)

	plans := NewMealPlanService()
	first, err := plans.OrderChefPlan(user.UID, ChefRequest{DietaryRequirements: "a", Preferences: "b"})
	require.NoError(t, err)
	second, err := plans.OrderChefPlan(user.UID, ChefRequest{DietaryRequirements: "c", Preferences: "d"})
	require.NoError(t, err)

	svc := NewFulfillmentService()
	queue, err := svc.PendingRequests()
	require.NoError(t, err)
	require.Len(t, queue, 2)

	// Oldest first.
	assert.Equal(t, first.ReferenceID, queue[0].ReferenceID)
	assert.Equal(t, second.ReferenceID, queue[1].ReferenceID)
}

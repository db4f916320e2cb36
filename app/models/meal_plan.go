package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal plan types.
const (
	PlanTypeAI   = "AI Plan"
	PlanTypeChef = "Chef Plan"
)

// Meal plan statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// MealPlan is a purchased plan order. AI plans are completed at creation
// time; chef plans start pending and are completed by a staff member.
type MealPlan struct {
	gorm.Model
	ReferenceID string     `gorm:"uniqueIndex;size:36;not null" json:"id"`
	UserID      uint       `gorm:"not null;index"               json:"-"`
	UserUID     string     `gorm:"size:64;not null;index"       json:"userId"`
	Type        string     `gorm:"size:20;not null"             json:"type"`
	Cost        int64      `gorm:"not null"                     json:"cost"`
	Details     string     `gorm:"size:512"                     json:"details"`
	Content     string     `gorm:"type:text"                    json:"content"`
	Status      string     `gorm:"size:20;not null;default:pending" json:"status"`
	ChefUID     string     `gorm:"size:64"                      json:"chefId,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreationDate is what the API exposes for ordering history views.
func (p *MealPlan) CreationDate() time.Time { return p.CreatedAt }

package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook/internal/models"
)

// MatterResponse is the presentation shape for an important matter. The
// description is decoded from the delimiter-encoded content, and durations
// are shown in minutes; internally everything stays in seconds.
type MatterResponse struct {
	ID             uuid.UUID `json:"id"`
	Content        string    `json:"content"`
	Description    string    `json:"description,omitempty"`
	TargetMinutes  float64   `json:"target_minutes"`
	ActualMinutes  float64   `json:"actual_minutes"`
	CompletionRate *float64  `json:"completion_rate,omitempty"`
	Date           string    `json:"date"`
	Tags           []string  `json:"tags"`
}

// NewMatterResponse shapes a matter record plus its computed investment
// (seconds) and completion rate.
func NewMatterResponse(m *models.Memory, investedSeconds float64, rate *float64) MatterResponse {
	content, description := models.SplitDescription(m.Content)

	var targetMinutes float64
	if m.TargetDuration != nil {
		targetMinutes = *m.TargetDuration / 60
	}

	date := ""
	if m.StartTime != nil {
		date = m.StartTime.Format("2006-01-02")
	} else {
		date = m.CreatedAt.Format("2006-01-02")
	}

	return MatterResponse{
		ID:             m.ID,
		Content:        content,
		Description:    description,
		TargetMinutes:  targetMinutes,
		ActualMinutes:  investedSeconds / 60,
		CompletionRate: rate,
		Date:           date,
		Tags:           m.Tags,
	}
}

// GoalResponse is the presentation shape for a long-term goal.
type GoalResponse struct {
	ID              uuid.UUID  `json:"id"`
	Content         string     `json:"content"`
	Description     string     `json:"description,omitempty"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
	TargetValue     *float64   `json:"target_value,omitempty"`
	CurrentValue    float64    `json:"current_value"`
	CompletionRate  *float64   `json:"completion_rate,omitempty"`
	MilestonePoints []float64  `json:"milestone_points,omitempty"`
	ProgressType    string     `json:"progress_type,omitempty"`
	Tags            []string   `json:"tags"`
}

// NewGoalResponse shapes a goal record, recomputing the completion rate
// from the current values rather than trusting a stored one.
func NewGoalResponse(g *models.Memory) GoalResponse {
	content, description := models.SplitDescription(g.Content)
	current := g.CurrentValue

	return GoalResponse{
		ID:              g.ID,
		Content:         content,
		Description:     description,
		TargetDate:      g.TargetDate,
		TargetValue:     g.TargetValue,
		CurrentValue:    current,
		CompletionRate:  models.DeriveCompletionRate(&current, g.TargetValue),
		MilestonePoints: g.MilestonePoints,
		ProgressType:    g.ProgressType,
		Tags:            g.Tags,
	}
}

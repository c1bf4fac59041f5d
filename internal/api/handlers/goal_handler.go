package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daybookhq/daybook/internal/auth"
	"github.com/daybookhq/daybook/internal/services"
)

// GoalHandler exposes long-term goals and their progress log.
type GoalHandler struct {
	svc *services.DreamService
}

func NewGoalHandler(svc *services.DreamService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// CreateGoalInput DTO for creating a long-term goal
type CreateGoalInput struct {
	Content         string    `json:"content" binding:"required"`
	Description     string    `json:"description"`
	TargetDate      string    `json:"target_date"` // YYYY-MM-DD
	TargetValue     *float64  `json:"target_value"`
	ProgressType    string    `json:"progress_type"`
	MilestonePoints []float64 `json:"milestone_points"`
	Tags            []string  `json:"tags"`
}

// Create registers a new long-term goal.
func (h *GoalHandler) Create(c *gin.Context) {
	var input CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var targetDate *time.Time
	if input.TargetDate != "" {
		t, err := time.ParseInLocation("2006-01-02", input.TargetDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date, expected YYYY-MM-DD"})
			return
		}
		targetDate = &t
	}

	goal, err := h.svc.CreateLongTermGoal(c.Request.Context(), auth.CurrentUserID(c), services.CreateGoalParams{
		Content:         input.Content,
		Description:     input.Description,
		TargetDate:      targetDate,
		TargetValue:     input.TargetValue,
		ProgressType:    input.ProgressType,
		MilestonePoints: input.MilestonePoints,
		Tags:            input.Tags,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewGoalResponse(goal))
}

// List returns the caller's goals, excluding completed ones unless
// ?include_completed=true.
func (h *GoalHandler) List(c *gin.Context) {
	includeCompleted := c.Query("include_completed") == "true"

	goals, err := h.svc.GetLongTermGoals(c.Request.Context(), auth.CurrentUserID(c), includeCompleted)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, NewGoalResponse(&goals[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// Get returns a single goal.
func (h *GoalHandler) Get(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	goal, err := h.svc.GetLongTermGoal(c.Request.Context(), goalID, auth.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewGoalResponse(goal))
}

// UpdateProgressInput DTO for recording goal progress
type UpdateProgressInput struct {
	CurrentValue *float64 `json:"current_value" binding:"required"`
	Note         string   `json:"note"`
}

// Progress records a progress update and returns the fresh completion rate.
func (h *GoalHandler) Progress(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, rate, err := h.svc.UpdateGoalProgress(c.Request.Context(), goalID, auth.CurrentUserID(c), *input.CurrentValue, input.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goal":            NewGoalResponse(goal),
		"completion_rate": rate,
	})
}

// History returns the goal's progress log entries.
func (h *GoalHandler) History(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	entries, err := h.svc.GetGoalProgressHistory(c.Request.Context(), goalID, auth.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func parseGoalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return uuid.Nil, false
	}
	return id, true
}

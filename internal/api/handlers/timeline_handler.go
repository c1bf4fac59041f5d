package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daybookhq/daybook/internal/auth"
	"github.com/daybookhq/daybook/internal/services"
)

// TimelineHandler exposes the activity lifecycle over HTTP.
type TimelineHandler struct {
	svc *services.TimelineService
}

func NewTimelineHandler(svc *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{svc: svc}
}

// StartActivityInput DTO for starting a new activity
type StartActivityInput struct {
	Content        string   `json:"content" binding:"required"`
	TargetDuration *float64 `json:"target_duration"`
	Tags           []string `json:"tags"`
	AllowParallel  bool     `json:"allow_parallel"`
	ParallelGroup  *string  `json:"parallel_group"`
	Priority       int      `json:"priority"`
}

// Start begins a new activity for the caller.
func (h *TimelineHandler) Start(c *gin.Context) {
	var input StartActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.TargetDuration != nil && *input.TargetDuration < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_duration must not be negative"})
		return
	}

	activity, err := h.svc.StartActivity(c.Request.Context(), auth.CurrentUserID(c), services.StartActivityParams{
		Content:        input.Content,
		TargetDuration: input.TargetDuration,
		Tags:           input.Tags,
		AllowParallel:  input.AllowParallel,
		ParallelGroup:  input.ParallelGroup,
		Priority:       input.Priority,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// EndActivityInput DTO for ending the current activity
type EndActivityInput struct {
	Content string `json:"content"`
}

// End closes the caller's ongoing activity.
func (h *TimelineHandler) End(c *gin.Context) {
	var input EndActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.svc.EndActivity(c.Request.Context(), auth.CurrentUserID(c), input.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// Daily returns the caller's timeline for a day.
func (h *TimelineHandler) Daily(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	records, err := h.svc.GetDailyTimeline(c.Request.Context(), auth.CurrentUserID(c), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Current returns the caller's ongoing activities.
func (h *TimelineHandler) Current(c *gin.Context) {
	records, err := h.svc.GetCurrentActivities(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daybookhq/daybook/internal/auth"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/services"
)

// MatterHandler exposes important matters and their aggregation.
type MatterHandler struct {
	svc *services.CoreFocusService
}

func NewMatterHandler(svc *services.CoreFocusService) *MatterHandler {
	return &MatterHandler{svc: svc}
}

// CreateMatterInput DTO for creating an important matter
type CreateMatterInput struct {
	Content       string   `json:"content" binding:"required"`
	TargetMinutes float64  `json:"target_minutes" binding:"required"`
	Tags          []string `json:"tags"`
	Description   string   `json:"description"`
}

// Create registers a new important matter for today.
func (h *MatterHandler) Create(c *gin.Context) {
	var input CreateMatterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.TargetMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_minutes must be positive"})
		return
	}

	matter, err := h.svc.CreateImportantMatter(c.Request.Context(), auth.CurrentUserID(c), services.CreateMatterParams{
		Content:       input.Content,
		TargetMinutes: input.TargetMinutes,
		Tags:          input.Tags,
		Description:   input.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewMatterResponse(matter, 0, nil))
}

// Daily lists the caller's matters for a day.
func (h *MatterHandler) Daily(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	matters, err := h.svc.GetDailyImportantMatters(c.Request.Context(), auth.CurrentUserID(c), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]MatterResponse, 0, len(matters))
	for i := range matters {
		invested, err := h.svc.CalculateTimeInvestment(c.Request.Context(), matters[i].ID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		rate := models.DeriveCompletionRate(&invested, matters[i].TargetDuration)
		responses = append(responses, NewMatterResponse(&matters[i], invested, rate))
	}

	c.JSON(http.StatusOK, responses)
}

// MatterActivityInput carries the optional note for matter start/end calls.
type MatterActivityInput struct {
	Content string `json:"content"`
}

// Start begins a timeline activity linked to the matter by tag inheritance.
func (h *MatterHandler) Start(c *gin.Context) {
	matterID, ok := parseMatterID(c)
	if !ok {
		return
	}

	var input MatterActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.svc.StartMatterActivity(c.Request.Context(), matterID, auth.CurrentUserID(c), input.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// End closes the caller's ongoing activity and reports the matter's fresh
// completion rate.
func (h *MatterHandler) End(c *gin.Context) {
	matterID, ok := parseMatterID(c)
	if !ok {
		return
	}

	var input MatterActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, rate, err := h.svc.EndMatterActivity(c.Request.Context(), matterID, auth.CurrentUserID(c), input.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity":        activity,
		"completion_rate": rate,
	})
}

// Activities returns the matter with its correlated activities and totals.
func (h *MatterHandler) Activities(c *gin.Context) {
	matterID, ok := parseMatterID(c)
	if !ok {
		return
	}

	matter, activities, err := h.svc.GetMatterActivities(c.Request.Context(), matterID, auth.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var total float64
	for _, a := range activities {
		if a.Duration != nil {
			total += *a.Duration
		}
	}
	rate := models.DeriveCompletionRate(&total, matter.TargetDuration)

	c.JSON(http.StatusOK, gin.H{
		"matter":          NewMatterResponse(matter, total, rate),
		"activities":      activities,
		"total_seconds":   total,
		"completion_rate": rate,
	})
}

func parseMatterID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid matter id"})
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/daybookhq/daybook/internal/analysis"
	"github.com/daybookhq/daybook/internal/auth"
	"github.com/daybookhq/daybook/internal/models"
)

// MemoryHandler provides plain CRUD over records plus the optional text
// analysis endpoint. Lifecycle transitions never happen here; those go
// through the timeline/matter/goal endpoints.
type MemoryHandler struct {
	db       *gorm.DB
	analyzer analysis.Analyzer
}

func NewMemoryHandler(db *gorm.DB, analyzer analysis.Analyzer) *MemoryHandler {
	return &MemoryHandler{db: db, analyzer: analyzer}
}

// CreateMemoryInput DTO for creating a plain record
type CreateMemoryInput struct {
	Content   string            `json:"content" binding:"required"`
	Kind      models.MemoryType `json:"kind" binding:"required"`
	FocusKind *models.FocusType `json:"focus_kind"`
	Tags      []string          `json:"tags"`
}

// Create stores a record without any lifecycle side effects.
func (h *MemoryHandler) Create(c *gin.Context) {
	var input CreateMemoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memory := models.Memory{
		UserID:    auth.CurrentUserID(c),
		Content:   input.Content,
		Kind:      input.Kind,
		FocusKind: input.FocusKind,
		Tags:      datatypes.NewJSONSlice(input.Tags),
		Priority:  1,
	}

	if err := h.db.Create(&memory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create memory"})
		return
	}

	c.JSON(http.StatusCreated, memory)
}

// List returns the caller's records with skip/limit pagination.
func (h *MemoryHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var memories []models.Memory
	err := h.db.
		Where("user_id = ?", auth.CurrentUserID(c)).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&memories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve memories"})
		return
	}

	c.JSON(http.StatusOK, memories)
}

// Get returns a single record owned by the caller.
func (h *MemoryHandler) Get(c *gin.Context) {
	memory, ok := h.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, memory)
}

// UpdateMemoryInput DTO for updating a record. Only content and tags are
// editable; lifecycle and derived fields are off limits here.
type UpdateMemoryInput struct {
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// Update edits content and tags in place.
func (h *MemoryHandler) Update(c *gin.Context) {
	memory, ok := h.find(c)
	if !ok {
		return
	}

	var input UpdateMemoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Content != nil {
		memory.Content = *input.Content
	}
	if input.Tags != nil {
		memory.Tags = datatypes.NewJSONSlice(*input.Tags)
	}

	if err := h.db.Save(memory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update memory"})
		return
	}

	c.JSON(http.StatusOK, memory)
}

// Delete removes a record.
func (h *MemoryHandler) Delete(c *gin.Context) {
	memory, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.Delete(memory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete memory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AnalyzeInput DTO for the text analysis endpoint
type AnalyzeInput struct {
	Text string `json:"text" binding:"required"`
}

// Analyze runs the configured analyzer over free text and returns a
// structured create proposal. Nothing is written; the caller submits the
// proposal through the normal create endpoints.
func (h *MemoryHandler) Analyze(c *gin.Context) {
	if h.analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis is not configured"})
		return
	}

	var input AnalyzeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), input.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MemoryHandler) find(c *gin.Context) (*models.Memory, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid memory id"})
		return nil, false
	}

	var memory models.Memory
	if err := h.db.First(&memory, "id = ? AND user_id = ?", id, auth.CurrentUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Memory not found"})
		return nil, false
	}
	return &memory, true
}

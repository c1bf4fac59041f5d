// Package analysis turns free journal text into a structured record
// proposal. It sits outside the authoritative write path: callers review
// the proposal and submit it through the normal create endpoints.
package analysis

import (
	"context"

	"github.com/daybookhq/daybook/internal/models"
)

// Result is a structured create proposal extracted from free text.
type Result struct {
	Kind          models.MemoryType `json:"kind"`
	FocusKind     *models.FocusType `json:"focus_kind,omitempty"`
	Content       string            `json:"content"`
	Description   string            `json:"description,omitempty"`
	Tags          []string          `json:"tags"`
	TargetMinutes *float64          `json:"target_minutes,omitempty"`
	TargetValue   *float64          `json:"target_value,omitempty"`
	TargetDate    string            `json:"target_date,omitempty"` // YYYY-MM-DD
}

// Analyzer extracts a structured proposal from free text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Result, error)
}

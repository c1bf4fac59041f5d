package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/daybookhq/daybook/internal/models"
)

// DreamService manages long-term goals. Goals live outside the day-scoped
// duration model: completion comes from an explicit progress value against
// a target value, not from time investment.
type DreamService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDreamService creates a goal tracker on top of the given DB.
func NewDreamService(db *gorm.DB) *DreamService {
	return &DreamService{db: db, now: time.Now}
}

// CreateGoalParams carries the fields for a new long-term goal.
type CreateGoalParams struct {
	Content         string
	Description     string
	TargetDate      *time.Time
	TargetValue     *float64
	ProgressType    string
	MilestonePoints []float64
	Tags            []string
}

// CreateLongTermGoal creates a CORE_FOCUS/LONG_TERM record with progress
// starting at zero.
func (s *DreamService) CreateLongTermGoal(ctx context.Context, userID uuid.UUID, p CreateGoalParams) (*models.Memory, error) {
	now := s.now()
	focus := models.FocusTypeLongTerm
	start := now

	goal := &models.Memory{
		UserID:          userID,
		Kind:            models.MemoryTypeCoreFocus,
		FocusKind:       &focus,
		Content:         models.ComposeContent(p.Content, p.Description),
		Tags:            datatypes.NewJSONSlice(p.Tags),
		StartTime:       &start,
		IsLongTerm:      true,
		TargetDate:      p.TargetDate,
		TargetValue:     p.TargetValue,
		CurrentValue:    0,
		MilestonePoints: datatypes.NewJSONSlice(p.MilestonePoints),
		ProgressType:    p.ProgressType,
		Priority:        1,
	}

	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, fmt.Errorf("create long term goal: %w", err)
	}

	log.Printf("created long term goal %s for user %s", goal.ID, userID)
	return goal, nil
}

// UpdateGoalProgress overwrites the goal's current value (last write wins)
// and appends an immutable timeline log entry recording the change. The
// log entry is the only durable history of progress updates. The returned
// rate is nil when the goal has no positive target value. A goal owned by
// another user is ErrNotFound, same as a missing one.
func (s *DreamService) UpdateGoalProgress(ctx context.Context, goalID, userID uuid.UUID, currentValue float64, note string) (*models.Memory, *float64, error) {
	now := s.now()
	var goal models.Memory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := lockForUpdate(tx).
			Where("id = ? AND user_id = ? AND kind = ? AND focus_kind = ? AND is_long_term = ?",
				goalID, userID, models.MemoryTypeCoreFocus, models.FocusTypeLongTerm, true).
			Limit(1).
			Find(&goal)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		goal.CurrentValue = currentValue
		goal.CompletionRate = models.DeriveCompletionRate(&currentValue, goal.TargetValue)
		if err := tx.Save(&goal).Error; err != nil {
			return err
		}

		content := fmt.Sprintf("Progress update: %g", currentValue)
		if note != "" {
			content = fmt.Sprintf("Progress update: %g. %s", currentValue, note)
		}

		at := now
		zero := 0.0
		entry := &models.Memory{
			UserID:    goal.UserID,
			Kind:      models.MemoryTypeTimeline,
			Content:   content,
			Tags:      goal.Tags,
			StartTime: &at,
			EndTime:   &at,
			Duration:  &zero,
			ParentID:  &goal.ID,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("update goal progress: %w", err)
	}

	return &goal, goal.CompletionRate, nil
}

// GetLongTermGoals lists the user's goals ordered by target date. Unless
// includeCompleted is set, goals whose current value has reached their
// target are excluded; goals without a target value always remain.
func (s *DreamService) GetLongTermGoals(ctx context.Context, userID uuid.UUID, includeCompleted bool) ([]models.Memory, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND focus_kind = ? AND is_long_term = ?",
			userID, models.MemoryTypeCoreFocus, models.FocusTypeLongTerm, true)
	if !includeCompleted {
		query = query.Where("target_value IS NULL OR current_value < target_value")
	}

	var goals []models.Memory
	if err := query.Order("target_date ASC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list long term goals: %w", err)
	}
	return goals, nil
}

// GetLongTermGoal returns a single goal owned by the user.
func (s *DreamService) GetLongTermGoal(ctx context.Context, goalID, userID uuid.UUID) (*models.Memory, error) {
	var goal models.Memory
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND kind = ? AND focus_kind = ? AND is_long_term = ?",
			goalID, userID, models.MemoryTypeCoreFocus, models.FocusTypeLongTerm, true).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get long term goal: %w", err)
	}
	return &goal, nil
}

// GetGoalProgressHistory returns the goal's progress log entries, newest
// first.
func (s *DreamService) GetGoalProgressHistory(ctx context.Context, goalID, userID uuid.UUID) ([]models.Memory, error) {
	if _, err := s.GetLongTermGoal(ctx, goalID, userID); err != nil {
		return nil, err
	}

	var entries []models.Memory
	err := s.db.WithContext(ctx).
		Where("parent_id = ? AND kind = ?", goalID, models.MemoryTypeTimeline).
		Order("start_time DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("goal progress history: %w", err)
	}
	return entries, nil
}

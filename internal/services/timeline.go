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
	"gorm.io/gorm/clause"

	"github.com/daybookhq/daybook/internal/models"
)

// TimelineService owns the activity lifecycle: starting, ending, and the
// per-user "at most one non-parallel ongoing activity" rule.
type TimelineService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTimelineService creates a timeline service on top of the given DB.
func NewTimelineService(db *gorm.DB) *TimelineService {
	return &TimelineService{db: db, now: time.Now}
}

// StartActivityParams carries the caller-supplied fields for a new activity.
type StartActivityParams struct {
	Content        string
	TargetDuration *float64
	Tags           []string
	AllowParallel  bool
	ParallelGroup  *string
	Priority       int
}

// StartActivity creates a new ongoing TIMELINE activity. Unless the new
// activity allows parallelism, every ongoing activity of the user is closed
// first, in the same transaction and at the same instant the new one
// starts. The closing is deliberately not scoped by parallel group: a new
// focused activity takes over the user's current slot.
func (s *TimelineService) StartActivity(ctx context.Context, userID uuid.UUID, p StartActivityParams) (*models.Memory, error) {
	now := s.now()
	priority := p.Priority
	if priority == 0 {
		priority = 1
	}

	start := now
	activity := &models.Memory{
		UserID:         userID,
		Kind:           models.MemoryTypeTimeline,
		Content:        p.Content,
		Tags:           datatypes.NewJSONSlice(p.Tags),
		StartTime:      &start,
		IsOngoing:      true,
		TargetDuration: p.TargetDuration,
		AllowParallel:  p.AllowParallel,
		ParallelGroup:  p.ParallelGroup,
		Priority:       priority,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !p.AllowParallel {
			var ongoing []models.Memory
			if err := lockForUpdate(tx).
				Where("user_id = ? AND kind = ? AND is_ongoing = ?", userID, models.MemoryTypeTimeline, true).
				Find(&ongoing).Error; err != nil {
				return err
			}
			for i := range ongoing {
				closeActivity(&ongoing[i], now)
				if err := tx.Save(&ongoing[i]).Error; err != nil {
					return err
				}
			}
		}
		return tx.Create(activity).Error
	})
	if err != nil {
		return nil, fmt.Errorf("start activity: %w", err)
	}

	log.Printf("started activity %s for user %s", activity.ID, userID)
	return activity, nil
}

// EndActivity closes the user's ongoing activity, deriving duration and
// completion rate. When note is non-empty, the activity content is
// rewritten as a composed summary. Returns ErrNoOngoingActivity when
// nothing is ongoing.
func (s *TimelineService) EndActivity(ctx context.Context, userID uuid.UUID, note string) (*models.Memory, error) {
	now := s.now()
	var activity models.Memory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := lockForUpdate(tx).
			Where("user_id = ? AND kind = ? AND is_ongoing = ?", userID, models.MemoryTypeTimeline, true).
			Order("created_at ASC").
			Limit(1).
			Find(&activity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoOngoingActivity
		}

		closeActivity(&activity, now)
		if note != "" {
			minutes := 0.0
			if activity.Duration != nil {
				minutes = *activity.Duration / 60
			}
			activity.Content = fmt.Sprintf("%s%sFinished at: %s\nDuration: %.1f minutes\nNote: %s",
				activity.Content, models.DescriptionDelimiter,
				now.Format("15:04:05"), minutes, note)
		}
		return tx.Save(&activity).Error
	})
	if err != nil {
		if errors.Is(err, ErrNoOngoingActivity) {
			return nil, ErrNoOngoingActivity
		}
		return nil, fmt.Errorf("end activity: %w", err)
	}

	log.Printf("ended activity %s for user %s", activity.ID, userID)
	return &activity, nil
}

// GetDailyTimeline returns the user's TIMELINE records whose start_time
// falls within the given day (default today), ascending.
func (s *TimelineService) GetDailyTimeline(ctx context.Context, userID uuid.UUID, date *time.Time) ([]models.Memory, error) {
	day := s.now()
	if date != nil {
		day = *date
	}
	dayStart, dayEnd := models.DayWindow(day)

	var records []models.Memory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND start_time >= ? AND start_time < ?",
			userID, models.MemoryTypeTimeline, dayStart, dayEnd).
		Order("start_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("daily timeline: %w", err)
	}
	return records, nil
}

// GetCurrentActivities returns all ongoing activities for the user,
// highest priority first, stable by creation order.
func (s *TimelineService) GetCurrentActivities(ctx context.Context, userID uuid.UUID) ([]models.Memory, error) {
	var records []models.Memory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND is_ongoing = ?", userID, models.MemoryTypeTimeline, true).
		Order("priority DESC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("current activities: %w", err)
	}
	return records, nil
}

// closeActivity transitions an ongoing activity to ended at the given
// instant and rederives its duration and completion rate.
func closeActivity(m *models.Memory, at time.Time) {
	end := at
	m.IsOngoing = false
	m.EndTime = &end
	m.Duration = models.DeriveDuration(m.StartTime, m.EndTime)
	m.CompletionRate = models.DeriveCompletionRate(m.Duration, m.TargetDuration)
}

// lockForUpdate takes row locks on the ongoing-activity set so concurrent
// start/end calls for the same user serialize. Sqlite (used in tests)
// serializes writers on its own and does not speak FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

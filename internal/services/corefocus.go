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

// defaultMatterActivityTarget is the target duration, in seconds, given to
// an activity spawned from a matter when the caller supplies none.
const defaultMatterActivityTarget = 3600.0

// CoreFocusService manages important matters and their aggregation over
// correlated timeline activities. Correlation is tag overlap within the
// matter's creation day; there is no parent foreign key. Any same-day
// activity sharing a tag counts, regardless of semantic relevance.
type CoreFocusService struct {
	db       *gorm.DB
	timeline *TimelineService
	now      func() time.Time
}

// NewCoreFocusService creates a matter service delegating activity
// lifecycle calls to the given timeline service.
func NewCoreFocusService(db *gorm.DB, timeline *TimelineService) *CoreFocusService {
	return &CoreFocusService{db: db, timeline: timeline, now: time.Now}
}

// CreateMatterParams carries the fields for a new important matter.
// TargetMinutes is converted to seconds at this boundary; everything
// downstream works in seconds.
type CreateMatterParams struct {
	Content       string
	TargetMinutes float64
	Tags          []string
	Description   string
}

// CreateImportantMatter creates a CORE_FOCUS/IMPORTANT record for today.
func (s *CoreFocusService) CreateImportantMatter(ctx context.Context, userID uuid.UUID, p CreateMatterParams) (*models.Memory, error) {
	now := s.now()
	focus := models.FocusTypeImportant
	target := p.TargetMinutes * 60
	start := now

	matter := &models.Memory{
		UserID:         userID,
		Kind:           models.MemoryTypeCoreFocus,
		FocusKind:      &focus,
		Content:        models.ComposeContent(p.Content, p.Description),
		Tags:           datatypes.NewJSONSlice(p.Tags),
		StartTime:      &start,
		IsOngoing:      true,
		TargetDuration: &target,
		Priority:       1,
	}

	if err := s.db.WithContext(ctx).Create(matter).Error; err != nil {
		return nil, fmt.Errorf("create important matter: %w", err)
	}

	log.Printf("created important matter %s (target %.0f minutes)", matter.ID, p.TargetMinutes)
	return matter, nil
}

// GetDailyImportantMatters returns the user's matters created on the given
// day (default today).
func (s *CoreFocusService) GetDailyImportantMatters(ctx context.Context, userID uuid.UUID, date *time.Time) ([]models.Memory, error) {
	day := s.now()
	if date != nil {
		day = *date
	}
	dayStart, dayEnd := models.DayWindow(day)

	var matters []models.Memory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND focus_kind = ? AND start_time >= ? AND start_time < ?",
			userID, models.MemoryTypeCoreFocus, models.FocusTypeImportant, dayStart, dayEnd).
		Find(&matters).Error
	if err != nil {
		return nil, fmt.Errorf("daily important matters: %w", err)
	}
	return matters, nil
}

// StartMatterActivity starts a timeline activity for the matter. The
// activity inherits the matter's tags, which is the only linkage between
// the two records.
func (s *CoreFocusService) StartMatterActivity(ctx context.Context, matterID, userID uuid.UUID, content string) (*models.Memory, error) {
	matter, err := s.findMatter(ctx, matterID, userID)
	if err != nil {
		return nil, err
	}

	if content == "" {
		title, _ := models.SplitDescription(matter.Content)
		content = fmt.Sprintf("Working on: %s", title)
	}

	target := defaultMatterActivityTarget
	return s.timeline.StartActivity(ctx, userID, StartActivityParams{
		Content:        content,
		TargetDuration: &target,
		Tags:           matter.Tags,
	})
}

// EndMatterActivity ends the user's ongoing activity and recomputes the
// matter's total investment and completion rate from the correlated
// records. The rate is nil when the matter has no positive target.
func (s *CoreFocusService) EndMatterActivity(ctx context.Context, matterID, userID uuid.UUID, content string) (*models.Memory, *float64, error) {
	matter, err := s.findMatter(ctx, matterID, userID)
	if err != nil {
		return nil, nil, err
	}

	activity, err := s.timeline.EndActivity(ctx, userID, content)
	if err != nil {
		return nil, nil, err
	}

	invested, err := s.CalculateTimeInvestment(ctx, matterID)
	if err != nil {
		return nil, nil, err
	}
	rate := models.DeriveCompletionRate(&invested, matter.TargetDuration)

	return activity, rate, nil
}

// CalculateTimeInvestment sums the durations, in seconds, of all timeline
// activities correlated with the matter: same user, same calendar day as
// the matter, at least one shared tag. A missing matter yields 0 rather
// than an error; this is a lenient internal helper.
func (s *CoreFocusService) CalculateTimeInvestment(ctx context.Context, matterID uuid.UUID) (float64, error) {
	var matter models.Memory
	err := s.db.WithContext(ctx).Where("id = ?", matterID).First(&matter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("calculate time investment: %w", err)
	}

	activities, err := s.correlatedActivities(ctx, &matter, "start_time ASC")
	if err != nil {
		return 0, err
	}

	var total float64
	for _, a := range activities {
		if a.Duration != nil {
			total += *a.Duration
		}
	}
	return total, nil
}

// GetMatterActivities returns the matter together with its correlated
// activities, newest first.
func (s *CoreFocusService) GetMatterActivities(ctx context.Context, matterID, userID uuid.UUID) (*models.Memory, []models.Memory, error) {
	matter, err := s.findMatter(ctx, matterID, userID)
	if err != nil {
		return nil, nil, err
	}

	activities, err := s.correlatedActivities(ctx, matter, "start_time DESC")
	if err != nil {
		return nil, nil, err
	}
	return matter, activities, nil
}

func (s *CoreFocusService) findMatter(ctx context.Context, matterID, userID uuid.UUID) (*models.Memory, error) {
	var matter models.Memory
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND kind = ? AND focus_kind = ?",
			matterID, userID, models.MemoryTypeCoreFocus, models.FocusTypeImportant).
		First(&matter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find matter: %w", err)
	}
	return &matter, nil
}

// correlatedActivities fetches the user's timeline records for the
// matter's day and keeps those sharing at least one tag. The tag filter
// runs in Go because tags live in a JSON column that both Postgres and the
// sqlite test database can store.
func (s *CoreFocusService) correlatedActivities(ctx context.Context, matter *models.Memory, order string) ([]models.Memory, error) {
	if matter.StartTime == nil {
		return nil, nil
	}
	dayStart, dayEnd := models.DayWindow(*matter.StartTime)

	var candidates []models.Memory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND start_time >= ? AND start_time < ?",
			matter.UserID, models.MemoryTypeTimeline, dayStart, dayEnd).
		Order(order).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("correlated activities: %w", err)
	}

	var related []models.Memory
	for _, c := range candidates {
		if models.TagsOverlap(matter.Tags, c.Tags) {
			related = append(related, c)
		}
	}
	return related, nil
}

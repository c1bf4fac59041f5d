package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatterFixture(t *testing.T) (*CoreFocusService, *TimelineService, *time.Time, uuid.UUID) {
	t.Helper()

	db := newTestDB(t)
	userID := newTestUser(t, db)

	clock, now := fixedClock(baseTime)
	timeline := NewTimelineService(db)
	timeline.now = now
	matters := NewCoreFocusService(db, timeline)
	matters.now = now

	return matters, timeline, clock, userID
}

func TestCreateImportantMatter(t *testing.T) {
	svc, _, _, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Finish quarterly report",
		TargetMinutes: 240,
		Tags:          []string{"report", "work"},
		Description:   "numbers, charts, summary",
	})
	require.NoError(t, err)

	require.NotNil(t, matter.TargetDuration)
	assert.Equal(t, 14400.0, *matter.TargetDuration)
	assert.True(t, matter.IsOngoing)
	assert.Contains(t, matter.Content, "Finish quarterly report")
	assert.Contains(t, matter.Content, "numbers, charts, summary")

	daily, err := svc.GetDailyImportantMatters(ctx, userID, nil)
	require.NoError(t, err)
	assert.Len(t, daily, 1)
}

func TestMatterInvestmentAndCompletionRate(t *testing.T) {
	svc, timeline, clock, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Deep work block",
		TargetMinutes: 240,
		Tags:          []string{"deep"},
	})
	require.NoError(t, err)

	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "Writing the spec",
		Tags:    []string{"deep", "spec"},
	})
	require.NoError(t, err)

	*clock = baseTime.Add(time.Hour)
	_, err = timeline.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	invested, err := svc.CalculateTimeInvestment(ctx, matter.ID)
	require.NoError(t, err)
	assert.Equal(t, 3600.0, invested)

	// 3600s against a 14400s target is a quarter done.
	_, activities, err := svc.GetMatterActivities(ctx, matter.ID, userID)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	*clock = baseTime.Add(2 * time.Hour)
	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "More spec work",
		Tags:    []string{"deep"},
	})
	require.NoError(t, err)

	*clock = baseTime.Add(3 * time.Hour)
	_, rate, err := svc.EndMatterActivity(ctx, matter.ID, userID, "done for now")
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 50.0, *rate)
}

func TestCorrelationRequiresTagOverlap(t *testing.T) {
	svc, timeline, clock, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Study math",
		TargetMinutes: 60,
		Tags:          []string{"math"},
	})
	require.NoError(t, err)

	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "Cooking dinner",
		Tags:    []string{"home"},
	})
	require.NoError(t, err)
	*clock = baseTime.Add(time.Hour)
	_, err = timeline.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	invested, err := svc.CalculateTimeInvestment(ctx, matter.ID)
	require.NoError(t, err)
	assert.Zero(t, invested)
}

func TestCorrelationUntaggedMatterMatchesNothing(t *testing.T) {
	svc, timeline, clock, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Untagged matter",
		TargetMinutes: 60,
	})
	require.NoError(t, err)

	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "Tagged work",
		Tags:    []string{"work"},
	})
	require.NoError(t, err)
	*clock = baseTime.Add(30 * time.Minute)
	_, err = timeline.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	invested, err := svc.CalculateTimeInvestment(ctx, matter.ID)
	require.NoError(t, err)
	assert.Zero(t, invested)
}

func TestCorrelationScopedToMatterDay(t *testing.T) {
	svc, timeline, clock, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Today's matter",
		TargetMinutes: 120,
		Tags:          []string{"work"},
	})
	require.NoError(t, err)

	// Same tag, next day: outside the matter's window.
	*clock = baseTime.AddDate(0, 0, 1)
	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "Tomorrow's work",
		Tags:    []string{"work"},
	})
	require.NoError(t, err)
	*clock = baseTime.AddDate(0, 0, 1).Add(time.Hour)
	_, err = timeline.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	invested, err := svc.CalculateTimeInvestment(ctx, matter.ID)
	require.NoError(t, err)
	assert.Zero(t, invested)
}

func TestSharedTagCountsTowardBothMatters(t *testing.T) {
	svc, timeline, clock, userID := newMatterFixture(t)
	ctx := context.Background()

	first, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content: "Matter A", TargetMinutes: 60, Tags: []string{"work"},
	})
	require.NoError(t, err)
	second, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content: "Matter B", TargetMinutes: 60, Tags: []string{"work"},
	})
	require.NoError(t, err)

	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "Shared work",
		Tags:    []string{"work"},
	})
	require.NoError(t, err)
	*clock = baseTime.Add(30 * time.Minute)
	_, err = timeline.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	// Correlation is tag overlap, so one activity can feed several
	// matters at once.
	investedA, err := svc.CalculateTimeInvestment(ctx, first.ID)
	require.NoError(t, err)
	investedB, err := svc.CalculateTimeInvestment(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, investedA)
	assert.Equal(t, 1800.0, investedB)
}

func TestStartMatterActivityInheritsTags(t *testing.T) {
	svc, _, _, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Write blog post",
		TargetMinutes: 90,
		Tags:          []string{"blog", "writing"},
		Description:   "draft and edit",
	})
	require.NoError(t, err)

	activity, err := svc.StartMatterActivity(ctx, matter.ID, userID, "")
	require.NoError(t, err)

	assert.Equal(t, "Working on: Write blog post", activity.Content)
	assert.ElementsMatch(t, []string{"blog", "writing"}, []string(activity.Tags))
	require.NotNil(t, activity.TargetDuration)
	assert.Equal(t, 3600.0, *activity.TargetDuration)
	assert.True(t, activity.IsOngoing)
}

func TestMatterNotFound(t *testing.T) {
	svc, _, _, userID := newMatterFixture(t)
	ctx := context.Background()

	_, err := svc.StartMatterActivity(ctx, uuid.New(), userID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.GetMatterActivities(ctx, uuid.New(), userID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The lenient internal sum treats a missing matter as zero.
	invested, err := svc.CalculateTimeInvestment(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, invested)
}

func TestEndMatterActivityNilRateWithoutTarget(t *testing.T) {
	svc, timeline, clock, userID := newMatterFixture(t)
	ctx := context.Background()

	matter, err := svc.CreateImportantMatter(ctx, userID, CreateMatterParams{
		Content:       "Zero target",
		TargetMinutes: 0,
		Tags:          []string{"x"},
	})
	require.NoError(t, err)

	_, err = timeline.StartActivity(ctx, userID, StartActivityParams{
		Content: "Some work",
		Tags:    []string{"x"},
	})
	require.NoError(t, err)

	*clock = baseTime.Add(15 * time.Minute)
	_, rate, err := svc.EndMatterActivity(ctx, matter.ID, userID, "")
	require.NoError(t, err)
	assert.Nil(t, rate)
}

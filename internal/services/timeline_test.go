package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func TestStartActivityClosesOngoing(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	first, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Writing docs"})
	require.NoError(t, err)
	assert.True(t, first.IsOngoing)
	require.NotNil(t, first.StartTime)
	assert.True(t, first.StartTime.Equal(baseTime))

	*clock = baseTime.Add(30 * time.Minute)
	second, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Code review"})
	require.NoError(t, err)
	assert.True(t, second.IsOngoing)

	closed, err := svc.GetDailyTimeline(ctx, userID, nil)
	require.NoError(t, err)
	require.Len(t, closed, 2)

	prev := closed[0]
	assert.Equal(t, first.ID, prev.ID)
	assert.False(t, prev.IsOngoing)
	require.NotNil(t, prev.EndTime)
	// The old activity ends at exactly the instant the new one starts.
	assert.True(t, prev.EndTime.Equal(*second.StartTime))
	require.NotNil(t, prev.Duration)
	assert.Equal(t, 1800.0, *prev.Duration)
}

func TestStartActivityClosesAllOngoing(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Main work"})
	require.NoError(t, err)
	_, err = svc.StartActivity(ctx, userID, StartActivityParams{Content: "Music", AllowParallel: true})
	require.NoError(t, err)

	current, err := svc.GetCurrentActivities(ctx, userID)
	require.NoError(t, err)
	require.Len(t, current, 2)

	// A focused start takes over the slot: every ongoing activity is
	// closed, parallel ones included.
	*clock = baseTime.Add(10 * time.Minute)
	_, err = svc.StartActivity(ctx, userID, StartActivityParams{Content: "Meeting"})
	require.NoError(t, err)

	current, err = svc.GetCurrentActivities(ctx, userID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Meeting", current[0].Content)
}

func TestStartParallelActivityKeepsOngoing(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	_, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Main work"})
	require.NoError(t, err)
	_, err = svc.StartActivity(ctx, userID, StartActivityParams{Content: "Podcast", AllowParallel: true})
	require.NoError(t, err)

	current, err := svc.GetCurrentActivities(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, current, 2)
}

func TestEndActivityClosesOldestParallel(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	older, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "First stream", AllowParallel: true})
	require.NoError(t, err)
	*clock = baseTime.Add(5 * time.Minute)
	_, err = svc.StartActivity(ctx, userID, StartActivityParams{Content: "Second stream", AllowParallel: true})
	require.NoError(t, err)

	// With several parallels running, end picks the earliest-created one.
	*clock = baseTime.Add(20 * time.Minute)
	ended, err := svc.EndActivity(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, older.ID, ended.ID)
	require.NotNil(t, ended.Duration)
	assert.Equal(t, 1200.0, *ended.Duration)

	current, err := svc.GetCurrentActivities(ctx, userID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Second stream", current[0].Content)
}

func TestStartActivityDoesNotTouchOtherUsers(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db)
	bob := newTestUser(t, db)
	ctx := context.Background()

	_, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, alice, StartActivityParams{Content: "Alice works"})
	require.NoError(t, err)
	_, err = svc.StartActivity(ctx, bob, StartActivityParams{Content: "Bob works"})
	require.NoError(t, err)

	current, err := svc.GetCurrentActivities(ctx, alice)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Alice works", current[0].Content)
}

func TestEndActivityNoOngoing(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)

	svc := NewTimelineService(db)
	_, err := svc.EndActivity(context.Background(), userID, "")
	assert.ErrorIs(t, err, ErrNoOngoingActivity)
}

func TestEndActivityDerivesDurationAndRate(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	target := 3600.0
	_, err := svc.StartActivity(ctx, userID, StartActivityParams{
		Content:        "Focused hour",
		TargetDuration: &target,
	})
	require.NoError(t, err)

	*clock = baseTime.Add(30 * time.Minute)
	ended, err := svc.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	assert.False(t, ended.IsOngoing)
	require.NotNil(t, ended.Duration)
	assert.Equal(t, 1800.0, *ended.Duration)
	require.NotNil(t, ended.CompletionRate)
	assert.Equal(t, 50.0, *ended.CompletionRate)
}

func TestEndActivityAppendsNote(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Writing"})
	require.NoError(t, err)

	*clock = baseTime.Add(10 * time.Minute)
	ended, err := svc.EndActivity(ctx, userID, "wrapped up the draft")
	require.NoError(t, err)

	assert.Contains(t, ended.Content, "Writing")
	assert.Contains(t, ended.Content, "Duration: 10.0 minutes")
	assert.Contains(t, ended.Content, "Note: wrapped up the draft")
}

func TestEndActivityWithoutTargetHasNilRate(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Untargeted"})
	require.NoError(t, err)

	*clock = baseTime.Add(5 * time.Minute)
	ended, err := svc.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	require.NotNil(t, ended.Duration)
	assert.Nil(t, ended.CompletionRate)
}

func TestDailyTimelineScopedToDay(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	clock, now := fixedClock(baseTime.AddDate(0, 0, -1))
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Yesterday"})
	require.NoError(t, err)
	_, err = svc.EndActivity(ctx, userID, "")
	require.NoError(t, err)

	*clock = baseTime
	_, err = svc.StartActivity(ctx, userID, StartActivityParams{Content: "Today"})
	require.NoError(t, err)

	today, err := svc.GetDailyTimeline(ctx, userID, nil)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "Today", today[0].Content)

	yesterday := baseTime.AddDate(0, 0, -1)
	prior, err := svc.GetDailyTimeline(ctx, userID, &yesterday)
	require.NoError(t, err)
	require.Len(t, prior, 1)
	assert.Equal(t, "Yesterday", prior[0].Content)

	// Reads are idempotent: asking again yields the same result.
	again, err := svc.GetDailyTimeline(ctx, userID, nil)
	require.NoError(t, err)
	assert.Equal(t, today, again)
}

func TestCurrentActivitiesOrderedByPriority(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db)
	ctx := context.Background()

	_, now := fixedClock(baseTime)
	svc := NewTimelineService(db)
	svc.now = now

	_, err := svc.StartActivity(ctx, userID, StartActivityParams{Content: "Background", AllowParallel: true, Priority: 1})
	require.NoError(t, err)
	_, err = svc.StartActivity(ctx, userID, StartActivityParams{Content: "Urgent", AllowParallel: true, Priority: 5})
	require.NoError(t, err)

	current, err := svc.GetCurrentActivities(ctx, userID)
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.Equal(t, "Urgent", current[0].Content)
	assert.Equal(t, "Background", current[1].Content)
}

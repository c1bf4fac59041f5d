package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalFixture(t *testing.T) (*DreamService, *time.Time, uuid.UUID) {
	t.Helper()

	db := newTestDB(t)
	userID := newTestUser(t, db)

	clock, now := fixedClock(baseTime)
	svc := NewDreamService(db)
	svc.now = now
	return svc, clock, userID
}

func TestCreateLongTermGoal(t *testing.T) {
	svc, _, userID := newGoalFixture(t)
	ctx := context.Background()

	target := 12.0
	due := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	goal, err := svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{
		Content:      "Read twelve books",
		Description:  "one per month",
		TargetDate:   &due,
		TargetValue:  &target,
		ProgressType: "numeric",
		Tags:         []string{"reading"},
	})
	require.NoError(t, err)

	assert.True(t, goal.IsLongTerm)
	assert.Zero(t, goal.CurrentValue)
	require.NotNil(t, goal.FocusKind)
	assert.Contains(t, goal.Content, "Read twelve books")
	assert.Contains(t, goal.Content, "one per month")
}

func TestUpdateGoalProgress(t *testing.T) {
	svc, _, userID := newGoalFixture(t)
	ctx := context.Background()

	target := 10.0
	goal, err := svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{
		Content:     "Run 10 races",
		TargetValue: &target,
	})
	require.NoError(t, err)

	updated, rate, err := svc.UpdateGoalProgress(ctx, goal.ID, userID, 4, "two this month")
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.CurrentValue)
	require.NotNil(t, rate)
	assert.Equal(t, 40.0, *rate)

	// Last write wins: progress is an absolute value, not an increment.
	updated, rate, err = svc.UpdateGoalProgress(ctx, goal.ID, userID, 3, "")
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.CurrentValue)
	require.NotNil(t, rate)
	assert.Equal(t, 30.0, *rate)
}

func TestUpdateGoalProgressWithoutTarget(t *testing.T) {
	svc, _, userID := newGoalFixture(t)
	ctx := context.Background()

	goal, err := svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{Content: "Open-ended journey"})
	require.NoError(t, err)

	updated, rate, err := svc.UpdateGoalProgress(ctx, goal.ID, userID, 7, "")
	require.NoError(t, err)
	assert.Equal(t, 7.0, updated.CurrentValue)
	assert.Nil(t, rate)
}

func TestUpdateGoalProgressNotFound(t *testing.T) {
	svc, _, _ := newGoalFixture(t)

	_, _, err := svc.UpdateGoalProgress(context.Background(), uuid.New(), uuid.New(), 1, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompletedGoalExcludedFromList(t *testing.T) {
	svc, _, userID := newGoalFixture(t)
	ctx := context.Background()

	target := 5.0
	goal, err := svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{
		Content:     "Five talks",
		TargetValue: &target,
	})
	require.NoError(t, err)
	_, err = svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{Content: "No finish line"})
	require.NoError(t, err)

	_, rate, err := svc.UpdateGoalProgress(ctx, goal.ID, userID, 5, "last one done")
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 100.0, *rate)

	active, err := svc.GetLongTermGoals(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "No finish line", active[0].Content)

	all, err := svc.GetLongTermGoals(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGoalProgressHistory(t *testing.T) {
	svc, clock, userID := newGoalFixture(t)
	ctx := context.Background()

	target := 10.0
	goal, err := svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{
		Content:     "Ten chapters",
		TargetValue: &target,
		Tags:        []string{"book"},
	})
	require.NoError(t, err)

	_, _, err = svc.UpdateGoalProgress(ctx, goal.ID, userID, 2, "slow start")
	require.NoError(t, err)

	*clock = baseTime.Add(24 * time.Hour)
	_, _, err = svc.UpdateGoalProgress(ctx, goal.ID, userID, 5, "")
	require.NoError(t, err)

	history, err := svc.GetGoalProgressHistory(ctx, goal.ID, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first, as an immutable log of the updates.
	assert.Equal(t, "Progress update: 5", history[0].Content)
	assert.Equal(t, "Progress update: 2. slow start", history[1].Content)
	for _, entry := range history {
		require.NotNil(t, entry.ParentID)
		assert.Equal(t, goal.ID, *entry.ParentID)
		require.NotNil(t, entry.Duration)
		assert.Zero(t, *entry.Duration)
	}
}

func TestUpdateGoalProgressRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db)
	bob := newTestUser(t, db)
	ctx := context.Background()

	_, now := fixedClock(baseTime)
	svc := NewDreamService(db)
	svc.now = now

	target := 10.0
	goal, err := svc.CreateLongTermGoal(ctx, alice, CreateGoalParams{
		Content:     "Alice's goal",
		TargetValue: &target,
	})
	require.NoError(t, err)
	_, _, err = svc.UpdateGoalProgress(ctx, goal.ID, alice, 2, "")
	require.NoError(t, err)

	// Another user's goal looks exactly like a missing one, and the
	// attempt leaves no trace on it.
	_, _, err = svc.UpdateGoalProgress(ctx, goal.ID, bob, 9, "bob was here")
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded, err := svc.GetLongTermGoal(ctx, goal.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, 2.0, reloaded.CurrentValue)

	history, err := svc.GetGoalProgressHistory(ctx, goal.ID, alice)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestGoalHistoryRequiresOwnership(t *testing.T) {
	svc, _, userID := newGoalFixture(t)
	ctx := context.Background()

	goal, err := svc.CreateLongTermGoal(ctx, userID, CreateGoalParams{Content: "Private goal"})
	require.NoError(t, err)

	_, err = svc.GetGoalProgressHistory(ctx, goal.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/daybookhq/daybook/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewService(db)
}

func TestRegisterIssuesKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, key, err := svc.Register(ctx, "a@example.com", "supersecret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "dbk_"))
	assert.NotContains(t, user.PasswordHash, "supersecret")

	resolved, err := svc.Resolve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "a@example.com", "othersecret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRotatesKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, oldKey, err := svc.Register(ctx, "a@example.com", "supersecret")
	require.NoError(t, err)

	_, newKey, err := svc.Login(ctx, "a@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, oldKey, newKey)

	// The old key is dead after rotation.
	_, err = svc.Resolve(ctx, oldKey)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resolved, err := svc.Resolve(ctx, newKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveUnknownKey(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Resolve(context.Background(), "dbk_deadbeef")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

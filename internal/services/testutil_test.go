package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/daybookhq/daybook/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Memory{}))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "irrelevant",
		APIKeyDigest: uuid.NewString(),
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

// fixedClock returns a settable clock for deterministic lifecycle tests.
func fixedClock(at time.Time) (*time.Time, func() time.Time) {
	current := at
	return &current, func() time.Time { return current }
}

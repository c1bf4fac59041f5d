package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns memories. Authentication resolves a request to a User ID;
// the services only ever see the resolved ID.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex;type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"not null"`
	// APIKeyDigest is the SHA-256 hex digest of the issued API key,
	// indexed so the auth middleware can look callers up by key.
	APIKeyDigest string    `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

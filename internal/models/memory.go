package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MemoryType classifies the role of a record.
type MemoryType string

const (
	MemoryTypeTimeline   MemoryType = "TIMELINE"
	MemoryTypeCoreFocus  MemoryType = "CORE_FOCUS"
	MemoryTypeDreamTrack MemoryType = "DREAM_TRACK"
	MemoryTypeQuickNote  MemoryType = "QUICK_NOTE"
)

// FocusType qualifies CORE_FOCUS records.
type FocusType string

const (
	FocusTypeChange         FocusType = "CHANGE"
	FocusTypeExternalExpect FocusType = "EXTERNAL_EXPECT"
	FocusTypeSelfExpect     FocusType = "SELF_EXPECT"
	FocusTypeImportant      FocusType = "IMPORTANT"
	FocusTypeLongTerm       FocusType = "LONG_TERM"
)

// Memory is the single persisted entity behind timeline activities,
// important matters and long-term goals. Which fields are meaningful
// depends on Kind/FocusKind; durations are seconds, completion rates
// are percentages.
type Memory struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID  `json:"user_id" gorm:"not null;type:uuid;index:idx_memories_user_ongoing"`
	Kind      MemoryType `json:"kind" gorm:"not null;type:varchar(20);index"`
	FocusKind *FocusType `json:"focus_kind,omitempty" gorm:"type:varchar(20);index"`

	Content string                      `json:"content" gorm:"not null;type:text"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`

	StartTime *time.Time `json:"start_time,omitempty" gorm:"index"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	IsOngoing bool       `json:"is_ongoing" gorm:"not null;default:false;index:idx_memories_user_ongoing"`

	// Duration and CompletionRate are derived values. They are persisted
	// for querying but recomputed from StartTime/EndTime/TargetDuration
	// whenever the record transitions; never edit them directly.
	TargetDuration *float64 `json:"target_duration,omitempty"`
	Duration       *float64 `json:"duration,omitempty"`
	CompletionRate *float64 `json:"completion_rate,omitempty"`

	AllowParallel bool    `json:"allow_parallel" gorm:"not null;default:false"`
	ParallelGroup *string `json:"parallel_group,omitempty" gorm:"type:varchar(100)"`
	Priority      int     `json:"priority" gorm:"not null;default:1"`

	// Long-term goal fields, meaningful only when FocusKind is LONG_TERM.
	IsLongTerm      bool                         `json:"is_long_term" gorm:"not null;default:false"`
	TargetDate      *time.Time                   `json:"target_date,omitempty"`
	TargetValue     *float64                     `json:"target_value,omitempty"`
	CurrentValue    float64                      `json:"current_value" gorm:"not null;default:0"`
	MilestonePoints datatypes.JSONSlice[float64] `json:"milestone_points,omitempty"`
	ProgressType    string                       `json:"progress_type,omitempty" gorm:"type:varchar(50)"`

	// ParentID links goal progress-log entries to their goal. Matter and
	// activity correlation stays tag-overlap based and does not use it.
	ParentID *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM
func (Memory) TableName() string {
	return "memories"
}

func (m *Memory) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

// Screening is the state of one asynchronous submission. It never holds the
// résumé or the job description, only what the UI needs to render.
type Screening struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Status       ScreeningStatus `gorm:"not null;default:'queued';index" json:"status"`
	Result       *string         `gorm:"type:text" json:"result,omitempty"`
	ErrorKind    *string         `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index" json:"updated_at"`
}

func (Screening) TableName() string {
	return "screenings"
}

func (s ScreeningStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

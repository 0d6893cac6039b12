package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchJob struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	SubmitterName   string  `gorm:"size:255;not null"`
	SubmitterEmail  string  `gorm:"size:320;not null;uniqueIndex"`
	SubmitterPhone  string  `gorm:"size:32;not null"`
	FileData        *string `gorm:"type:text"`
	FileName        *string `gorm:"size:255"`
	FileType        *string `gorm:"size:255"`
	DefaultCredits  int     `gorm:"not null;default:0"`
	ProcessingState string  `gorm:"type:text;not null;default:'unprocessed';index"`
	LeaseExpiresAt  *time.Time
	ProcessedAt     *time.Time
	CreatedCount    int    `gorm:"not null;default:0"`
	Status          string `gorm:"type:text;not null;default:'pending';index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BatchJob) TableName() string {
	return "batch_jobs"
}

func (m *BatchJob) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

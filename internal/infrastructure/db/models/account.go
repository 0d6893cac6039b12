package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account rows reference their batch job without a foreign key, so removing a
// batch job never removes the accounts it created.
type Account struct {
	ID                 string  `gorm:"type:uuid;primaryKey"`
	Email              string  `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash       string  `gorm:"type:text;not null"`
	Name               string  `gorm:"size:255;not null"`
	Phone              string  `gorm:"size:32;not null;default:''"`
	Credits            int     `gorm:"not null;default:0"`
	BatchJobID         *string `gorm:"type:uuid;index"`
	RegistrationMethod string  `gorm:"size:32;not null"`
	Verified           bool    `gorm:"not null;default:false"`
	Status             string  `gorm:"size:32;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Account) TableName() string {
	return "accounts"
}

type Profile struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	AccountID string `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

func (m *Profile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

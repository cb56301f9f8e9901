package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Module struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	VideoURL    string         `gorm:"column:video_url" json:"video_url"`
	Difficulty  string         `gorm:"index;column:difficulty" json:"difficulty"`
	ClassLevel  string         `gorm:"index;column:class_level" json:"class_level"`
	Topic       string         `gorm:"index;column:topic" json:"topic"`
	MLFeatures  datatypes.JSON `gorm:"column:ml_features" json:"ml_features,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Module) TableName() string { return "modules" }

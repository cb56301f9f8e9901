package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"module_id"`
	Module        *Module        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Question      string         `gorm:"not null;column:question" json:"question"`
	Options       datatypes.JSON `gorm:"column:options" json:"options"`
	CorrectAnswer string         `gorm:"not null;column:correct_answer" json:"-"`
	XPReward      int            `gorm:"not null;default:0;column:xp_reward" json:"xp_reward"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }

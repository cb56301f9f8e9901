package domain

import (
	"time"

	"github.com/google/uuid"
)

type MissionType string

const (
	MissionTypeWatchVideo   MissionType = "watch_video"
	MissionTypeCompleteQuiz MissionType = "complete_quiz"
	MissionTypeDailyLogin   MissionType = "daily_login"
	MissionTypeOther        MissionType = "other"
)

// Mission is a task definition. It is read-only to the ledger; creation and
// editing happen through admin tooling outside this service.
type Mission struct {
	ID                      uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title                   string      `gorm:"not null;column:title" json:"title"`
	Description             string      `gorm:"column:description" json:"description"`
	XPReward                int         `gorm:"not null;default:0;column:xp_reward" json:"xp_reward"`
	BadgeReward             string      `gorm:"column:badge_reward" json:"badge_reward,omitempty"`
	Type                    MissionType `gorm:"not null;index;column:type" json:"type"`
	RequiredCompletionCount int         `gorm:"not null;default:1;column:required_completion_count" json:"required_completion_count"`
	ClassLevel              string      `gorm:"column:class_level" json:"class_level,omitempty"`
	CreatedAt               time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time   `gorm:"not null" json:"updated_at"`
}

func (Mission) TableName() string { return "missions" }

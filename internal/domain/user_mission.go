package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserMission tracks one-off progress for a (user, mission) scope.
// is_completed is a one-way transition; completed_at is set exactly once.
type UserMission struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_mission,unique" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	MissionID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_mission,unique" json:"mission_id"`
	Mission         *Mission   `gorm:"constraint:OnDelete:CASCADE;foreignKey:MissionID;references:ID" json:"mission,omitempty"`
	CurrentProgress int        `gorm:"not null;default:0;column:current_progress" json:"current_progress"`
	IsCompleted     bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserMission) TableName() string { return "user_missions" }

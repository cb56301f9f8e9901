package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyMission is a mission progress instance scoped to one calendar day.
// A row from a prior date is independent of today's row for the same mission.
type DailyMission struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_mission_day,unique" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	MissionID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_mission_day,unique" json:"mission_id"`
	Mission         *Mission   `gorm:"constraint:OnDelete:CASCADE;foreignKey:MissionID;references:ID" json:"mission,omitempty"`
	AssignedDate    string     `gorm:"type:date;not null;index:idx_user_mission_day,unique;column:assigned_date" json:"assigned_date"`
	CurrentProgress int        `gorm:"not null;default:0;column:current_progress" json:"current_progress"`
	IsCompleted     bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (DailyMission) TableName() string { return "daily_missions" }

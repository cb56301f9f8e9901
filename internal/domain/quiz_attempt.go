package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is append-only; rows are never mutated after insert.
type QuizAttempt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID    uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz      *Quiz     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	IsCorrect bool      `gorm:"not null;column:is_correct" json:"is_correct"`
	Score     int       `gorm:"not null;default:0;column:score" json:"score"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "user_quiz_attempts" }

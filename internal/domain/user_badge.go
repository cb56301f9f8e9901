package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserBadge is idempotent set membership: re-granting a held badge neither
// errors nor duplicates, and acquired_at keeps its first value.
type UserBadge struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BadgeName  string    `gorm:"not null;index:idx_user_badge,unique;column:badge_name" json:"badge_name"`
	AcquiredAt time.Time `gorm:"not null;column:acquired_at" json:"acquired_at"`
}

func (UserBadge) TableName() string { return "user_badges" }

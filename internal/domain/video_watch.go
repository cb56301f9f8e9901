package domain

import (
	"time"

	"github.com/google/uuid"
)

// VideoWatch is an append-only log of watch events.
type VideoWatch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	Module    *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (VideoWatch) TableName() string { return "video_watches" }

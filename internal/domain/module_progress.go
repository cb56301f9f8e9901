package domain

import (
	"time"

	"github.com/google/uuid"
)

type ModuleProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_module,unique" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ModuleID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_module,unique" json:"module_id"`
	Module      *Module    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (ModuleProgress) TableName() string { return "module_progress" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;not null;column:username" json:"username"`
	FullName       string     `gorm:"not null;column:full_name" json:"full_name"`
	Email          string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password       string     `gorm:"not null;column:password" json:"-"`
	DateOfBirth    *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	EducationLevel string     `gorm:"column:education_level" json:"education_level"`
	Gender         string     `gorm:"column:gender" json:"gender"`
	ClassLevel     string     `gorm:"column:class_level" json:"class_level"`
	XP             int        `gorm:"not null;default:0;column:xp" json:"xp"`
	Level          int        `gorm:"not null;default:1;column:level" json:"level"`
	XPThisMonth    int        `gorm:"not null;default:0;column:xp_this_month" json:"xp_this_month"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

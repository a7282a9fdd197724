package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a community member authenticated through Discord. The primary key
// is the Discord snowflake, so the row doubles as the identity record the
// quiz and moderation layers stamp onto submissions.
// swagger:model User
type User struct {
	ID        string         `gorm:"primaryKey;size:32" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username  string    `gorm:"size:100;not null" json:"username"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	IsAdmin   bool      `gorm:"default:false" json:"isAdmin"`
	RoleName  string    `gorm:"size:100" json:"roleName,omitempty"`
	RoleColor string    `gorm:"size:16" json:"roleColor,omitempty"`
	Language  string    `gorm:"size:10;default:'en'" json:"language"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

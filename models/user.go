package models

import (
	"time"
)

// User model definition
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Login         string    `gorm:"size:100;uniqueIndex;not null" json:"login"`
	Nickname      string    `gorm:"size:64" json:"nickname"`
	Password      string    `gorm:"size:100;not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	LastVisitedAt time.Time `json:"last_visited_at"`
}

func (User) TableName() string {
	return "users"
}

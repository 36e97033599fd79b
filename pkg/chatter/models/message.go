package models

import (
	"time"
)

// Message represents a message posted to a group. Messages are immutable:
// they are never updated or deleted individually, only removed when their
// group or author is deleted.
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`

	// Relationships
	Group  Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Author User  `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

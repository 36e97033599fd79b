package models

import (
	"time"
)

// Group represents a group of users exchanging messages.
// The creator is recorded as owner and holds elevated rights over the group.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`

	// Relationships
	Owner    User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []GroupMembership `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Messages []Message         `gorm:"foreignKey:GroupID" json:"messages,omitempty"`
}

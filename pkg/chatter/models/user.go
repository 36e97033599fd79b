package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`

	// Relationships
	OwnedGroups []Group           `gorm:"foreignKey:OwnerID" json:"owned_groups,omitempty"`
	Memberships []GroupMembership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Messages    []Message         `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}

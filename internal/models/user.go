package models

import (
	"time"

	"gorm.io/gorm"
)

// User kinds. Earlier revisions of the schema carried two parallel user
// shapes; they are folded into one entity with a capability tag.
const (
	UserKindGuest      = "guest"
	UserKindRegistered = "registered"
)

// User represents an account in the Helios application. Email is stored
// trimmed and lower-cased so uniqueness is case-insensitive.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	LastName     string         `gorm:"not null" json:"last_name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email_address"`
	Password     string         `gorm:"not null" json:"-"`
	JoinedDate   string         `json:"joined_date"`
	Username     string         `json:"username,omitempty"`
	ProfileImage string         `json:"profile_image,omitempty"`
	Kind         string         `gorm:"default:registered" json:"kind"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Investments  []Investment   `gorm:"foreignKey:UserID" json:"investments,omitempty"`
}

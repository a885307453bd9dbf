package models

import "time"

// Role is the seeded access role (administrator or user). Admin bypasses
// per-user row scoping on list endpoints.
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}

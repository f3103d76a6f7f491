package models

import "time"

// Record is the identity and timestamps shared by catalog entries and logged records.
type Record struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

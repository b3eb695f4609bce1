// Package models - event.go defines the Event model for upcoming church
// events and programs.
package models

import "time"

// Event is an upcoming or past church event.
type Event struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Category    string     `json:"category" db:"category"`
	Description string     `json:"description" db:"description"`
	Location    string     `json:"location" db:"location"`
	ImagePath   string     `json:"image_path" db:"image_path"`
	StartsAt    *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Package models - branch.go defines the Branch model for satellite church
// locations.
package models

import "time"

// Branch is a satellite church location.
type Branch struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	Phone      string    `json:"phone" db:"phone"`
	Email      string    `json:"email" db:"email"`
	PastorName string    `json:"pastor_name" db:"pastor_name"`
	ImagePath  string    `json:"image_path" db:"image_path"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Package models - banner.go defines the HomeBanner model for the homepage
// hero carousel.
package models

import "time"

// HomeBanner is one slide of the homepage carousel.
type HomeBanner struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	ImagePath string    `json:"image_path" db:"image_path"`
	LinkURL   string    `json:"link_url" db:"link_url"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Package models - leader.go defines the Leader model for church leadership
// profiles and PhotoGalleryItem for the gallery page.
package models

import "time"

// Leader is a leadership team profile.
type Leader struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Role       string    `json:"role" db:"role"`
	Bio        string    `json:"bio" db:"bio"`
	ImagePath  string    `json:"image_path" db:"image_path"`
	IsFeatured bool      `json:"is_featured" db:"is_featured"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PhotoGalleryItem is a single photo on the gallery page.
type PhotoGalleryItem struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Category  string     `json:"category" db:"category"`
	ImagePath string     `json:"image_path" db:"image_path"`
	TakenAt   *time.Time `json:"taken_at,omitempty" db:"taken_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

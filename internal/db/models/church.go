// Package models - church.go defines the ChurchInfo and HeadPastor singleton
// models plus ServiceTime entries for the weekly schedule.
package models

import "time"

// ChurchInfo holds site-wide church details. The table holds exactly one row;
// the repository rejects a second insert.
type ChurchInfo struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Mission      string    `json:"mission" db:"mission"`
	Vision       string    `json:"vision" db:"vision"`
	About        string    `json:"about" db:"about"`
	Address      string    `json:"address" db:"address"`
	Phone        string    `json:"phone" db:"phone"`
	Email        string    `json:"email" db:"email"`
	FacebookURL  string    `json:"facebook_url" db:"facebook_url"`
	YoutubeURL   string    `json:"youtube_url" db:"youtube_url"`
	InstagramURL string    `json:"instagram_url" db:"instagram_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HeadPastor is the senior pastor profile shown on the about page. Singleton,
// same rule as ChurchInfo.
type HeadPastor struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Title     string    `json:"title" db:"title"`
	Bio       string    `json:"bio" db:"bio"`
	ImagePath string    `json:"image_path" db:"image_path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ServiceTime is one entry of the weekly service schedule.
type ServiceTime struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	DayOfWeek string    `json:"day_of_week" db:"day_of_week"`
	StartTime string    `json:"start_time" db:"start_time"` // "09:00"
	EndTime   string    `json:"end_time" db:"end_time"`
	Location  string    `json:"location" db:"location"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

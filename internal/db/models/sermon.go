// Package models - sermon.go defines the Sermon model.
package models

import "time"

// Sermon is a preached message, optionally with video/audio links and a
// cover image.
type Sermon struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Speaker     string     `json:"speaker" db:"speaker"`
	Series      string     `json:"series" db:"series"`
	Description string     `json:"description" db:"description"`
	VideoURL    string     `json:"video_url" db:"video_url"`
	AudioURL    string     `json:"audio_url" db:"audio_url"`
	ImagePath   string     `json:"image_path" db:"image_path"`
	PreachedAt  *time.Time `json:"preached_at,omitempty" db:"preached_at"`
	IsPublished bool       `json:"is_published" db:"is_published"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

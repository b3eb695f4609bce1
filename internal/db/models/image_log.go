// Package models - image_log.go defines the ImageLog model: a provenance
// record for every uploaded image, keyed polymorphically to its owning entity.
package models

import "time"

// ImageLog records where an uploaded image came from. The owner reference is
// weak (no foreign key): owners may be deleted out-of-band, and the
// reconciliation sweep removes the orphaned rows afterwards.
type ImageLog struct {
	ID            string    `json:"id" db:"id"`
	ImagePath     string    `json:"image_path" db:"image_path"`
	OwnerType     string    `json:"owner_type" db:"owner_type"` // Entity kind, e.g. "Sermon"
	OwnerID       string    `json:"owner_id" db:"owner_id"`
	SectionLabel  string    `json:"section_label" db:"section_label"` // Site section, e.g. "Photo Gallery"
	FileSizeBytes *int64    `json:"file_size_bytes,omitempty" db:"file_size_bytes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

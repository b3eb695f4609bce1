// Package models - store.go defines the Book and Merchandise models for the
// church store. Prices are stored in USD and converted on read through the
// exchange-rate cache.
package models

import "time"

// Book is a title sold through the church store.
type Book struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Description string    `json:"description" db:"description"`
	PriceUSD    float64   `json:"price_usd" db:"price_usd"`
	ImagePath   string    `json:"image_path" db:"image_path"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Merchandise is a non-book store item.
type Merchandise struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	PriceUSD    float64   `json:"price_usd" db:"price_usd"`
	ImagePath   string    `json:"image_path" db:"image_path"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

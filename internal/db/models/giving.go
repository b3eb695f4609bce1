// Package models - giving.go defines the GivingInfo singleton and GivingImage
// models for the giving page.
package models

import "time"

// GivingInfo holds the giving page content and payment details. Singleton.
type GivingInfo struct {
	ID                string    `json:"id" db:"id"`
	Heading           string    `json:"heading" db:"heading"`
	Message           string    `json:"message" db:"message"`
	BankName          string    `json:"bank_name" db:"bank_name"`
	AccountName       string    `json:"account_name" db:"account_name"`
	AccountNumber     string    `json:"account_number" db:"account_number"`
	MobileMoneyName   string    `json:"mobile_money_name" db:"mobile_money_name"`
	MobileMoneyNumber string    `json:"mobile_money_number" db:"mobile_money_number"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// GivingImage is a decorative image on the giving page.
type GivingImage struct {
	ID        string    `json:"id" db:"id"`
	Caption   string    `json:"caption" db:"caption"`
	ImagePath string    `json:"image_path" db:"image_path"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

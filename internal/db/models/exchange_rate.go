// Package models - exchange_rate.go defines the ExchangeRate model: a cached
// USD-base conversion rate refreshed daily from the upstream rate API.
package models

import "time"

// ExchangeRate is one row of the rate cache, keyed by ISO 4217 currency code.
// Rows are upserted per refresh; codes the upstream stops publishing keep
// their last value.
type ExchangeRate struct {
	ID           string    `json:"id" db:"id"`
	CurrencyCode string    `json:"currency_code" db:"currency_code"`
	CurrencyName string    `json:"currency_name" db:"currency_name"`
	Rate         float64   `json:"rate" db:"rate"` // Units of currency per 1 USD
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

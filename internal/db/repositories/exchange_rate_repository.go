// exchange_rate_repository.go implements ExchangeRateRepository, providing database
// queries for the cached currency conversion table.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// ExchangeRateRepository handles exchange rate database operations
type ExchangeRateRepository struct {
	db *sqlx.DB
}

// NewExchangeRateRepository creates a new exchange rate repository
func NewExchangeRateRepository(db *sqlx.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// UpsertRate inserts or updates the rate row for one currency code. The write
// is a single statement, so concurrent refreshes resolve per row with the
// last writer winning.
func (r *ExchangeRateRepository) UpsertRate(ctx context.Context, code, name string, rate float64) error {
	query := `
		INSERT INTO exchange_rates (id, currency_code, currency_name, rate, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (currency_code) DO UPDATE SET
			currency_name = EXCLUDED.currency_name,
			rate = EXCLUDED.rate,
			last_updated = EXCLUDED.last_updated`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), code, name, rate, time.Now())
	return err
}

// GetRateByCode retrieves a single rate row, or nil if the code is not cached
func (r *ExchangeRateRepository) GetRateByCode(ctx context.Context, code string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	query := `SELECT * FROM exchange_rates WHERE currency_code = $1`
	err := r.db.GetContext(ctx, &rate, query, code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListRates returns all cached rates ordered by currency code
func (r *ExchangeRateRepository) ListRates(ctx context.Context) ([]*models.ExchangeRate, error) {
	var rates []*models.ExchangeRate
	query := `SELECT * FROM exchange_rates ORDER BY currency_code ASC`
	err := r.db.SelectContext(ctx, &rates, query)
	return rates, err
}

// ListCurrencyCodes returns the cached currency codes ordered alphabetically
func (r *ExchangeRateRepository) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	var codes []string
	query := `SELECT currency_code FROM exchange_rates ORDER BY currency_code ASC`
	err := r.db.SelectContext(ctx, &codes, query)
	return codes, err
}

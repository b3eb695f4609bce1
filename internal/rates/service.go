// Package rates maintains the cached currency conversion table and converts
// USD store prices for display. The cache is refreshed from the upstream
// rate API (USD base) by a daily background job or the update-rates
// subcommand; conversion itself never calls out — it reads the cache only.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/telemetry"
)

// currencyNames maps common ISO 4217 codes to display names. Codes the
// upstream publishes that are not listed here get the "<code> Currency"
// fallback rather than being dropped.
var currencyNames = map[string]string{
	"USD": "US Dollar",
	"GHS": "Ghanaian Cedi",
	"CUP": "Cuban Peso",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"INR": "Indian Rupee",
	"AUD": "Australian Dollar",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"SEK": "Swedish Krona",
	"NZD": "New Zealand Dollar",
	"ZAR": "South African Rand",
	"BRL": "Brazilian Real",
	"MXN": "Mexican Peso",
	"SGD": "Singapore Dollar",
	"HKD": "Hong Kong Dollar",
	"NOK": "Norwegian Krone",
	"KRW": "South Korean Won",
	"TRY": "Turkish Lira",
	"RUB": "Russian Ruble",
	"AED": "UAE Dirham",
	"KES": "Kenyan Shilling",
	"NGN": "Nigerian Naira",
}

// CurrencyName returns the display name for a code, falling back to
// "<code> Currency" for codes without a known name.
func CurrencyName(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code + " Currency"
}

// Store is the persistence surface the Service needs.
type Store interface {
	UpsertRate(ctx context.Context, code, name string, rate float64) error
	GetRateByCode(ctx context.Context, code string) (*models.ExchangeRate, error)
	ListRates(ctx context.Context) ([]*models.ExchangeRate, error)
	ListCurrencyCodes(ctx context.Context) ([]string, error)
}

// UnknownCurrencyError is returned by Convert for codes not present in the
// cache. It carries the known codes so the handler can return a helpful 404
// body instead of a bare error.
type UnknownCurrencyError struct {
	Code  string
	Known []string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency code %q", e.Code)
}

// Service refreshes and reads the conversion cache.
type Service struct {
	store   Store
	apiURL  string
	timeout time.Duration
	client  *http.Client
}

// NewService creates a rate service. timeout bounds a single upstream fetch.
func NewService(store Store, apiURL string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		store:   store,
		apiURL:  apiURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// rateTable is the upstream response shape (v4 "latest" endpoint, USD base).
type rateTable struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Refresh fetches the current USD rate table and upserts each code into the
// cache. Each row is written independently: a malformed or non-positive rate
// is skipped without aborting the batch, and rows the upstream no longer
// publishes keep their previous value. Returns how many rows were written.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	start := time.Now()
	written, err := s.refresh(ctx)
	telemetry.RateRefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.RateRefreshErrorsTotal.Inc()
		return written, err
	}
	telemetry.RatesUpdatedTotal.Add(float64(written))
	return written, nil
}

func (s *Service) refresh(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("building rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching rate table: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var table rateTable
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return 0, fmt.Errorf("decoding rate table: %w", err)
	}
	if len(table.Rates) == 0 {
		return 0, fmt.Errorf("rate table contained no rates")
	}

	written := 0
	var lastErr error
	for code, rate := range table.Rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 3 || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			continue
		}
		if err := s.store.UpsertRate(ctx, code, CurrencyName(code), rate); err != nil {
			lastErr = err
			continue
		}
		written++
	}

	if written == 0 && lastErr != nil {
		return 0, fmt.Errorf("persisting rates: %w", lastErr)
	}
	return written, nil
}

// Convert converts a USD amount into the given currency, rounding to two
// decimal places. USD is the identity conversion and never touches the
// cache. Unknown codes return *UnknownCurrencyError carrying the cached
// codes list.
func (s *Service) Convert(ctx context.Context, amountUSD float64, code string) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "USD" {
		return amountUSD, nil
	}

	rate, err := s.store.GetRateByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("reading rate for %s: %w", code, err)
	}
	if rate == nil {
		known, err := s.store.ListCurrencyCodes(ctx)
		if err != nil {
			return 0, fmt.Errorf("listing known currencies: %w", err)
		}
		return 0, &UnknownCurrencyError{Code: code, Known: known}
	}

	return math.Round(amountUSD*rate.Rate*100) / 100, nil
}

// KnownCurrencies returns all cached rates, ordered by code.
func (s *Service) KnownCurrencies(ctx context.Context) ([]*models.ExchangeRate, error) {
	return s.store.ListRates(ctx)
}

package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/churchsite/church-backend/internal/db/models"
)

// fakeRateStore is an in-memory Store.
type fakeRateStore struct {
	rates     map[string]*models.ExchangeRate
	upsertErr error
	getErr    error
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{rates: make(map[string]*models.ExchangeRate)}
}

func (f *fakeRateStore) UpsertRate(_ context.Context, code, name string, rate float64) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rates[code] = &models.ExchangeRate{CurrencyCode: code, CurrencyName: name, Rate: rate}
	return nil
}

func (f *fakeRateStore) GetRateByCode(_ context.Context, code string) (*models.ExchangeRate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rates[code], nil
}

func (f *fakeRateStore) ListRates(_ context.Context) ([]*models.ExchangeRate, error) {
	out := make([]*models.ExchangeRate, 0, len(f.rates))
	for _, r := range f.rates {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRateStore) ListCurrencyCodes(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(f.rates))
	for code := range f.rates {
		out = append(out, code)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	store := newFakeRateStore()
	store.rates["GHS"] = &models.ExchangeRate{CurrencyCode: "GHS", CurrencyName: "Ghanaian Cedi", Rate: 15.5}
	svc := NewService(store, "http://unused", time.Second)
	ctx := context.Background()

	t.Run("USD is the identity conversion", func(t *testing.T) {
		got, err := svc.Convert(ctx, 19.99, "USD")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if got != 19.99 {
			t.Errorf("Convert(USD) = %v, want 19.99", got)
		}
	})

	t.Run("empty code behaves like USD", func(t *testing.T) {
		got, err := svc.Convert(ctx, 10, "")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if got != 10 {
			t.Errorf("Convert(\"\") = %v, want 10", got)
		}
	})

	t.Run("known rate rounds to two decimals", func(t *testing.T) {
		got, err := svc.Convert(ctx, 19.99, "GHS")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		// 19.99 * 15.5 = 309.845 → 309.85 after rounding
		if got != 309.85 {
			t.Errorf("Convert(GHS) = %v, want 309.85", got)
		}
	})

	t.Run("code is case and whitespace insensitive", func(t *testing.T) {
		got, err := svc.Convert(ctx, 1, " ghs ")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if got != 15.5 {
			t.Errorf("Convert(\" ghs \") = %v, want 15.5", got)
		}
	})

	t.Run("unknown code returns UnknownCurrencyError with known codes", func(t *testing.T) {
		_, err := svc.Convert(ctx, 5, "XXX")
		var unknownErr *UnknownCurrencyError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("Convert() error = %v, want *UnknownCurrencyError", err)
		}
		if unknownErr.Code != "XXX" {
			t.Errorf("UnknownCurrencyError.Code = %q, want XXX", unknownErr.Code)
		}
		if len(unknownErr.Known) != 1 || unknownErr.Known[0] != "GHS" {
			t.Errorf("UnknownCurrencyError.Known = %v, want [GHS]", unknownErr.Known)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		broken := newFakeRateStore()
		broken.getErr = errors.New("db down")
		brokenSvc := NewService(broken, "http://unused", time.Second)
		if _, err := brokenSvc.Convert(ctx, 5, "EUR"); err == nil {
			t.Error("Convert() expected error when store fails, got nil")
		}
	})
}

// ---------------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------------

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts valid rates and skips junk", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"base": "USD",
				"rates": {
					"GHS": 15.5,
					"EUR": 0.92,
					"bad": 1.0,
					"NEG": -3,
					"ZER": 0
				}
			}`))
		}))
		defer srv.Close()

		store := newFakeRateStore()
		svc := NewService(store, srv.URL, time.Second)

		written, err := svc.Refresh(ctx)
		if err != nil {
			t.Fatalf("Refresh() error: %v", err)
		}
		if written != 2 {
			t.Errorf("written = %d, want 2 (GHS + EUR only)", written)
		}
		if store.rates["GHS"] == nil || store.rates["GHS"].Rate != 15.5 {
			t.Errorf("GHS rate not stored: %+v", store.rates["GHS"])
		}
		if store.rates["GHS"].CurrencyName != "Ghanaian Cedi" {
			t.Errorf("GHS name = %q, want Ghanaian Cedi", store.rates["GHS"].CurrencyName)
		}
		if _, ok := store.rates["NEG"]; ok {
			t.Error("negative rate was stored")
		}
	})

	t.Run("upstream error status fails the refresh", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
		defer srv.Close()

		svc := NewService(newFakeRateStore(), srv.URL, time.Second)
		if _, err := svc.Refresh(ctx); err == nil {
			t.Error("Refresh() expected error for 502 response, got nil")
		}
	})

	t.Run("empty rate table fails the refresh", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"base": "USD", "rates": {}}`))
		}))
		defer srv.Close()

		svc := NewService(newFakeRateStore(), srv.URL, time.Second)
		if _, err := svc.Refresh(ctx); err == nil {
			t.Error("Refresh() expected error for empty rate table, got nil")
		}
	})

	t.Run("unreachable upstream fails the refresh", func(t *testing.T) {
		svc := NewService(newFakeRateStore(), "http://127.0.0.1:1", 200*time.Millisecond)
		if _, err := svc.Refresh(ctx); err == nil {
			t.Error("Refresh() expected error for unreachable upstream, got nil")
		}
	})

	t.Run("all upserts failing surfaces the error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"base": "USD", "rates": {"EUR": 0.92}}`))
		}))
		defer srv.Close()

		store := newFakeRateStore()
		store.upsertErr = errors.New("db down")
		svc := NewService(store, srv.URL, time.Second)
		if _, err := svc.Refresh(ctx); err == nil {
			t.Error("Refresh() expected error when every upsert fails, got nil")
		}
	})
}

// ---------------------------------------------------------------------------
// CurrencyName
// ---------------------------------------------------------------------------

func TestCurrencyName(t *testing.T) {
	if got := CurrencyName("GHS"); got != "Ghanaian Cedi" {
		t.Errorf("CurrencyName(GHS) = %q", got)
	}
	if got := CurrencyName("XQZ"); got != "XQZ Currency" {
		t.Errorf("CurrencyName fallback = %q, want XQZ Currency", got)
	}
}

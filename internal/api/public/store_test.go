package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/rates"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var bookCols = []string{
	"id", "title", "author", "description", "price_usd", "image_path",
	"is_available", "created_at", "updated_at",
}

// fakeRateStore backs the rates service without a database.
type fakeRateStore struct {
	rates map[string]*models.ExchangeRate
}

func (f *fakeRateStore) UpsertRate(_ context.Context, code, name string, rate float64) error {
	f.rates[code] = &models.ExchangeRate{CurrencyCode: code, CurrencyName: name, Rate: rate}
	return nil
}

func (f *fakeRateStore) GetRateByCode(_ context.Context, code string) (*models.ExchangeRate, error) {
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

// newStoreTestRouter wires StoreHandlers over a sqlmock DB and an in-memory
// rate cache seeded with GHS.
func newStoreTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rateStore := &fakeRateStore{rates: map[string]*models.ExchangeRate{
		"GHS": {CurrencyCode: "GHS", CurrencyName: "Ghanaian Cedi", Rate: 15.5},
	}}
	rateService := rates.NewService(rateStore, "http://unused", time.Second)

	h := NewStoreHandlers(sqlx.NewDb(db, "postgres"), rateService)

	router := gin.New()
	router.GET("/api/v1/store/books/:id", h.GetBook)
	router.GET("/api/v1/store/books/:id/price", h.GetBookPrice)
	router.GET("/api/v1/currencies", h.ListCurrencies)
	return router, mock
}

func sampleBookRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookCols).
		AddRow("book-1", "Streams of Living Water", "R. Foster", "Spiritual classics survey",
			19.99, "store/books/streams.jpg", true, now, now)
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetBook(t *testing.T) {
	router, mock := newStoreTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM books WHERE id`).
		WithArgs("book-1").
		WillReturnRows(sampleBookRow())

	w := doRequest(router, http.MethodGet, "/api/v1/store/books/book-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var body struct {
		Book models.Book `json:"book"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Book.Title != "Streams of Living Water" || body.Book.PriceUSD != 19.99 {
		t.Errorf("book = %+v", body.Book)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	router, mock := newStoreTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM books WHERE id`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(bookCols))

	w := doRequest(router, http.MethodGet, "/api/v1/store/books/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetBookPrice(t *testing.T) {
	t.Run("default currency is USD", func(t *testing.T) {
		router, mock := newStoreTestRouter(t)
		mock.ExpectQuery(`SELECT \* FROM books WHERE id`).
			WillReturnRows(sampleBookRow())

		w := doRequest(router, http.MethodGet, "/api/v1/store/books/book-1/price")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
		}

		var body map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["currency"] != "USD" {
			t.Errorf("currency = %v, want USD", body["currency"])
		}
		if body["price"] != 19.99 || body["base_price_usd"] != 19.99 {
			t.Errorf("price = %v base = %v, want 19.99/19.99", body["price"], body["base_price_usd"])
		}
	})

	t.Run("converted currency", func(t *testing.T) {
		router, mock := newStoreTestRouter(t)
		mock.ExpectQuery(`SELECT \* FROM books WHERE id`).
			WillReturnRows(sampleBookRow())

		w := doRequest(router, http.MethodGet, "/api/v1/store/books/book-1/price?currency=ghs")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
		}

		var body map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["currency"] != "GHS" {
			t.Errorf("currency = %v, want GHS", body["currency"])
		}
		// 19.99 * 15.5 rounded to two decimals
		if body["price"] != 309.85 {
			t.Errorf("price = %v, want 309.85", body["price"])
		}
		if body["currency_name"] != "Ghanaian Cedi" {
			t.Errorf("currency_name = %v", body["currency_name"])
		}
	})

	t.Run("unknown currency returns 404 with available codes", func(t *testing.T) {
		router, mock := newStoreTestRouter(t)
		mock.ExpectQuery(`SELECT \* FROM books WHERE id`).
			WillReturnRows(sampleBookRow())

		w := doRequest(router, http.MethodGet, "/api/v1/store/books/book-1/price?currency=XXX")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404; body: %s", w.Code, w.Body.String())
		}

		var body map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["currency"] != "XXX" {
			t.Errorf("currency = %v, want XXX", body["currency"])
		}
		avail, ok := body["available_currencies"].([]interface{})
		if !ok || len(avail) != 1 || avail[0] != "GHS" {
			t.Errorf("available_currencies = %v, want [GHS]", body["available_currencies"])
		}
	})

	t.Run("missing book returns 404 before conversion", func(t *testing.T) {
		router, mock := newStoreTestRouter(t)
		mock.ExpectQuery(`SELECT \* FROM books WHERE id`).
			WillReturnRows(sqlmock.NewRows(bookCols))

		w := doRequest(router, http.MethodGet, "/api/v1/store/books/nope/price?currency=GHS")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestListCurrencies(t *testing.T) {
	router, _ := newStoreTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/currencies")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Currencies []*models.ExchangeRate `json:"currencies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Currencies) != 1 || body.Currencies[0].CurrencyCode != "GHS" {
		t.Errorf("currencies = %+v, want the seeded GHS row", body.Currencies)
	}
}

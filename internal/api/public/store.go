// store.go implements the public church store endpoints. Prices are stored in
// USD; the ?currency= parameter converts through the cached exchange rates.
package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/rates"
)

// StoreHandlers serves books, merchandise, and price conversion.
type StoreHandlers struct {
	books *repositories.BookRepository
	merch *repositories.MerchandiseRepository
	rates *rates.Service
}

// NewStoreHandlers creates a new StoreHandlers instance
func NewStoreHandlers(db *sqlx.DB, rateService *rates.Service) *StoreHandlers {
	return &StoreHandlers{
		books: repositories.NewBookRepository(db),
		merch: repositories.NewMerchandiseRepository(db),
		rates: rateService,
	}
}

// ListBooks lists available books
// GET /api/v1/store/books
func (h *StoreHandlers) ListBooks(c *gin.Context) {
	books, err := h.books.ListBooks(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list books",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}

// GetBook retrieves a single book
// GET /api/v1/store/books/:id
func (h *StoreHandlers) GetBook(c *gin.Context) {
	book, err := h.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve book",
		})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// @Summary      Get book price
// @Description  Get a book's price converted to the requested currency. Omitting currency (or passing USD) returns the stored USD price.
// @Tags         Store
// @Produce      json
// @Param        id        path   string  true   "Book ID"
// @Param        currency  query  string  false  "ISO 4217 currency code (default USD)"
// @Success      200  {object}  map[string]interface{}  "price, currency, currency_name, base_price_usd"
// @Failure      404  {object}  map[string]interface{}  "Book not found, or currency not in the cache (includes available_currencies)"
// @Router       /api/v1/store/books/{id}/price [get]
// GetBookPrice converts a book's USD price to the requested currency
// GET /api/v1/store/books/:id/price?currency=GHS
func (h *StoreHandlers) GetBookPrice(c *gin.Context) {
	book, err := h.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve book",
		})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
		return
	}

	h.respondWithPrice(c, book.PriceUSD)
}

// ListMerchandise lists available merchandise
// GET /api/v1/store/merchandise
func (h *StoreHandlers) ListMerchandise(c *gin.Context) {
	items, err := h.merch.ListMerchandise(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list merchandise",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchandise": items})
}

// GetMerchandiseItem retrieves a single merchandise item
// GET /api/v1/store/merchandise/:id
func (h *StoreHandlers) GetMerchandiseItem(c *gin.Context) {
	item, err := h.merch.GetMerchandise(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve merchandise",
		})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Merchandise not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchandise": item})
}

// GetMerchandisePrice converts a merchandise item's USD price
// GET /api/v1/store/merchandise/:id/price?currency=GHS
func (h *StoreHandlers) GetMerchandisePrice(c *gin.Context) {
	item, err := h.merch.GetMerchandise(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve merchandise",
		})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Merchandise not found",
		})
		return
	}

	h.respondWithPrice(c, item.PriceUSD)
}

// ListCurrencies returns the cached currency table
// GET /api/v1/currencies
func (h *StoreHandlers) ListCurrencies(c *gin.Context) {
	currencies, err := h.rates.KnownCurrencies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list currencies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

// respondWithPrice converts amountUSD to the ?currency= query parameter and
// writes the price response. An unknown currency yields 404 with the list of
// currencies the cache does know, so callers can self-correct.
func (h *StoreHandlers) respondWithPrice(c *gin.Context, amountUSD float64) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("currency")))

	price, err := h.rates.Convert(c.Request.Context(), amountUSD, code)
	if err != nil {
		var unknown *rates.UnknownCurrencyError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":                "Currency not supported",
				"currency":             unknown.Code,
				"available_currencies": unknown.Known,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to convert price",
		})
		return
	}

	if code == "" {
		code = "USD"
	}

	c.JSON(http.StatusOK, gin.H{
		"price":          price,
		"currency":       code,
		"currency_name":  rates.CurrencyName(code),
		"base_price_usd": amountUSD,
	})
}

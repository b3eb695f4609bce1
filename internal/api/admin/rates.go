// rates.go exposes the exchange-rate cache to administrators: inspection and
// a manual refresh trigger, independent of the daily schedule.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/churchsite/church-backend/internal/rates"
)

// RateHandlers serves exchange-rate administration
type RateHandlers struct {
	rates *rates.Service
}

// NewRateHandlers creates a new RateHandlers instance
func NewRateHandlers(rateService *rates.Service) *RateHandlers {
	return &RateHandlers{rates: rateService}
}

// ListRates returns the cached rate table
// GET /api/v1/admin/rates
func (h *RateHandlers) ListRates(c *gin.Context) {
	cached, err := h.rates.KnownCurrencies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list rates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": cached})
}

// RefreshRates fetches the upstream rate table immediately
// POST /api/v1/admin/rates/refresh
func (h *RateHandlers) RefreshRates(c *gin.Context) {
	updated, err := h.rates.Refresh(c.Request.Context())
	if err != nil {
		// Upstream trouble, not a client error.
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Rate refresh failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rates refreshed",
		"updated": updated,
	})
}

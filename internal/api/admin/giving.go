// giving.go implements admin management of the giving page singleton and its
// decorative images.
package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
)

// GivingHandlers manages the giving page
type GivingHandlers struct {
	giving *repositories.GivingInfoRepository
	images *repositories.GivingImageRepository
	bus    *events.Bus
}

// NewGivingHandlers creates a new GivingHandlers instance
func NewGivingHandlers(db *sqlx.DB, bus *events.Bus) *GivingHandlers {
	return &GivingHandlers{
		giving: repositories.NewGivingInfoRepository(db),
		images: repositories.NewGivingImageRepository(db),
		bus:    bus,
	}
}

// GivingInfoRequest is the create/update payload for the giving page content
type GivingInfoRequest struct {
	Heading           string `json:"heading" binding:"required"`
	Message           string `json:"message"`
	BankName          string `json:"bank_name"`
	AccountName       string `json:"account_name"`
	AccountNumber     string `json:"account_number"`
	MobileMoneyName   string `json:"mobile_money_name"`
	MobileMoneyNumber string `json:"mobile_money_number"`
}

// GetGivingInfo returns the giving page singleton
// GET /api/v1/admin/giving
func (h *GivingHandlers) GetGivingInfo(c *gin.Context) {
	info, err := h.giving.GetGivingInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve giving info",
		})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Giving info not configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"giving": info})
}

// CreateGivingInfo creates the giving page content (singleton)
// POST /api/v1/admin/giving
func (h *GivingHandlers) CreateGivingInfo(c *gin.Context) {
	var req GivingInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	info := &models.GivingInfo{
		Heading:           req.Heading,
		Message:           req.Message,
		BankName:          req.BankName,
		AccountName:       req.AccountName,
		AccountNumber:     req.AccountNumber,
		MobileMoneyName:   req.MobileMoneyName,
		MobileMoneyNumber: req.MobileMoneyNumber,
	}

	if err := h.giving.CreateGivingInfo(c.Request.Context(), info); err != nil {
		if errors.Is(err, repositories.ErrSingletonExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Giving info already exists; update it instead",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create giving info",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpCreate,
		EntityType:  events.KindGivingInfo,
		EntityID:    info.ID,
		EntityLabel: info.Heading,
	})

	c.JSON(http.StatusCreated, gin.H{"giving": info})
}

// UpdateGivingInfo updates the giving page content
// PUT /api/v1/admin/giving
func (h *GivingHandlers) UpdateGivingInfo(c *gin.Context) {
	var req GivingInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	info, err := h.giving.GetGivingInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve giving info",
		})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Giving info not configured",
		})
		return
	}

	info.Heading = req.Heading
	info.Message = req.Message
	info.BankName = req.BankName
	info.AccountName = req.AccountName
	info.AccountNumber = req.AccountNumber
	info.MobileMoneyName = req.MobileMoneyName
	info.MobileMoneyNumber = req.MobileMoneyNumber

	if err := h.giving.UpdateGivingInfo(c.Request.Context(), info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update giving info",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindGivingInfo,
		EntityID:    info.ID,
		EntityLabel: info.Heading,
	})

	c.JSON(http.StatusOK, gin.H{"giving": info})
}

// GivingImageRequest is the create/update payload for a giving page image
type GivingImageRequest struct {
	Caption        string `json:"caption"`
	ImagePath      string `json:"image_path" binding:"required"`
	ImageSizeBytes *int64 `json:"image_size_bytes"`
	SortOrder      int    `json:"sort_order"`
}

// ListGivingImages lists the giving page images
// GET /api/v1/admin/giving/images
func (h *GivingHandlers) ListGivingImages(c *gin.Context) {
	images, err := h.images.ListGivingImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list giving images",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

// CreateGivingImage adds a giving page image
// POST /api/v1/admin/giving/images
func (h *GivingHandlers) CreateGivingImage(c *gin.Context) {
	var req GivingImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	img := &models.GivingImage{
		Caption:   req.Caption,
		ImagePath: req.ImagePath,
		SortOrder: req.SortOrder,
	}

	if err := h.images.CreateGivingImage(c.Request.Context(), img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create giving image",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindGivingImage,
		EntityID:       img.ID,
		EntityLabel:    img.Caption,
		ImagePath:      img.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"image": img})
}

// DeleteGivingImage removes a giving page image
// DELETE /api/v1/admin/giving/images/:id
func (h *GivingHandlers) DeleteGivingImage(c *gin.Context) {
	img, err := h.images.GetGivingImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve giving image",
		})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Giving image not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindGivingImage,
		EntityID:    img.ID,
		EntityLabel: img.Caption,
		ImagePath:   img.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.images.DeleteGivingImage(c.Request.Context(), img.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete giving image",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Giving image deleted"})
}

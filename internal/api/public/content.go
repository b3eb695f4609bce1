// Package public implements the unauthenticated read endpoints that the
// church website frontend renders from: homepage banners, church info, the
// weekly service schedule, leadership profiles, the photo gallery, and the
// giving page.
package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/repositories"
)

// ContentHandlers serves the static-content sections of the site.
type ContentHandlers struct {
	banners      *repositories.HomeBannerRepository
	church       *repositories.ChurchInfoRepository
	pastor       *repositories.HeadPastorRepository
	services     *repositories.ServiceTimeRepository
	leaders      *repositories.LeaderRepository
	gallery      *repositories.PhotoGalleryRepository
	giving       *repositories.GivingInfoRepository
	givingImages *repositories.GivingImageRepository
}

// NewContentHandlers creates a new ContentHandlers instance
func NewContentHandlers(db *sqlx.DB) *ContentHandlers {
	return &ContentHandlers{
		banners:      repositories.NewHomeBannerRepository(db),
		church:       repositories.NewChurchInfoRepository(db),
		pastor:       repositories.NewHeadPastorRepository(db),
		services:     repositories.NewServiceTimeRepository(db),
		leaders:      repositories.NewLeaderRepository(db),
		gallery:      repositories.NewPhotoGalleryRepository(db),
		giving:       repositories.NewGivingInfoRepository(db),
		givingImages: repositories.NewGivingImageRepository(db),
	}
}

// @Summary      List homepage banners
// @Description  Get the active homepage carousel banners in display order.
// @Tags         Content
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "banners: []models.HomeBanner"
// @Router       /api/v1/banners [get]
// ListBanners returns the active homepage banners
// GET /api/v1/banners
func (h *ContentHandlers) ListBanners(c *gin.Context) {
	banners, err := h.banners.ListBanners(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list banners",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// @Summary      Get church info
// @Description  Get the site-wide church details (name, mission, contact, socials).
// @Tags         Content
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "church: models.ChurchInfo"
// @Failure      404  {object}  map[string]interface{}  "Church info not configured"
// @Router       /api/v1/church [get]
// GetChurchInfo returns the church profile singleton
// GET /api/v1/church
func (h *ContentHandlers) GetChurchInfo(c *gin.Context) {
	info, err := h.church.GetChurchInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve church info",
		})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Church info not configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"church": info})
}

// GetHeadPastor returns the senior pastor profile
// GET /api/v1/head-pastor
func (h *ContentHandlers) GetHeadPastor(c *gin.Context) {
	pastor, err := h.pastor.GetHeadPastor(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve head pastor",
		})
		return
	}
	if pastor == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Head pastor not configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"head_pastor": pastor})
}

// ListServiceTimes returns the active weekly service schedule, optionally
// filtered to one day
// GET /api/v1/service-times?day=Sunday
func (h *ContentHandlers) ListServiceTimes(c *gin.Context) {
	day := c.Query("day")

	times, err := h.services.ListServiceTimes(c.Request.Context(), day, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list service times",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_times": times})
}

// ListLeaders returns leadership profiles
// GET /api/v1/leaders?featured=true
func (h *ContentHandlers) ListLeaders(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"

	leaders, err := h.leaders.ListLeaders(c.Request.Context(), featuredOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list leaders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaders": leaders})
}

// GetLeader returns a single leadership profile
// GET /api/v1/leaders/:id
func (h *ContentHandlers) GetLeader(c *gin.Context) {
	leader, err := h.leaders.GetLeader(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve leader",
		})
		return
	}
	if leader == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Leader not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leader": leader})
}

// ListGalleryPhotos returns gallery photos, optionally by category
// GET /api/v1/gallery?category=Easter
func (h *ContentHandlers) ListGalleryPhotos(c *gin.Context) {
	photos, err := h.gallery.ListPhotos(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list gallery photos",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// @Summary      Get giving page
// @Description  Get the giving page content, payment details, and decorative images.
// @Tags         Content
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "giving: models.GivingInfo, images: []models.GivingImage"
// @Router       /api/v1/giving [get]
// GetGivingPage returns the giving page content with its images
// GET /api/v1/giving
func (h *ContentHandlers) GetGivingPage(c *gin.Context) {
	info, err := h.giving.GetGivingInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve giving info",
		})
		return
	}

	images, err := h.givingImages.ListGivingImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list giving images",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"giving": info,
		"images": images,
	})
}

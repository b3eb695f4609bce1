// content.go implements admin CRUD for homepage banners, the church info and
// head pastor singletons, and the weekly service schedule.
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

// ContentHandlers manages banners, church info, head pastor, and service times
type ContentHandlers struct {
	banners  *repositories.HomeBannerRepository
	church   *repositories.ChurchInfoRepository
	pastor   *repositories.HeadPastorRepository
	services *repositories.ServiceTimeRepository
	bus      *events.Bus
}

// NewContentHandlers creates a new ContentHandlers instance
func NewContentHandlers(db *sqlx.DB, bus *events.Bus) *ContentHandlers {
	return &ContentHandlers{
		banners:  repositories.NewHomeBannerRepository(db),
		church:   repositories.NewChurchInfoRepository(db),
		pastor:   repositories.NewHeadPastorRepository(db),
		services: repositories.NewServiceTimeRepository(db),
		bus:      bus,
	}
}

// BannerRequest is the create/update payload for a homepage banner
type BannerRequest struct {
	Title          string `json:"title" binding:"required"`
	Subtitle       string `json:"subtitle"`
	ImagePath      string `json:"image_path"`
	ImageSizeBytes *int64 `json:"image_size_bytes"`
	LinkURL        string `json:"link_url"`
	IsActive       *bool  `json:"is_active"`
	SortOrder      int    `json:"sort_order"`
}

// ListBanners lists all banners including inactive ones
// GET /api/v1/admin/banners
func (h *ContentHandlers) ListBanners(c *gin.Context) {
	banners, err := h.banners.ListBanners(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list banners",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// CreateBanner creates a homepage banner
// POST /api/v1/admin/banners
func (h *ContentHandlers) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	banner := &models.HomeBanner{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImagePath: req.ImagePath,
		LinkURL:   req.LinkURL,
		IsActive:  req.IsActive == nil || *req.IsActive,
		SortOrder: req.SortOrder,
	}

	if err := h.banners.CreateBanner(c.Request.Context(), banner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create banner",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindHomeBanner,
		EntityID:       banner.ID,
		EntityLabel:    banner.Title,
		ImagePath:      banner.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

// UpdateBanner updates a homepage banner
// PUT /api/v1/admin/banners/:id
func (h *ContentHandlers) UpdateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	banner, err := h.banners.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve banner",
		})
		return
	}
	if banner == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Banner not found",
		})
		return
	}

	banner.Title = req.Title
	banner.Subtitle = req.Subtitle
	banner.ImagePath = req.ImagePath
	banner.LinkURL = req.LinkURL
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	banner.SortOrder = req.SortOrder

	if err := h.banners.UpdateBanner(c.Request.Context(), banner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update banner",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindHomeBanner,
		EntityID:    banner.ID,
		EntityLabel: banner.Title,
		ImagePath:   banner.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"banner": banner})
}

// DeleteBanner deletes a homepage banner
// DELETE /api/v1/admin/banners/:id
func (h *ContentHandlers) DeleteBanner(c *gin.Context) {
	banner, err := h.banners.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve banner",
		})
		return
	}
	if banner == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Banner not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindHomeBanner,
		EntityID:    banner.ID,
		EntityLabel: banner.Title,
		ImagePath:   banner.ImagePath,
	}

	// Pre-delete fires while the row still exists so the image tracker can
	// clean up its provenance entries.
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.banners.DeleteBanner(c.Request.Context(), banner.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete banner",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}

// ChurchInfoRequest is the create/update payload for the church profile
type ChurchInfoRequest struct {
	Name         string `json:"name" binding:"required"`
	Mission      string `json:"mission"`
	Vision       string `json:"vision"`
	About        string `json:"about"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	FacebookURL  string `json:"facebook_url"`
	YoutubeURL   string `json:"youtube_url"`
	InstagramURL string `json:"instagram_url"`
}

// GetChurchInfo returns the church profile singleton
// GET /api/v1/admin/church
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

// CreateChurchInfo creates the church profile. The table is a singleton; a
// second create returns 409.
// POST /api/v1/admin/church
func (h *ContentHandlers) CreateChurchInfo(c *gin.Context) {
	var req ChurchInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	info := &models.ChurchInfo{
		Name:         req.Name,
		Mission:      req.Mission,
		Vision:       req.Vision,
		About:        req.About,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		FacebookURL:  req.FacebookURL,
		YoutubeURL:   req.YoutubeURL,
		InstagramURL: req.InstagramURL,
	}

	if err := h.church.CreateChurchInfo(c.Request.Context(), info); err != nil {
		if errors.Is(err, repositories.ErrSingletonExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Church info already exists; update it instead",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create church info",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpCreate,
		EntityType:  events.KindChurchInfo,
		EntityID:    info.ID,
		EntityLabel: info.Name,
	})

	c.JSON(http.StatusCreated, gin.H{"church": info})
}

// UpdateChurchInfo updates the church profile
// PUT /api/v1/admin/church
func (h *ContentHandlers) UpdateChurchInfo(c *gin.Context) {
	var req ChurchInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

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

	info.Name = req.Name
	info.Mission = req.Mission
	info.Vision = req.Vision
	info.About = req.About
	info.Address = req.Address
	info.Phone = req.Phone
	info.Email = req.Email
	info.FacebookURL = req.FacebookURL
	info.YoutubeURL = req.YoutubeURL
	info.InstagramURL = req.InstagramURL

	if err := h.church.UpdateChurchInfo(c.Request.Context(), info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update church info",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindChurchInfo,
		EntityID:    info.ID,
		EntityLabel: info.Name,
	})

	c.JSON(http.StatusOK, gin.H{"church": info})
}

// HeadPastorRequest is the create/update payload for the head pastor profile
type HeadPastorRequest struct {
	Name           string `json:"name" binding:"required"`
	Title          string `json:"title"`
	Bio            string `json:"bio"`
	ImagePath      string `json:"image_path"`
	ImageSizeBytes *int64 `json:"image_size_bytes"`
}

// GetHeadPastor returns the head pastor singleton
// GET /api/v1/admin/head-pastor
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

// CreateHeadPastor creates the head pastor profile (singleton)
// POST /api/v1/admin/head-pastor
func (h *ContentHandlers) CreateHeadPastor(c *gin.Context) {
	var req HeadPastorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	pastor := &models.HeadPastor{
		Name:      req.Name,
		Title:     req.Title,
		Bio:       req.Bio,
		ImagePath: req.ImagePath,
	}

	if err := h.pastor.CreateHeadPastor(c.Request.Context(), pastor); err != nil {
		if errors.Is(err, repositories.ErrSingletonExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Head pastor already exists; update it instead",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create head pastor",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindHeadPastor,
		EntityID:       pastor.ID,
		EntityLabel:    pastor.Name,
		ImagePath:      pastor.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"head_pastor": pastor})
}

// UpdateHeadPastor updates the head pastor profile
// PUT /api/v1/admin/head-pastor
func (h *ContentHandlers) UpdateHeadPastor(c *gin.Context) {
	var req HeadPastorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

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

	pastor.Name = req.Name
	pastor.Title = req.Title
	pastor.Bio = req.Bio
	pastor.ImagePath = req.ImagePath

	if err := h.pastor.UpdateHeadPastor(c.Request.Context(), pastor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update head pastor",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindHeadPastor,
		EntityID:    pastor.ID,
		EntityLabel: pastor.Name,
		ImagePath:   pastor.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"head_pastor": pastor})
}

// DeleteHeadPastor removes the head pastor profile
// DELETE /api/v1/admin/head-pastor
func (h *ContentHandlers) DeleteHeadPastor(c *gin.Context) {
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

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindHeadPastor,
		EntityID:    pastor.ID,
		EntityLabel: pastor.Name,
		ImagePath:   pastor.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.pastor.DeleteHeadPastor(c.Request.Context(), pastor.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete head pastor",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Head pastor deleted"})
}

// ServiceTimeRequest is the create/update payload for a service time
type ServiceTimeRequest struct {
	Name      string `json:"name" binding:"required"`
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// ListServiceTimes lists the full schedule including inactive entries
// GET /api/v1/admin/service-times
func (h *ContentHandlers) ListServiceTimes(c *gin.Context) {
	times, err := h.services.ListServiceTimes(c.Request.Context(), c.Query("day"), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list service times",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_times": times})
}

// CreateServiceTime adds a schedule entry
// POST /api/v1/admin/service-times
func (h *ContentHandlers) CreateServiceTime(c *gin.Context) {
	var req ServiceTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	st := &models.ServiceTime{
		Name:      req.Name,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		IsActive:  req.IsActive == nil || *req.IsActive,
		SortOrder: req.SortOrder,
	}

	if err := h.services.CreateServiceTime(c.Request.Context(), st); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create service time",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpCreate,
		EntityType:  events.KindServiceTime,
		EntityID:    st.ID,
		EntityLabel: st.Name,
	})

	c.JSON(http.StatusCreated, gin.H{"service_time": st})
}

// UpdateServiceTime updates a schedule entry
// PUT /api/v1/admin/service-times/:id
func (h *ContentHandlers) UpdateServiceTime(c *gin.Context) {
	var req ServiceTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	st, err := h.services.GetServiceTime(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve service time",
		})
		return
	}
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service time not found",
		})
		return
	}

	st.Name = req.Name
	st.DayOfWeek = req.DayOfWeek
	st.StartTime = req.StartTime
	st.EndTime = req.EndTime
	st.Location = req.Location
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	st.SortOrder = req.SortOrder

	if err := h.services.UpdateServiceTime(c.Request.Context(), st); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update service time",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindServiceTime,
		EntityID:    st.ID,
		EntityLabel: st.Name,
	})

	c.JSON(http.StatusOK, gin.H{"service_time": st})
}

// DeleteServiceTime removes a schedule entry
// DELETE /api/v1/admin/service-times/:id
func (h *ContentHandlers) DeleteServiceTime(c *gin.Context) {
	st, err := h.services.GetServiceTime(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve service time",
		})
		return
	}
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service time not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindServiceTime,
		EntityID:    st.ID,
		EntityLabel: st.Name,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.services.DeleteServiceTime(c.Request.Context(), st.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete service time",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Service time deleted"})
}

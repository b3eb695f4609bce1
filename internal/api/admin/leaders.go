// leaders.go implements admin CRUD for leadership profiles and the photo
// gallery.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
)

// LeaderHandlers manages leadership profiles and gallery photos
type LeaderHandlers struct {
	leaders *repositories.LeaderRepository
	gallery *repositories.PhotoGalleryRepository
	bus     *events.Bus
}

// NewLeaderHandlers creates a new LeaderHandlers instance
func NewLeaderHandlers(db *sqlx.DB, bus *events.Bus) *LeaderHandlers {
	return &LeaderHandlers{
		leaders: repositories.NewLeaderRepository(db),
		gallery: repositories.NewPhotoGalleryRepository(db),
		bus:     bus,
	}
}

// LeaderRequest is the create/update payload for a leadership profile
type LeaderRequest struct {
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role" binding:"required"`
	Bio            string `json:"bio"`
	ImagePath      string `json:"image_path"`
	ImageSizeBytes *int64 `json:"image_size_bytes"`
	IsFeatured     bool   `json:"is_featured"`
	SortOrder      int    `json:"sort_order"`
}

// ListLeaders lists all leadership profiles
// GET /api/v1/admin/leaders
func (h *LeaderHandlers) ListLeaders(c *gin.Context) {
	leaders, err := h.leaders.ListLeaders(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list leaders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaders": leaders})
}

// CreateLeader creates a leadership profile
// POST /api/v1/admin/leaders
func (h *LeaderHandlers) CreateLeader(c *gin.Context) {
	var req LeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	leader := &models.Leader{
		Name:       req.Name,
		Role:       req.Role,
		Bio:        req.Bio,
		ImagePath:  req.ImagePath,
		IsFeatured: req.IsFeatured,
		SortOrder:  req.SortOrder,
	}

	if err := h.leaders.CreateLeader(c.Request.Context(), leader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create leader",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindLeader,
		EntityID:       leader.ID,
		EntityLabel:    leader.Name,
		ImagePath:      leader.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"leader": leader})
}

// UpdateLeader updates a leadership profile
// PUT /api/v1/admin/leaders/:id
func (h *LeaderHandlers) UpdateLeader(c *gin.Context) {
	var req LeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

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

	leader.Name = req.Name
	leader.Role = req.Role
	leader.Bio = req.Bio
	leader.ImagePath = req.ImagePath
	leader.IsFeatured = req.IsFeatured
	leader.SortOrder = req.SortOrder

	if err := h.leaders.UpdateLeader(c.Request.Context(), leader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update leader",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindLeader,
		EntityID:    leader.ID,
		EntityLabel: leader.Name,
		ImagePath:   leader.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"leader": leader})
}

// DeleteLeader removes a leadership profile
// DELETE /api/v1/admin/leaders/:id
func (h *LeaderHandlers) DeleteLeader(c *gin.Context) {
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

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindLeader,
		EntityID:    leader.ID,
		EntityLabel: leader.Name,
		ImagePath:   leader.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.leaders.DeleteLeader(c.Request.Context(), leader.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete leader",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Leader deleted"})
}

// PhotoRequest is the create/update payload for a gallery photo
type PhotoRequest struct {
	Title          string `json:"title" binding:"required"`
	Category       string `json:"category"`
	ImagePath      string `json:"image_path" binding:"required"`
	ImageSizeBytes *int64 `json:"image_size_bytes"`
}

// ListGalleryPhotos lists gallery photos, optionally by category
// GET /api/v1/admin/gallery
func (h *LeaderHandlers) ListGalleryPhotos(c *gin.Context) {
	photos, err := h.gallery.ListPhotos(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list gallery photos",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// CreateGalleryPhoto adds a gallery photo
// POST /api/v1/admin/gallery
func (h *LeaderHandlers) CreateGalleryPhoto(c *gin.Context) {
	var req PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	photo := &models.PhotoGalleryItem{
		Title:     req.Title,
		Category:  req.Category,
		ImagePath: req.ImagePath,
	}

	if err := h.gallery.CreatePhoto(c.Request.Context(), photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create gallery photo",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindPhotoGallery,
		EntityID:       photo.ID,
		EntityLabel:    photo.Title,
		ImagePath:      photo.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"photo": photo})
}

// UpdateGalleryPhoto updates a gallery photo's metadata
// PUT /api/v1/admin/gallery/:id
func (h *LeaderHandlers) UpdateGalleryPhoto(c *gin.Context) {
	var req PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	photo, err := h.gallery.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve gallery photo",
		})
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Gallery photo not found",
		})
		return
	}

	photo.Title = req.Title
	photo.Category = req.Category
	photo.ImagePath = req.ImagePath

	if err := h.gallery.UpdatePhoto(c.Request.Context(), photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update gallery photo",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindPhotoGallery,
		EntityID:    photo.ID,
		EntityLabel: photo.Title,
		ImagePath:   photo.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"photo": photo})
}

// DeleteGalleryPhoto removes a gallery photo
// DELETE /api/v1/admin/gallery/:id
func (h *LeaderHandlers) DeleteGalleryPhoto(c *gin.Context) {
	photo, err := h.gallery.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve gallery photo",
		})
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Gallery photo not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindPhotoGallery,
		EntityID:    photo.ID,
		EntityLabel: photo.Title,
		ImagePath:   photo.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.gallery.DeletePhoto(c.Request.Context(), photo.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete gallery photo",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Gallery photo deleted"})
}

// sermons.go implements admin CRUD for the sermon archive.
package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
)

// SermonHandlers manages the sermon archive
type SermonHandlers struct {
	sermons *repositories.SermonRepository
	bus     *events.Bus
}

// NewSermonHandlers creates a new SermonHandlers instance
func NewSermonHandlers(db *sqlx.DB, bus *events.Bus) *SermonHandlers {
	return &SermonHandlers{
		sermons: repositories.NewSermonRepository(db),
		bus:     bus,
	}
}

// SermonRequest is the create/update payload for a sermon
type SermonRequest struct {
	Title          string     `json:"title" binding:"required"`
	Speaker        string     `json:"speaker" binding:"required"`
	Series         string     `json:"series"`
	Description    string     `json:"description"`
	VideoURL       string     `json:"video_url"`
	AudioURL       string     `json:"audio_url"`
	ImagePath      string     `json:"image_path"`
	ImageSizeBytes *int64     `json:"image_size_bytes"`
	PreachedAt     *time.Time `json:"preached_at"`
	IsPublished    *bool      `json:"is_published"`
}

// ListSermons lists all sermons including unpublished drafts
// GET /api/v1/admin/sermons
func (h *SermonHandlers) ListSermons(c *gin.Context) {
	page, perPage := pagination(c)

	filters := repositories.SermonFilters{}
	if speaker := c.Query("speaker"); speaker != "" {
		filters.Speaker = &speaker
	}
	if series := c.Query("series"); series != "" {
		filters.Series = &series
	}

	sermons, total, err := h.sermons.ListSermons(c.Request.Context(), filters, perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list sermons",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sermons": sermons,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// CreateSermon creates a sermon
// POST /api/v1/admin/sermons
func (h *SermonHandlers) CreateSermon(c *gin.Context) {
	var req SermonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	sermon := &models.Sermon{
		Title:       req.Title,
		Speaker:     req.Speaker,
		Series:      req.Series,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		AudioURL:    req.AudioURL,
		ImagePath:   req.ImagePath,
		PreachedAt:  req.PreachedAt,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	}

	if err := h.sermons.CreateSermon(c.Request.Context(), sermon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create sermon",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindSermon,
		EntityID:       sermon.ID,
		EntityLabel:    sermon.Title,
		ImagePath:      sermon.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"sermon": sermon})
}

// UpdateSermon updates a sermon
// PUT /api/v1/admin/sermons/:id
func (h *SermonHandlers) UpdateSermon(c *gin.Context) {
	var req SermonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	sermon, err := h.sermons.GetSermon(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sermon",
		})
		return
	}
	if sermon == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Sermon not found",
		})
		return
	}

	sermon.Title = req.Title
	sermon.Speaker = req.Speaker
	sermon.Series = req.Series
	sermon.Description = req.Description
	sermon.VideoURL = req.VideoURL
	sermon.AudioURL = req.AudioURL
	sermon.ImagePath = req.ImagePath
	sermon.PreachedAt = req.PreachedAt
	if req.IsPublished != nil {
		sermon.IsPublished = *req.IsPublished
	}

	if err := h.sermons.UpdateSermon(c.Request.Context(), sermon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update sermon",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindSermon,
		EntityID:    sermon.ID,
		EntityLabel: sermon.Title,
		ImagePath:   sermon.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"sermon": sermon})
}

// DeleteSermon removes a sermon
// DELETE /api/v1/admin/sermons/:id
func (h *SermonHandlers) DeleteSermon(c *gin.Context) {
	sermon, err := h.sermons.GetSermon(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sermon",
		})
		return
	}
	if sermon == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Sermon not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindSermon,
		EntityID:    sermon.ID,
		EntityLabel: sermon.Title,
		ImagePath:   sermon.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.sermons.DeleteSermon(c.Request.Context(), sermon.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete sermon",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Sermon deleted"})
}

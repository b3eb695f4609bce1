// sermons.go implements the public sermon archive, event calendar, and
// branch listing endpoints.
package public

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/repositories"
)

// MediaHandlers serves sermons, events, and branch locations.
type MediaHandlers struct {
	sermons  *repositories.SermonRepository
	events   *repositories.EventRepository
	branches *repositories.BranchRepository
}

// NewMediaHandlers creates a new MediaHandlers instance
func NewMediaHandlers(db *sqlx.DB) *MediaHandlers {
	return &MediaHandlers{
		sermons:  repositories.NewSermonRepository(db),
		events:   repositories.NewEventRepository(db),
		branches: repositories.NewBranchRepository(db),
	}
}

// @Summary      List sermons
// @Description  Get a paginated list of published sermons, optionally filtered by speaker or series.
// @Tags         Sermons
// @Produce      json
// @Param        speaker   query  string  false  "Filter by speaker"
// @Param        series    query  string  false  "Filter by series"
// @Param        page      query  int     false  "Page number (default 1)"
// @Param        per_page  query  int     false  "Items per page, max 100 (default 20)"
// @Success      200  {object}  map[string]interface{}  "sermons: []models.Sermon, pagination: map"
// @Router       /api/v1/sermons [get]
// ListSermons lists published sermons with pagination
// GET /api/v1/sermons?speaker=&series=&page=1&per_page=20
func (h *MediaHandlers) ListSermons(c *gin.Context) {
	page, perPage := pagination(c)

	filters := repositories.SermonFilters{PublishedOnly: true}
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

// GetSermon retrieves a single published sermon
// GET /api/v1/sermons/:id
func (h *MediaHandlers) GetSermon(c *gin.Context) {
	sermon, err := h.sermons.GetSermon(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sermon",
		})
		return
	}
	// Unpublished sermons are invisible to the public endpoint.
	if sermon == nil || !sermon.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Sermon not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sermon": sermon})
}

// ListEvents lists events with optional filters
// GET /api/v1/events?category=&upcoming=true
func (h *MediaHandlers) ListEvents(c *gin.Context) {
	page, perPage := pagination(c)

	filters := repositories.EventFilters{
		ActiveOnly:   true,
		UpcomingOnly: c.Query("upcoming") == "true",
	}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}

	events, total, err := h.events.ListEvents(c.Request.Context(), filters, perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// GetEvent retrieves a single event
// GET /api/v1/events/:id
func (h *MediaHandlers) GetEvent(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve event",
		})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// ListBranches lists all branch locations
// GET /api/v1/branches
func (h *MediaHandlers) ListBranches(c *gin.Context) {
	branches, err := h.branches.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list branches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// GetBranch retrieves a single branch location
// GET /api/v1/branches/:id
func (h *MediaHandlers) GetBranch(c *gin.Context) {
	branch, err := h.branches.GetBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve branch",
		})
		return
	}
	if branch == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Branch not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

// pagination parses standard page/per_page query parameters.
func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

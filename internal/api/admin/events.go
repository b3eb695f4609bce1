// events.go implements admin CRUD for church events and branch locations.
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

// EventHandlers manages events and branches
type EventHandlers struct {
	events   *repositories.EventRepository
	branches *repositories.BranchRepository
	bus      *events.Bus
}

// NewEventHandlers creates a new EventHandlers instance
func NewEventHandlers(db *sqlx.DB, bus *events.Bus) *EventHandlers {
	return &EventHandlers{
		events:   repositories.NewEventRepository(db),
		branches: repositories.NewBranchRepository(db),
		bus:      bus,
	}
}

// EventRequest is the create/update payload for an event
type EventRequest struct {
	Title          string     `json:"title" binding:"required"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	ImagePath      string     `json:"image_path"`
	ImageSizeBytes *int64     `json:"image_size_bytes"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
	IsActive       *bool      `json:"is_active"`
}

// ListEvents lists all events including inactive ones
// GET /api/v1/admin/events
func (h *EventHandlers) ListEvents(c *gin.Context) {
	page, perPage := pagination(c)

	filters := repositories.EventFilters{}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}

	items, total, err := h.events.ListEvents(c.Request.Context(), filters, perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": items,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// CreateEvent creates an event
// POST /api/v1/admin/events
func (h *EventHandlers) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	event := &models.Event{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		ImagePath:   req.ImagePath,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := h.events.CreateEvent(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create event",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindEvent,
		EntityID:       event.ID,
		EntityLabel:    event.Title,
		ImagePath:      event.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// UpdateEvent updates an event
// PUT /api/v1/admin/events/:id
func (h *EventHandlers) UpdateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

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

	event.Title = req.Title
	event.Category = req.Category
	event.Description = req.Description
	event.Location = req.Location
	event.ImagePath = req.ImagePath
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := h.events.UpdateEvent(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update event",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindEvent,
		EntityID:    event.ID,
		EntityLabel: event.Title,
		ImagePath:   event.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent removes an event
// DELETE /api/v1/admin/events/:id
func (h *EventHandlers) DeleteEvent(c *gin.Context) {
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

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindEvent,
		EntityID:    event.ID,
		EntityLabel: event.Title,
		ImagePath:   event.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.events.DeleteEvent(c.Request.Context(), event.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete event",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// BranchRequest is the create/update payload for a branch location
type BranchRequest struct {
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	PastorName     string `json:"pastor_name"`
	ImagePath      string `json:"image_path"`
	ImageSizeBytes *int64 `json:"image_size_bytes"`
}

// ListBranches lists all branch locations
// GET /api/v1/admin/branches
func (h *EventHandlers) ListBranches(c *gin.Context) {
	branches, err := h.branches.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list branches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// CreateBranch creates a branch location
// POST /api/v1/admin/branches
func (h *EventHandlers) CreateBranch(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	branch := &models.Branch{
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
		PastorName: req.PastorName,
		ImagePath:  req.ImagePath,
	}

	if err := h.branches.CreateBranch(c.Request.Context(), branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create branch",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindBranch,
		EntityID:       branch.ID,
		EntityLabel:    branch.Name,
		ImagePath:      branch.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"branch": branch})
}

// UpdateBranch updates a branch location
// PUT /api/v1/admin/branches/:id
func (h *EventHandlers) UpdateBranch(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

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

	branch.Name = req.Name
	branch.Address = req.Address
	branch.Phone = req.Phone
	branch.Email = req.Email
	branch.PastorName = req.PastorName
	branch.ImagePath = req.ImagePath

	if err := h.branches.UpdateBranch(c.Request.Context(), branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update branch",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindBranch,
		EntityID:    branch.ID,
		EntityLabel: branch.Name,
		ImagePath:   branch.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

// DeleteBranch removes a branch location
// DELETE /api/v1/admin/branches/:id
func (h *EventHandlers) DeleteBranch(c *gin.Context) {
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

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindBranch,
		EntityID:    branch.ID,
		EntityLabel: branch.Name,
		ImagePath:   branch.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.branches.DeleteBranch(c.Request.Context(), branch.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete branch",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
}

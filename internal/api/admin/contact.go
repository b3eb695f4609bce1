// contact.go implements admin handling of contact messages and testimony
// moderation.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
)

// ContactAdminHandlers manages the contact inbox and testimonies
type ContactAdminHandlers struct {
	messages    *repositories.ContactMessageRepository
	testimonies *repositories.TestimonyRepository
	bus         *events.Bus
}

// NewContactAdminHandlers creates a new ContactAdminHandlers instance
func NewContactAdminHandlers(db *sqlx.DB, bus *events.Bus) *ContactAdminHandlers {
	return &ContactAdminHandlers{
		messages:    repositories.NewContactMessageRepository(db),
		testimonies: repositories.NewTestimonyRepository(db),
		bus:         bus,
	}
}

// ListContactMessages lists contact messages, newest first
// GET /api/v1/admin/contact-messages?unread=true
func (h *ContactAdminHandlers) ListContactMessages(c *gin.Context) {
	page, perPage := pagination(c)

	messages, total, err := h.messages.ListContactMessages(
		c.Request.Context(), c.Query("unread") == "true", perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list contact messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// MarkContactMessageRead marks a contact message as read
// POST /api/v1/admin/contact-messages/:id/read
func (h *ContactAdminHandlers) MarkContactMessageRead(c *gin.Context) {
	if err := h.messages.MarkContactMessageRead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark message read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// DeleteContactMessage removes a contact message
// DELETE /api/v1/admin/contact-messages/:id
func (h *ContactAdminHandlers) DeleteContactMessage(c *gin.Context) {
	deleted, err := h.messages.DeleteContactMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete contact message",
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Contact message not found",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:         events.OpDelete,
		EntityType: events.KindContact,
		EntityID:   c.Param("id"),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Contact message deleted"})
}

// TestimonyRequest is the create/update payload for a testimony
type TestimonyRequest struct {
	AuthorName string `json:"author_name" binding:"required"`
	Content    string `json:"content" binding:"required"`
	IsApproved *bool  `json:"is_approved"`
}

// ListTestimonies lists all testimonies including unapproved ones
// GET /api/v1/admin/testimonies
func (h *ContactAdminHandlers) ListTestimonies(c *gin.Context) {
	testimonies, err := h.testimonies.ListTestimonies(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list testimonies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonies": testimonies})
}

// CreateTestimony records a testimony on a member's behalf
// POST /api/v1/admin/testimonies
func (h *ContactAdminHandlers) CreateTestimony(c *gin.Context) {
	var req TestimonyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	testimony := &models.Testimony{
		AuthorName: req.AuthorName,
		Content:    req.Content,
		IsApproved: req.IsApproved != nil && *req.IsApproved,
	}

	if err := h.testimonies.CreateTestimony(c.Request.Context(), testimony); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create testimony",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpCreate,
		EntityType:  events.KindTestimony,
		EntityID:    testimony.ID,
		EntityLabel: testimony.AuthorName,
	})

	c.JSON(http.StatusCreated, gin.H{"testimony": testimony})
}

// UpdateTestimony updates or moderates a testimony
// PUT /api/v1/admin/testimonies/:id
func (h *ContactAdminHandlers) UpdateTestimony(c *gin.Context) {
	var req TestimonyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	testimony, err := h.testimonies.GetTestimony(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve testimony",
		})
		return
	}
	if testimony == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Testimony not found",
		})
		return
	}

	testimony.AuthorName = req.AuthorName
	testimony.Content = req.Content
	if req.IsApproved != nil {
		testimony.IsApproved = *req.IsApproved
	}

	if err := h.testimonies.UpdateTestimony(c.Request.Context(), testimony); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update testimony",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindTestimony,
		EntityID:    testimony.ID,
		EntityLabel: testimony.AuthorName,
	})

	c.JSON(http.StatusOK, gin.H{"testimony": testimony})
}

// DeleteTestimony removes a testimony
// DELETE /api/v1/admin/testimonies/:id
func (h *ContactAdminHandlers) DeleteTestimony(c *gin.Context) {
	testimony, err := h.testimonies.GetTestimony(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve testimony",
		})
		return
	}
	if testimony == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Testimony not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindTestimony,
		EntityID:    testimony.ID,
		EntityLabel: testimony.AuthorName,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.testimonies.DeleteTestimony(c.Request.Context(), testimony.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete testimony",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Testimony deleted"})
}

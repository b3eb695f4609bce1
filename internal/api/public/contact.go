// contact.go implements the public contact form and the approved-testimony
// listing.
package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
)

// ContactHandlers serves the contact form and testimonies.
type ContactHandlers struct {
	messages    *repositories.ContactMessageRepository
	testimonies *repositories.TestimonyRepository
}

// NewContactHandlers creates a new ContactHandlers instance
func NewContactHandlers(db *sqlx.DB) *ContactHandlers {
	return &ContactHandlers{
		messages:    repositories.NewContactMessageRepository(db),
		testimonies: repositories.NewTestimonyRepository(db),
	}
}

// SubmitContactRequest is the contact form payload
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// @Summary      Submit contact message
// @Description  Submit a message through the public contact form. No authentication required.
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        body  body  SubmitContactRequest  true  "Contact form submission"
// @Success      201  {object}  map[string]interface{}  "message: received"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Router       /api/v1/contact [post]
// SubmitContactMessage stores a visitor message
// POST /api/v1/contact
func (h *ContactHandlers) SubmitContactMessage(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.messages.CreateContactMessage(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for reaching out. We will get back to you soon.",
		"id":      msg.ID,
	})
}

// ListTestimonies returns approved testimonies
// GET /api/v1/testimonies
func (h *ContactHandlers) ListTestimonies(c *gin.Context) {
	testimonies, err := h.testimonies.ListTestimonies(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list testimonies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonies": testimonies})
}

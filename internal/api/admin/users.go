// users.go implements admin user account management.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/auth"
	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
)

// UserHandlers manages admin accounts
type UserHandlers struct {
	users *repositories.UserRepository
	bus   *events.Bus
}

// NewUserHandlers creates a new UserHandlers instance
func NewUserHandlers(db *sqlx.DB, bus *events.Bus) *UserHandlers {
	return &UserHandlers{
		users: repositories.NewUserRepository(db),
		bus:   bus,
	}
}

// CreateUserRequest is the payload for creating an admin account
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

// ListUsers lists all accounts
// GET /api/v1/admin/users
func (h *UserHandlers) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser creates an account
// POST /api/v1/admin/users
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	existing, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check existing user",
		})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Username already taken",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to hash password",
		})
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}

	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpCreate,
		EntityType:  events.KindUser,
		EntityID:    user.ID,
		EntityLabel: user.Username,
	})

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

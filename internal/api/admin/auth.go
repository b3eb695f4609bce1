// Package admin implements the authenticated management API: session auth,
// content CRUD, the audit trail, image provenance, and exchange-rate
// administration. Every successful content write publishes a change event so
// the audit recorder and image tracker observe it.
package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/audit"
	"github.com/churchsite/church-backend/internal/auth"
	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/requestinfo"
)

// AuthHandlers handles admin session endpoints
type AuthHandlers struct {
	users    *repositories.UserRepository
	recorder *audit.Recorder
	tokenTTL time.Duration
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(db *sqlx.DB, recorder *audit.Recorder, tokenTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{
		users:    repositories.NewUserRepository(db),
		recorder: recorder,
		tokenTTL: tokenTTL,
	}
}

// LoginRequest is the credential payload for password login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Login
// @Description  Exchange username/password for a JWT. Failed attempts are recorded in the audit trail with the caller's IP and user agent.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "token, expires_at, user"
// @Failure      401  {object}  map[string]interface{}  "Invalid credentials"
// @Router       /api/v1/auth/login [post]
// LoginHandler authenticates an admin user and issues a JWT
// POST /api/v1/auth/login
func (h *AuthHandlers) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		ctx := c.Request.Context()

		user, err := h.users.GetUserByUsername(ctx, req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Authentication failed",
			})
			return
		}

		// A missing user and a wrong password produce the same response and
		// the same audit record, so the endpoint does not leak which
		// usernames exist.
		if user == nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.recorder.RecordLoginFailed(ctx, req.Username)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Username, user.IsAdmin, h.tokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to issue token",
			})
			return
		}

		// The request authenticated just now, so install the actor before
		// recording the login; the auth middleware only does this for
		// already-authenticated requests.
		info, _ := requestinfo.FromContext(ctx)
		info.Actor = &requestinfo.Actor{UserID: user.ID, Username: user.Username}
		h.recorder.RecordLogin(requestinfo.WithRequestInfo(ctx, info))

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_at": time.Now().Add(h.tokenTTL).UTC().Format(time.RFC3339),
			"user":       user,
		})
	}
}

// LogoutHandler records a logout event. The JWT itself stays valid until it
// expires; logout exists for the audit trail, not for token revocation.
// POST /api/v1/auth/logout
func (h *AuthHandlers) LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.recorder.RecordLogout(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out",
		})
	}
}

// MeHandler returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandlers) MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authenticated",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// ChangePasswordRequest carries the current and replacement passwords
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePasswordHandler lets the authenticated user rotate their password
// POST /api/v1/auth/change-password
func (h *AuthHandlers) ChangePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		userVal, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authenticated",
			})
			return
		}
		user := userVal.(*models.User)

		if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Current password is incorrect",
			})
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to hash password",
			})
			return
		}

		if err := h.users.UpdatePassword(c.Request.Context(), user.ID, hash); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update password",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Password updated",
		})
	}
}

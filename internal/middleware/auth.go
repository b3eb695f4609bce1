// Package middleware provides Gin HTTP middleware for authentication,
// rate limiting, security headers, and request-context propagation.
//
// Middleware ordering matters and is enforced in router.go:
//
//	Security → CORS → RequestID → Metrics → ClientInfo → RateLimit → Auth → Handler
//
// Security headers run first so they appear on all responses including errors.
// ClientInfo runs before auth so IP and user agent are available even for
// requests that never authenticate (failed logins are recorded with both).
// Rate limiting runs before auth to block brute-force attacks before any DB work.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/churchsite/church-backend/internal/auth"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/requestinfo"
)

// ClientInfoMiddleware installs request metadata (client IP, user agent) into
// the request context. The actor slot stays empty until AuthMiddleware fills
// it; unauthenticated requests still carry IP and user agent so that events
// like failed logins can be recorded with their origin.
func ClientInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := requestinfo.WithRequestInfo(c.Request.Context(), requestinfo.Info{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthMiddleware validates the Bearer JWT, loads the user, and populates both
// the gin context and the request context with the authenticated actor.
func AuthMiddleware(userRepo *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := auth.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load user",
			})
			return
		}
		if user == nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "User not found or deactivated",
			})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("is_admin", user.IsAdmin)

		setActor(c, user.ID, user.Username)

		c.Next()
	}
}

// RequireAdmin aborts with 403 unless AuthMiddleware established an admin
// user. Must be registered after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin privileges required",
			})
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware is the same as AuthMiddleware but continues without
// an actor when no valid credentials are presented. Public endpoints use it
// so that admin previews of unpublished content stay possible.
func OptionalAuthMiddleware(userRepo *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.Next()
			return
		}

		if claims, err := auth.ValidateJWT(token); err == nil {
			user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserID)
			if err == nil && user != nil && user.IsActive {
				c.Set("user", user)
				c.Set("user_id", user.ID)
				c.Set("username", user.Username)
				c.Set("is_admin", user.IsAdmin)
				setActor(c, user.ID, user.Username)
			}
		}

		c.Next()
	}
}

// bearerToken extracts the Bearer token from the Authorization header,
// aborting the request with 401 when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Missing authorization header",
		})
		return "", false
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization header must start with 'Bearer '",
		})
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization token is empty",
		})
		return "", false
	}

	return token, true
}

// setActor upgrades the request context installed by ClientInfoMiddleware
// with the authenticated actor, preserving IP and user agent.
func setActor(c *gin.Context, userID, username string) {
	info, _ := requestinfo.FromContext(c.Request.Context())
	info.Actor = &requestinfo.Actor{UserID: userID, Username: username}
	if info.IPAddress == "" {
		info.IPAddress = c.ClientIP()
	}
	if info.UserAgent == "" {
		info.UserAgent = c.Request.UserAgent()
	}
	c.Request = c.Request.WithContext(requestinfo.WithRequestInfo(c.Request.Context(), info))
}

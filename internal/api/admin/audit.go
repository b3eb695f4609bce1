// audit.go exposes the audit trail to administrators. Records are written by
// the audit recorder subscribed to the change bus; this file is read-only
// access plus filtering.
package admin

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/churchsite/church-backend/internal/db/repositories"
)

// AuditHandlers serves the audit trail
type AuditHandlers struct {
	audit *repositories.AuditRepository
}

// NewAuditHandlers creates a new AuditHandlers instance
func NewAuditHandlers(db *sql.DB) *AuditHandlers {
	return &AuditHandlers{
		audit: repositories.NewAuditRepository(db),
	}
}

// @Summary      List audit logs
// @Description  Get a paginated, filterable list of audit records, newest first. Admin only.
// @Tags         Audit
// @Security     Bearer
// @Produce      json
// @Param        user_id      query  string  false  "Filter by acting user ID"
// @Param        action       query  string  false  "Filter by action (CREATE, UPDATE, DELETE, LOGIN, LOGOUT, PERMISSION_DENIED)"
// @Param        entity_type  query  string  false  "Filter by entity type (e.g. Sermon)"
// @Param        start_date   query  string  false  "RFC3339 lower bound on created_at"
// @Param        end_date     query  string  false  "RFC3339 upper bound on created_at"
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        per_page     query  int     false  "Items per page, max 100 (default 20)"
// @Success      200  {object}  map[string]interface{}  "logs: []models.AuditLog, pagination: map"
// @Failure      400  {object}  map[string]interface{}  "Invalid date filter"
// @Router       /api/v1/admin/audit-logs [get]
// ListAuditLogs lists audit records with filters and pagination
// GET /api/v1/admin/audit-logs
func (h *AuditHandlers) ListAuditLogs(c *gin.Context) {
	page, perPage := pagination(c)

	var filters repositories.AuditFilters
	if userID := c.Query("user_id"); userID != "" {
		filters.UserID = &userID
	}
	if action := c.Query("action"); action != "" {
		filters.Action = &action
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		filters.EntityType = &entityType
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid start_date: expected RFC3339",
			})
			return
		}
		filters.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid end_date: expected RFC3339",
			})
			return
		}
		filters.EndDate = &t
	}

	logs, total, err := h.audit.ListAuditLogs(c.Request.Context(), filters, perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list audit logs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": logs,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// GetAuditLog retrieves a single audit record
// GET /api/v1/admin/audit-logs/:id
func (h *AuditHandlers) GetAuditLog(c *gin.Context) {
	log, err := h.audit.GetAuditLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve audit log",
		})
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Audit log not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": log})
}

// images.go exposes the image provenance log and the orphan reconciliation
// sweep to administrators.
package admin

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/images"
)

// ImageLogHandlers serves the image provenance log
type ImageLogHandlers struct {
	logs       *repositories.ImageLogRepository
	reconciler *images.Reconciler
}

// NewImageLogHandlers creates a new ImageLogHandlers instance
func NewImageLogHandlers(db *sql.DB, reconciler *images.Reconciler) *ImageLogHandlers {
	return &ImageLogHandlers{
		logs:       repositories.NewImageLogRepository(db),
		reconciler: reconciler,
	}
}

// ListImageLogs lists provenance entries, optionally for one owner type
// GET /api/v1/admin/image-logs?owner_type=Sermon
func (h *ImageLogHandlers) ListImageLogs(c *gin.Context) {
	page, perPage := pagination(c)

	logs, total, err := h.logs.ListImageLogs(c.Request.Context(), c.Query("owner_type"), perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list image logs",
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

// ReconcileRequest optionally narrows the sweep to specific owner kinds
type ReconcileRequest struct {
	Kinds []string `json:"kinds"`
}

// @Summary      Reconcile image logs
// @Description  Sweep the image provenance log and delete entries whose owning entity no longer exists. An empty body sweeps every registered kind.
// @Tags         Images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  ReconcileRequest  false  "Owner kinds to sweep (default: all)"
// @Success      200  {object}  map[string]interface{}  "removed: int, kinds: []string"
// @Router       /api/v1/admin/image-logs/reconcile [post]
// Reconcile removes provenance entries for deleted owners
// POST /api/v1/admin/image-logs/reconcile
func (h *ImageLogHandlers) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}
	}

	removed, err := h.reconciler.Reconcile(c.Request.Context(), req.Kinds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Reconciliation failed",
		})
		return
	}

	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = h.reconciler.Kinds()
	}

	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
		"kinds":   kinds,
	})
}

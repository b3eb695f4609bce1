// helpers.go holds small shared helpers for the admin handlers.
package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

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

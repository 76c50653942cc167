package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchLocations suggests countries and cities matching the query.
func (h *Handler) SearchLocations(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		q = c.Query("q")
	}
	suggestions, err := h.locations.Search(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}

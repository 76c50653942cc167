package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/middleware"
	"dgdorm/server/internal/policy"
)

type addFavoriteRequest struct {
	PropertyID *flexFloat `json:"propertyId"`
}

// AddFavorite bookmarks a property for the user in the path. A repeat
// add conflicts instead of silently succeeding.
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanManageFavorites(actor, userID); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if req.PropertyID == nil || *req.PropertyID <= 0 {
		h.respondError(c, apperr.New(apperr.Validation, "propertyId is required"))
		return
	}

	if err := h.favorites.Add(c.Request.Context(), userID, uint(*req.PropertyID)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Property added to favorites"})
}

// GetFavorites returns the user's bookmarks as summary projections.
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanManageFavorites(actor, userID); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	summaries, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summaries, "count": len(summaries)})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

// GetPropertiesByStatus lists properties in one moderation state,
// pending by default.
func (h *Handler) GetPropertiesByStatus(c *gin.Context) {
	status := models.PropertyStatus(c.DefaultQuery("status", string(models.StatusPending)))
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		h.respondError(c, apperr.New(apperr.Validation, "invalid status"))
		return
	}

	properties, err := h.db.PropertiesByStatus(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
}

// GetAllProperties lists every property regardless of state.
func (h *Handler) GetAllProperties(c *gin.Context) {
	properties, err := h.db.AllProperties(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
}

// ApproveProperty moves a listing to approved.
func (h *Handler) ApproveProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	property, err := h.moderation.Approve(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property approved", "property": property})
}

// RejectProperty moves a listing to rejected.
func (h *Handler) RejectProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	property, err := h.moderation.Reject(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property rejected", "property": property})
}

// BanOwner bans an owner and cascades to their properties. When the
// cascade could not finish, the owner stays banned and the response
// names the pending cascade so it can be reconciled.
func (h *Handler) BanOwner(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.moderation.BanOwner(c.Request.Context(), id)
	if err != nil {
		if apperr.KindOf(err) == apperr.PartialFailure && result != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      err.Error(),
				"code":       apperr.PartialFailure.String(),
				"cascade_id": result.CascadeID,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Owner banned",
		"cascade_id":          result.CascadeID,
		"properties_disabled": result.PropertiesDisabled,
	})
}

// GetAllUsers lists every account.
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
}

// GetAllOwners lists accounts with the owner role.
func (h *Handler) GetAllOwners(c *gin.Context) {
	owners, err := h.db.ListUsersByRole(c.Request.Context(), models.RoleOwner)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": owners, "count": len(owners)})
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/middleware"
	"dgdorm/server/internal/policy"
)

type userInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// GetUserByID returns one account. Self-access only, admins excepted.
func (h *Handler) GetUserByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanAccessUser(actor, id); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	user, err := h.db.UserByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser applies partial profile changes. Role and ban state never
// change here.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanAccessUser(actor, id); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	user, err := h.db.UserByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid user body", err))
		return
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		user.Email = strings.TrimSpace(*input.Email)
	}

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. Admin only.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

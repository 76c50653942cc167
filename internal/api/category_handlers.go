package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

type categoryInput struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
}

// bindCategoryInput reads a category payload from JSON or multipart form
// and stores an uploaded icon, if any.
func (h *Handler) bindCategoryInput(c *gin.Context) (*categoryInput, string, error) {
	var input categoryInput
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, "", apperr.Wrap(apperr.Validation, "invalid category body", err)
		}
		return &input, "", nil
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, "", apperr.Wrap(apperr.Validation, "invalid category form", err)
	}
	file, err := c.FormFile("icon")
	if err != nil {
		return &input, "", nil
	}
	ref, err := h.uploads.Save(c, file)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "failed to store icon", err)
	}
	return &input, ref, nil
}

// ListCategories returns every category, name-ordered.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.db.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
}

// GetCategoryByID returns one category.
func (h *Handler) GetCategoryByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	category, err := h.db.CategoryByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetCategoryByName looks a category up by its exact name.
func (h *Handler) GetCategoryByName(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		h.respondError(c, apperr.New(apperr.Validation, "invalid name"))
		return
	}

	category, err := h.db.CategoryByName(c.Request.Context(), name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory registers a new category. Names are unique; a repeat
// name conflicts.
func (h *Handler) CreateCategory(c *gin.Context) {
	input, icon, err := h.bindCategoryInput(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		h.respondError(c, apperr.New(apperr.Validation, "name is required"))
		return
	}

	category := &models.Category{
		Name: strings.TrimSpace(*input.Name),
		Icon: icon,
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := h.db.CreateCategory(c.Request.Context(), category); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory applies partial changes to a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	category, err := h.db.CategoryByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	input, icon, err := h.bindCategoryInput(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if icon != "" {
		category.Icon = icon
	}

	if err := h.db.UpdateCategory(c.Request.Context(), category); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.db.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

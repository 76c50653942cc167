package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/middleware"
	"dgdorm/server/internal/models"
	"dgdorm/server/internal/policy"
	"dgdorm/server/internal/query"
)

// GetProperties returns one page of approved listings.
func (h *Handler) GetProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(query.DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(query.DefaultLimit)))

	result, err := h.query.ListApproved(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  result.Items,
		"count": result.Count,
		"pagination": gin.H{
			"total": result.Total,
			"page":  result.Page,
			"pages": result.Pages,
		},
	})
}

// GetPropertyByID returns a single approved listing.
func (h *Handler) GetPropertyByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	property, err := h.query.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

type priceRange struct {
	Min *flexFloat `json:"min"`
	Max *flexFloat `json:"max"`
}

type filterRequest struct {
	Query     string         `json:"query"`
	Category  *flexFloat     `json:"category"`
	Price     *priceRange    `json:"price"`
	Location  *locationInput `json:"location"`
	Amenities stringList     `json:"amenities"`
}

// FilterProperties runs the composed search over approved listings.
func (h *Handler) FilterProperties(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid filter body", err))
		return
	}

	filter := query.Filter{
		Text:      strings.TrimSpace(req.Query),
		Amenities: req.Amenities,
	}
	if req.Category != nil {
		if *req.Category <= 0 {
			h.respondError(c, apperr.New(apperr.Validation, "invalid category"))
			return
		}
		id := uint(*req.Category)
		filter.CategoryID = &id
	}
	if req.Price != nil {
		filter.PriceMin = req.Price.Min.ptr()
		filter.PriceMax = req.Price.Max.ptr()
	}
	if req.Location != nil {
		filter.Center = req.Location.point()
		filter.RadiusKm = req.Location.Radius.ptr()
		if filter.Center == nil {
			h.respondError(c, apperr.New(apperr.Validation, "location requires lat and lng"))
			return
		}
	}

	result, err := h.query.Filter(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// propertyInput carries the create/update fields after normalization.
// Every field is optional at this level; create enforces its required
// set separately.
type propertyInput struct {
	Title       *string
	Description *string
	CategoryID  *uint
	Address     *string
	Price       *float64
	Location    *locationInput
	Amenities   *stringList
	IsAvailable *bool
}

type propertyJSON struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	CategoryID  *flexFloat     `json:"category_id"`
	Address     *string        `json:"address"`
	Price       *flexFloat     `json:"price"`
	Location    *locationInput `json:"location"`
	Amenities   *stringList    `json:"amenities"`
	IsAvailable *bool          `json:"is_available"`
}

// bindPropertyInput reads a property payload from either a JSON body or
// a multipart form. Uploaded files are handled separately.
func bindPropertyInput(c *gin.Context) (*propertyInput, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var body propertyJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, apperr.Wrap(apperr.Validation, "invalid property body", err)
		}
		input := &propertyInput{
			Title:       body.Title,
			Description: body.Description,
			Address:     body.Address,
			Price:       body.Price.ptr(),
			Location:    body.Location,
			IsAvailable: body.IsAvailable,
		}
		if body.CategoryID != nil {
			if *body.CategoryID <= 0 {
				return nil, apperr.New(apperr.Validation, "invalid category_id")
			}
			id := uint(*body.CategoryID)
			input.CategoryID = &id
		}
		if body.Amenities != nil {
			input.Amenities = body.Amenities
		}
		return input, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}

	input := &propertyInput{}
	field := func(name string) (string, bool) {
		values, ok := form.Value[name]
		if !ok || len(values) == 0 {
			return "", false
		}
		return values[0], true
	}

	if v, ok := field("title"); ok {
		input.Title = &v
	}
	if v, ok := field("description"); ok {
		input.Description = &v
	}
	if v, ok := field("address"); ok {
		input.Address = &v
	}
	if v, ok := field("category_id"); ok {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "invalid category_id")
		}
		cid := uint(id)
		input.CategoryID = &cid
	}
	if v, ok := field("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "invalid price")
		}
		input.Price = &price
	}
	if v, ok := field("location"); ok {
		var loc locationInput
		if err := loc.fromString(v); err != nil {
			return nil, apperr.Wrap(apperr.Validation, "invalid location", err)
		}
		input.Location = &loc
	}
	if v, ok := field("amenities"); ok {
		var list stringList
		if err := list.fromString(v); err != nil {
			return nil, apperr.Wrap(apperr.Validation, "invalid amenities", err)
		}
		input.Amenities = &list
	}
	if v, ok := field("is_available"); ok {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "invalid is_available")
		}
		input.IsAvailable = &available
	}
	return input, nil
}

// CreateProperty registers a new listing for the acting owner. New
// listings always start pending, whatever the caller sends.
func (h *Handler) CreateProperty(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanCreateProperty(actor); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	input, images, err := h.bindWithUploads(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if input.Title == nil || *input.Title == "" ||
		input.Description == nil || *input.Description == "" ||
		input.Address == nil || *input.Address == "" ||
		input.CategoryID == nil || input.Price == nil {
		h.respondError(c, apperr.New(apperr.Validation,
			"title, description, category_id, address and price are required"))
		return
	}
	point := input.Location.point()
	if point == nil {
		h.respondError(c, apperr.New(apperr.Validation, "location is required"))
		return
	}

	if _, err := h.db.CategoryByID(c.Request.Context(), *input.CategoryID); err != nil {
		h.respondError(c, err)
		return
	}

	property := &models.Property{
		Title:       *input.Title,
		Description: *input.Description,
		CategoryID:  *input.CategoryID,
		OwnerID:     actor.ID,
		Location:    models.NewGeoPoint(point.Lon(), point.Lat()),
		Address:     *input.Address,
		Price:       *input.Price,
		Images:      images,
		Status:      models.StatusPending,
		IsAvailable: true,
	}
	if input.Amenities != nil {
		property.Amenities = []string(*input.Amenities)
	}

	if err := h.db.CreateProperty(c.Request.Context(), property); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"property_id": property.ID,
		"owner_id":    actor.ID,
	}).Info("Property created")
	c.JSON(http.StatusCreated, property)
}

// bindWithUploads normalizes the payload and persists any uploaded
// images through the upload store.
func (h *Handler) bindWithUploads(c *gin.Context) (*propertyInput, []string, error) {
	input, err := bindPropertyInput(c)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return input, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return input, nil, nil
	}
	refs, err := h.uploads.SaveAll(c, files)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "failed to store images", err)
	}
	return input, refs, nil
}

// UpdateProperty applies partial changes to a listing. The owner
// reference and moderation status are untouchable through this path.
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	property, err := h.db.PropertyByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanMutateProperty(actor, property.OwnerID); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	input, images, err := h.bindWithUploads(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.CategoryID != nil {
		if _, err := h.db.CategoryByID(c.Request.Context(), *input.CategoryID); err != nil {
			h.respondError(c, err)
			return
		}
		property.CategoryID = *input.CategoryID
		property.Category = nil
	}
	if input.Location != nil {
		point := input.Location.point()
		if point == nil {
			h.respondError(c, apperr.New(apperr.Validation, "location requires coordinates"))
			return
		}
		property.Location = models.NewGeoPoint(point.Lon(), point.Lat())
	}
	if input.Amenities != nil {
		property.Amenities = []string(*input.Amenities)
	}
	if input.IsAvailable != nil {
		property.IsAvailable = *input.IsAvailable
	}
	if len(images) > 0 {
		property.Images = append(property.Images, images...)
	}

	if err := h.db.UpdateProperty(c.Request.Context(), property); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteProperty removes a listing.
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	property, err := h.db.PropertyByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if decision := policy.CanMutateProperty(actor, property.OwnerID); !decision.Allowed {
		h.respondError(c, apperr.New(apperr.Forbidden, decision.Reason))
		return
	}

	if err := h.db.DeleteProperty(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// GetOwnerProperties lists the acting owner's listings in every
// moderation state.
func (h *Handler) GetOwnerProperties(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	if actor == nil {
		h.respondError(c, apperr.New(apperr.Unauthenticated, "not authenticated"))
		return
	}

	properties, err := h.db.PropertiesByOwner(c.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
}

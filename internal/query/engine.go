// Package query builds and executes the approved-property queries:
// pagination, lookup, and composed filter/search including the
// geospatial near-query.
package query

import (
	"context"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/sirupsen/logrus"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/database"
	"dgdorm/server/internal/models"
)

const (
	DefaultPage     = 1
	DefaultLimit    = 10
	DefaultRadiusKm = 10.0
)

// Store is the slice of the persistent store the engine needs.
type Store interface {
	ListApproved(ctx context.Context, offset, limit int) ([]models.Property, error)
	CountApproved(ctx context.Context) (int64, error)
	ApprovedByID(ctx context.Context, id uint) (*models.Property, error)
	FilterApproved(ctx context.Context, filter database.PropertyFilter) ([]models.Property, error)
}

type Engine struct {
	store  Store
	logger *logrus.Logger
}

func NewEngine(store Store, logger *logrus.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Page is one page of approved properties plus pagination totals.
type Page struct {
	Items []models.Property `json:"data"`
	Count int               `json:"count"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}

// Filter is the canonical, already-normalized search input. The API
// boundary parses the shape-shifting request bodies into this before the
// engine ever sees them.
type Filter struct {
	Text       string
	CategoryID *uint
	PriceMin   *float64
	PriceMax   *float64
	Amenities  []string
	Center     *orb.Point // longitude, latitude
	RadiusKm   *float64
}

// Result carries a full filtered result set; the filter path is not
// paginated.
type Result struct {
	Items []models.Property `json:"data"`
	Count int               `json:"count"`
}

// ListApproved returns one page of approved properties. A page past the
// end yields an empty slice, not an error.
func (e *Engine) ListApproved(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total, err := e.store.CountApproved(ctx)
	if err != nil {
		return nil, err
	}

	items, err := e.store.ListApproved(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Property{}
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &Page{
		Items: items,
		Count: len(items),
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

// GetByID returns an approved property. Listings in any other state are
// invisible through this path, even to their own owner.
func (e *Engine) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	return e.store.ApprovedByID(ctx, id)
}

// Filter runs the composed search. Equality, range, text and amenity
// filters execute in the store; the geospatial cut happens here, where
// matches are filtered to the radius and sorted by distance.
func (e *Engine) Filter(ctx context.Context, filter Filter) (*Result, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	items, err := e.store.FilterApproved(ctx, database.PropertyFilter{
		Text:       filter.Text,
		CategoryID: filter.CategoryID,
		PriceMin:   filter.PriceMin,
		PriceMax:   filter.PriceMax,
		Amenities:  filter.Amenities,
	})
	if err != nil {
		return nil, err
	}

	if filter.Center != nil {
		radiusKm := DefaultRadiusKm
		if filter.RadiusKm != nil {
			radiusKm = *filter.RadiusKm
		}
		items = nearestWithin(items, *filter.Center, radiusKm)
	}
	if items == nil {
		items = []models.Property{}
	}

	return &Result{Items: items, Count: len(items)}, nil
}

func validateFilter(filter Filter) error {
	if filter.PriceMin != nil && *filter.PriceMin < 0 {
		return apperr.New(apperr.Validation, "minimum price must not be negative")
	}
	if filter.PriceMax != nil && *filter.PriceMax < 0 {
		return apperr.New(apperr.Validation, "maximum price must not be negative")
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return apperr.New(apperr.Validation, "minimum price exceeds maximum price")
	}
	if filter.RadiusKm != nil && *filter.RadiusKm <= 0 {
		return apperr.New(apperr.Validation, "radius must be positive")
	}
	if filter.RadiusKm != nil && filter.Center == nil {
		return apperr.New(apperr.Validation, "radius requires a location")
	}
	return nil
}

// nearestWithin keeps properties within radiusKm of center, ordered by
// haversine distance.
func nearestWithin(items []models.Property, center orb.Point, radiusKm float64) []models.Property {
	type scored struct {
		property models.Property
		distance float64
	}

	maxMeters := radiusKm * 1000
	matches := make([]scored, 0, len(items))
	for _, p := range items {
		if !p.Location.Valid() {
			continue
		}
		d := geo.Distance(center, p.Location.Point())
		if d <= maxMeters {
			matches = append(matches, scored{property: p, distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]models.Property, len(matches))
	for i, m := range matches {
		result[i] = m.property
	}
	return result
}

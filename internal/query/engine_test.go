package query

import (
	"context"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/database"
	"dgdorm/server/internal/models"
)

// fakeStore mimics the store contract in memory: equality, range and
// amenity-superset filters over approved properties only.
type fakeStore struct {
	properties []models.Property
}

func (f *fakeStore) approved() []models.Property {
	var out []models.Property
	for _, p := range f.properties {
		if p.Status == models.StatusApproved {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeStore) ListApproved(_ context.Context, offset, limit int) ([]models.Property, error) {
	approved := f.approved()
	if offset >= len(approved) {
		return nil, nil
	}
	end := offset + limit
	if end > len(approved) {
		end = len(approved)
	}
	return approved[offset:end], nil
}

func (f *fakeStore) CountApproved(_ context.Context) (int64, error) {
	return int64(len(f.approved())), nil
}

func (f *fakeStore) ApprovedByID(_ context.Context, id uint) (*models.Property, error) {
	for _, p := range f.approved() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "property not found or not approved")
}

func (f *fakeStore) FilterApproved(_ context.Context, filter database.PropertyFilter) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.approved() {
		if filter.Text != "" &&
			!strings.Contains(strings.ToLower(p.Title+" "+p.Description), strings.ToLower(filter.Text)) {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.PriceMin != nil && p.Price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && p.Price > *filter.PriceMax {
			continue
		}
		if !p.HasAmenities(filter.Amenities) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func newEngine(properties ...models.Property) *Engine {
	return NewEngine(&fakeStore{properties: properties}, logrus.New())
}

func approvedProperty(id uint, price float64, lng, lat float64, amenities ...string) models.Property {
	return models.Property{
		ID:          id,
		Title:       "Listing",
		Description: "A listing",
		CategoryID:  1,
		OwnerID:     1,
		Price:       price,
		Location:    models.NewGeoPoint(lng, lat),
		Amenities:   amenities,
		Status:      models.StatusApproved,
		IsAvailable: true,
	}
}

func TestListApprovedPagination(t *testing.T) {
	var props []models.Property
	for i := uint(1); i <= 25; i++ {
		props = append(props, approvedProperty(i, 100, 0, 0))
	}
	engine := newEngine(props...)

	page, err := engine.ListApproved(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Pages) // ceil(25/10)

	last, err := engine.ListApproved(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
	assert.LessOrEqual(t, last.Count, 10)
}

func TestListApprovedBeyondLastPage(t *testing.T) {
	engine := newEngine(approvedProperty(1, 100, 0, 0))

	page, err := engine.ListApproved(context.Background(), 99, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Count)
	assert.Equal(t, int64(1), page.Total)
}

func TestListApprovedDefaults(t *testing.T) {
	engine := newEngine(approvedProperty(1, 100, 0, 0))

	page, err := engine.ListApproved(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, page.Page)
	assert.Len(t, page.Items, 1)
}

func TestListApprovedSkipsUnapproved(t *testing.T) {
	pending := approvedProperty(2, 100, 0, 0)
	pending.Status = models.StatusPending
	engine := newEngine(approvedProperty(1, 100, 0, 0), pending)

	page, err := engine.ListApproved(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, uint(1), page.Items[0].ID)
}

func TestGetByIDHidesPending(t *testing.T) {
	pending := approvedProperty(7, 100, 0, 0)
	pending.Status = models.StatusPending
	engine := newEngine(pending)

	_, err := engine.GetByID(context.Background(), 7)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestFilterAmenitiesRequireAll(t *testing.T) {
	onlyWifi := approvedProperty(1, 100, 0, 0, "wifi")
	both := approvedProperty(2, 100, 0, 0, "wifi", "pool")
	engine := newEngine(onlyWifi, both)

	result, err := engine.Filter(context.Background(), Filter{Amenities: []string{"wifi", "pool"}})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(2), result.Items[0].ID)
}

func TestFilterPriceRange(t *testing.T) {
	engine := newEngine(
		approvedProperty(1, 50, 0, 0),
		approvedProperty(2, 150, 0, 0),
		approvedProperty(3, 250, 0, 0),
	)

	min, max := 100.0, 200.0
	result, err := engine.Filter(context.Background(), Filter{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(2), result.Items[0].ID)

	// inclusive bounds
	min, max = 150, 150
	result, err = engine.Filter(context.Background(), Filter{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestFilterGeoRadius(t *testing.T) {
	center := orb.Point{10, 20}
	atCenter := approvedProperty(1, 100, 10, 20)
	// ~0.045 degrees latitude is ~5km; put one property well outside
	farAway := approvedProperty(2, 100, 10, 21) // ~111km north
	engine := newEngine(farAway, atCenter)

	radius := 5.0
	result, err := engine.Filter(context.Background(), Filter{Center: &center, RadiusKm: &radius})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(1), result.Items[0].ID)
}

func TestFilterGeoSortsByDistance(t *testing.T) {
	center := orb.Point{4.9, 52.37}
	near := approvedProperty(1, 100, 4.91, 52.37)
	nearer := approvedProperty(2, 100, 4.9, 52.37)
	engine := newEngine(near, nearer)

	result, err := engine.Filter(context.Background(), Filter{Center: &center})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, uint(2), result.Items[0].ID)
	assert.Equal(t, uint(1), result.Items[1].ID)
}

func TestFilterGeoDefaultRadius(t *testing.T) {
	center := orb.Point{10, 20}
	// ~8km east of center, inside the 10km default
	inside := approvedProperty(1, 100, 10.076, 20)
	outside := approvedProperty(2, 100, 10, 21)
	engine := newEngine(inside, outside)

	result, err := engine.Filter(context.Background(), Filter{Center: &center})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(1), result.Items[0].ID)
}

func TestFilterEmptyReturnsAllApproved(t *testing.T) {
	engine := newEngine(
		approvedProperty(1, 100, 0, 0),
		approvedProperty(2, 200, 0, 0),
	)

	result, err := engine.Filter(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
}

func TestFilterValidation(t *testing.T) {
	engine := newEngine()

	negative := -1.0
	_, err := engine.Filter(context.Background(), Filter{PriceMin: &negative})
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	min, max := 200.0, 100.0
	_, err = engine.Filter(context.Background(), Filter{PriceMin: &min, PriceMax: &max})
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	zero := 0.0
	center := orb.Point{0, 0}
	_, err = engine.Filter(context.Background(), Filter{Center: &center, RadiusKm: &zero})
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	radius := 5.0
	_, err = engine.Filter(context.Background(), Filter{RadiusKm: &radius})
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

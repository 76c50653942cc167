package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgdorm/server/config"
	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/database"
	"dgdorm/server/internal/favorites"
	"dgdorm/server/internal/location"
	"dgdorm/server/internal/models"
	"dgdorm/server/internal/moderation"
	"dgdorm/server/internal/query"
)

const testSecret = "test-secret"

// fakeStore backs every engine with in-memory state so the full route
// chain can run without a database.
type fakeStore struct {
	properties map[uint]*models.Property
	users      map[uint]*models.User
	categories map[uint]*models.Category
	countries  []models.Country
	favorites  map[[2]uint]struct{}
	cascades   map[string]*models.BanCascade

	disableErr   error
	disableCalls int
	nextID       uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		properties: map[uint]*models.Property{},
		users:      map[uint]*models.User{},
		categories: map[uint]*models.Category{},
		favorites:  map[[2]uint]struct{}{},
		cascades:   map[string]*models.BanCascade{},
		nextID:     100,
	}
}

func (f *fakeStore) approved() []models.Property {
	var out []models.Property
	for _, p := range f.properties {
		if p.Status == models.StatusApproved {
			out = append(out, *p)
		}
	}
	return out
}

func (f *fakeStore) ListApproved(ctx context.Context, offset, limit int) ([]models.Property, error) {
	items := f.approved()
	if offset >= len(items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

func (f *fakeStore) CountApproved(ctx context.Context) (int64, error) {
	return int64(len(f.approved())), nil
}

func (f *fakeStore) ApprovedByID(ctx context.Context, id uint) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok || p.Status != models.StatusApproved {
		return nil, apperr.New(apperr.NotFound, "property not found or not approved")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) FilterApproved(ctx context.Context, filter database.PropertyFilter) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.approved() {
		if filter.Text != "" {
			text := strings.ToLower(p.Title + " " + p.Description)
			if !strings.Contains(text, strings.ToLower(filter.Text)) {
				continue
			}
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

func (f *fakeStore) PropertyByID(ctx context.Context, id uint) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "property not found")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) SetPropertyStatus(ctx context.Context, id uint, status models.PropertyStatus) error {
	p, ok := f.properties[id]
	if !ok {
		return apperr.New(apperr.NotFound, "property not found")
	}
	p.Status = status
	return nil
}

func (f *fakeStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) RecordOwnerBan(ctx context.Context, ownerID uint, cascadeID string) error {
	u, ok := f.users[ownerID]
	if !ok {
		return apperr.New(apperr.NotFound, "owner not found")
	}
	u.IsBanned = true
	f.cascades[cascadeID] = &models.BanCascade{
		ID:      cascadeID,
		OwnerID: ownerID,
		Status:  models.CascadePending,
	}
	return nil
}

func (f *fakeStore) DisableOwnerProperties(ctx context.Context, ownerID uint) (int64, error) {
	f.disableCalls++
	if f.disableErr != nil {
		return 0, f.disableErr
	}
	var disabled int64
	for _, p := range f.properties {
		if p.OwnerID == ownerID {
			p.IsAvailable = false
			disabled++
		}
	}
	return disabled, nil
}

func (f *fakeStore) CompleteCascade(ctx context.Context, cascadeID string, disabled int64) error {
	c, ok := f.cascades[cascadeID]
	if !ok {
		return apperr.New(apperr.NotFound, "cascade not found")
	}
	c.Status = models.CascadeComplete
	c.PropertiesDisabled = disabled
	return nil
}

func (f *fakeStore) MarkCascadeError(ctx context.Context, cascadeID string, lastError string) error {
	if c, ok := f.cascades[cascadeID]; ok {
		c.LastError = lastError
	}
	return nil
}

func (f *fakeStore) UserExists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeStore) PropertyExists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.properties[id]
	return ok, nil
}

func (f *fakeStore) FavoriteExists(ctx context.Context, userID, propertyID uint) (bool, error) {
	_, ok := f.favorites[[2]uint{userID, propertyID}]
	return ok, nil
}

func (f *fakeStore) AddFavorite(ctx context.Context, userID, propertyID uint) error {
	key := [2]uint{userID, propertyID}
	if _, ok := f.favorites[key]; ok {
		return apperr.New(apperr.Duplicate, "property already in favorites")
	}
	f.favorites[key] = struct{}{}
	return nil
}

func (f *fakeStore) FavoriteSummaries(ctx context.Context, userID uint) ([]database.FavoriteSummary, error) {
	var out []database.FavoriteSummary
	for key := range f.favorites {
		if key[0] != userID {
			continue
		}
		if p, ok := f.properties[key[1]]; ok {
			out = append(out, database.FavoriteSummary{
				PropertyID: p.ID,
				Title:      p.Title,
				Price:      p.Price,
			})
		}
	}
	return out, nil
}

func (f *fakeStore) SearchCountries(ctx context.Context, q string) ([]models.Country, error) {
	var out []models.Country
	for _, c := range f.countries {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
			continue
		}
		for _, city := range c.Cities {
			if strings.Contains(strings.ToLower(city.Name), q) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CreateProperty(ctx context.Context, p *models.Property) error {
	f.nextID++
	p.ID = f.nextID
	copied := *p
	f.properties[p.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	copied := *p
	f.properties[p.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteProperty(ctx context.Context, id uint) error {
	if _, ok := f.properties[id]; !ok {
		return apperr.New(apperr.NotFound, "property not found")
	}
	delete(f.properties, id)
	return nil
}

func (f *fakeStore) PropertiesByOwner(ctx context.Context, ownerID uint) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) PropertiesByStatus(ctx context.Context, status models.PropertyStatus) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) AllProperties(ctx context.Context) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "category not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeStore) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "category not found")
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) CreateCategory(ctx context.Context, c *models.Category) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return apperr.New(apperr.Duplicate, "category already exists")
		}
	}
	f.nextID++
	c.ID = f.nextID
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteCategory(ctx context.Context, id uint) error {
	if _, ok := f.categories[id]; !ok {
		return apperr.New(apperr.NotFound, "category not found")
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeStore) CountryByID(ctx context.Context, id uint) (*models.Country, error) {
	for _, c := range f.countries {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "country not found")
}

func (f *fakeStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	return f.countries, nil
}

func (f *fakeStore) CreateCountry(ctx context.Context, c *models.Country) error {
	f.nextID++
	c.ID = f.nextID
	f.countries = append(f.countries, *c)
	return nil
}

func (f *fakeStore) UpdateCountry(ctx context.Context, c *models.Country) error {
	for i := range f.countries {
		if f.countries[i].ID == c.ID {
			f.countries[i] = *c
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "country not found")
}

func (f *fakeStore) DeleteCountry(ctx context.Context, id uint) error {
	for i := range f.countries {
		if f.countries[i].ID == id {
			f.countries = append(f.countries[:i], f.countries[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "country not found")
}

func (f *fakeStore) CreateCity(ctx context.Context, city *models.City) error {
	for i := range f.countries {
		if f.countries[i].ID == city.CountryID {
			f.nextID++
			city.ID = f.nextID
			f.countries[i].Cities = append(f.countries[i].Cities, *city)
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "country not found")
}

func (f *fakeStore) CityByID(ctx context.Context, countryID, cityID uint) (*models.City, error) {
	for _, c := range f.countries {
		if c.ID != countryID {
			continue
		}
		for _, city := range c.Cities {
			if city.ID == cityID {
				return &city, nil
			}
		}
	}
	return nil, apperr.New(apperr.NotFound, "city not found")
}

func (f *fakeStore) UpdateCity(ctx context.Context, city *models.City) error {
	for i := range f.countries {
		if f.countries[i].ID != city.CountryID {
			continue
		}
		for j := range f.countries[i].Cities {
			if f.countries[i].Cities[j].ID == city.ID {
				f.countries[i].Cities[j] = *city
				return nil
			}
		}
	}
	return apperr.New(apperr.NotFound, "city not found")
}

func (f *fakeStore) DeleteCity(ctx context.Context, countryID, cityID uint) error {
	for i := range f.countries {
		if f.countries[i].ID != countryID {
			continue
		}
		cities := f.countries[i].Cities
		for j := range cities {
			if cities[j].ID == cityID {
				f.countries[i].Cities = append(cities[:j], cities[j+1:]...)
				return nil
			}
		}
	}
	return apperr.New(apperr.NotFound, "city not found")
}

func (f *fakeStore) UpdateUser(ctx context.Context, u *models.User) error {
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewHandler(
		store,
		query.NewEngine(store, logger),
		moderation.NewMachine(store, logger, 2, 0),
		favorites.NewManager(store, logger),
		location.NewService(store, logger),
		nil,
		logger,
	)

	cfg := &config.Config{
		JWTSecret:    testSecret,
		AllowOrigins: []string{"http://localhost:3000"},
	}
	router := gin.New()
	SetupRoutes(router, handler, cfg, nil)
	return router
}

func signToken(t *testing.T, userID uint, role models.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func approvedProperty(id, ownerID uint, price float64, lng, lat float64) *models.Property {
	return &models.Property{
		ID:          id,
		Title:       "Listing",
		Description: "A place",
		CategoryID:  1,
		OwnerID:     ownerID,
		Location:    models.NewGeoPoint(lng, lat),
		Address:     "somewhere",
		Price:       price,
		Status:      models.StatusApproved,
		IsAvailable: true,
	}
}

func TestGetPropertiesPagination(t *testing.T) {
	store := newFakeStore()
	for i := uint(1); i <= 3; i++ {
		store.properties[i] = approvedProperty(i, 9, 100, 4.9, 52.3)
	}
	router := newTestServer(t, store)

	w := doJSON(router, "GET", "/api/properties?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count      int `json:"count"`
		Pagination struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 3, body.Pagination.Total)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 2, body.Pagination.Pages)
}

func TestGetPropertyByIDHidesPending(t *testing.T) {
	store := newFakeStore()
	pending := approvedProperty(1, 9, 100, 4.9, 52.3)
	pending.Status = models.StatusPending
	store.properties[1] = pending
	router := newTestServer(t, store)

	w := doJSON(router, "GET", "/api/properties/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterPropertiesNormalizedShapes(t *testing.T) {
	store := newFakeStore()
	near := approvedProperty(1, 9, 900, 4.9041, 52.3676) // Amsterdam
	far := approvedProperty(2, 9, 900, 4.4777, 51.9244)  // Rotterdam
	store.properties[1] = near
	store.properties[2] = far
	router := newTestServer(t, store)

	// Price and location arrive as strings, the way form-fed clients
	// send them.
	body := map[string]interface{}{
		"price":    map[string]interface{}{"min": "500", "max": "1000"},
		"location": `{"lat":52.3676,"lng":4.9041,"radius":5}`,
	}
	w := doJSON(router, "POST", "/api/properties/filter", "", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data  []models.Property `json:"data"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(1), result.Data[0].ID)
}

func TestFilterPropertiesBadPrice(t *testing.T) {
	store := newFakeStore()
	router := newTestServer(t, store)

	body := map[string]interface{}{
		"price": map[string]interface{}{"min": "cheap"},
	}
	w := doJSON(router, "POST", "/api/properties/filter", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterPropertiesRadiusWithoutCenter(t *testing.T) {
	store := newFakeStore()
	router := newTestServer(t, store)

	body := map[string]interface{}{
		"location": map[string]interface{}{"radius": 5},
	}
	w := doJSON(router, "POST", "/api/properties/filter", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApprovePropertyRequiresAdmin(t *testing.T) {
	store := newFakeStore()
	pending := approvedProperty(1, 9, 100, 4.9, 52.3)
	pending.Status = models.StatusPending
	store.properties[1] = pending
	router := newTestServer(t, store)

	w := doJSON(router, "PUT", "/api/admin/properties/1/approve", signToken(t, 9, models.RoleOwner), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, "PUT", "/api/admin/properties/1/approve", signToken(t, 1, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusApproved, store.properties[1].Status)
}

func TestRejectAfterApprove(t *testing.T) {
	store := newFakeStore()
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	router := newTestServer(t, store)

	w := doJSON(router, "PUT", "/api/admin/properties/1/reject", signToken(t, 1, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusRejected, store.properties[1].Status)
}

func TestBanOwnerCascade(t *testing.T) {
	store := newFakeStore()
	store.users[9] = &models.User{ID: 9, Role: models.RoleOwner}
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	store.properties[2] = approvedProperty(2, 9, 200, 4.9, 52.3)
	router := newTestServer(t, store)

	w := doJSON(router, "PUT", "/api/admin/owners/9/ban", signToken(t, 1, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, store.users[9].IsBanned)
	assert.False(t, store.properties[1].IsAvailable)
	assert.False(t, store.properties[2].IsAvailable)
	// Statuses survive the cascade untouched.
	assert.Equal(t, models.StatusApproved, store.properties[1].Status)
}

func TestBanOwnerPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.users[9] = &models.User{ID: 9, Role: models.RoleOwner}
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	store.disableErr = errors.New("connection reset")
	router := newTestServer(t, store)

	w := doJSON(router, "PUT", "/api/admin/owners/9/ban", signToken(t, 1, models.RoleAdmin), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Code      string `json:"code"`
		CascadeID string `json:"cascade_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "partial_failure", body.Code)
	require.NotEmpty(t, body.CascadeID)

	// The ban stuck; the cascade record stays pending for reconciliation.
	assert.True(t, store.users[9].IsBanned)
	assert.True(t, store.properties[1].IsAvailable)
	assert.Equal(t, models.CascadePending, store.cascades[body.CascadeID].Status)
	assert.Equal(t, 2, store.disableCalls)
}

func TestBanNonOwner(t *testing.T) {
	store := newFakeStore()
	store.users[3] = &models.User{ID: 3, Role: models.RoleUser}
	router := newTestServer(t, store)

	w := doJSON(router, "PUT", "/api/admin/owners/3/ban", signToken(t, 1, models.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddFavoriteDuplicateConflicts(t *testing.T) {
	store := newFakeStore()
	store.users[3] = &models.User{ID: 3, Role: models.RoleUser}
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	router := newTestServer(t, store)

	token := signToken(t, 3, models.RoleUser)
	body := map[string]interface{}{"propertyId": 1}

	w := doJSON(router, "POST", "/api/users/3/favorites", token, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/users/3/favorites", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, store.favorites, 1)
}

func TestAddFavoriteSelfServiceOnly(t *testing.T) {
	store := newFakeStore()
	store.users[3] = &models.User{ID: 3, Role: models.RoleUser}
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	router := newTestServer(t, store)

	body := map[string]interface{}{"propertyId": 1}
	w := doJSON(router, "POST", "/api/users/3/favorites", signToken(t, 4, models.RoleUser), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins may act on a user's behalf.
	w = doJSON(router, "POST", "/api/users/3/favorites", signToken(t, 1, models.RoleAdmin), body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddFavoriteMissingPropertyID(t *testing.T) {
	store := newFakeStore()
	store.users[3] = &models.User{ID: 3, Role: models.RoleUser}
	router := newTestServer(t, store)

	w := doJSON(router, "POST", "/api/users/3/favorites", signToken(t, 3, models.RoleUser), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFavorites(t *testing.T) {
	store := newFakeStore()
	store.users[3] = &models.User{ID: 3, Role: models.RoleUser}
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	store.favorites[[2]uint{3, 1}] = struct{}{}
	router := newTestServer(t, store)

	w := doJSON(router, "GET", "/api/users/3/favorites", signToken(t, 3, models.RoleUser), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestGetCategoryByName(t *testing.T) {
	store := newFakeStore()
	store.categories[1] = &models.Category{ID: 1, Name: "Apartment"}
	router := newTestServer(t, store)

	token := signToken(t, 1, models.RoleAdmin)
	w := doJSON(router, "GET", "/api/admin/categories/name/Apartment", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.Equal(t, uint(1), category.ID)

	w = doJSON(router, "GET", "/api/admin/categories/name/Villa", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterPropertiesNegativeCategory(t *testing.T) {
	store := newFakeStore()
	store.properties[1] = approvedProperty(1, 9, 100, 4.9, 52.3)
	router := newTestServer(t, store)

	body := map[string]interface{}{"category": -1}
	w := doJSON(router, "POST", "/api/properties/filter", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchLocations(t *testing.T) {
	store := newFakeStore()
	lat, long := 52.1326, 5.2913
	store.countries = []models.Country{{
		Name: "Netherlands",
		Lat:  &lat,
		Long: &long,
		Cities: []models.City{
			{Name: "Amsterdam", Lat: 52.3676, Long: 4.9041},
		},
	}}
	router := newTestServer(t, store)

	w := doJSON(router, "GET", "/api/locations/search?q=dam", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success     bool `json:"success"`
		Suggestions []struct {
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Suggestions, 1)
	assert.Equal(t, "Amsterdam", body.Suggestions[0].Name)
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

type countryInput struct {
	Name *string  `json:"name"`
	Lat  *float64 `json:"lat"`
	Long *float64 `json:"long"`
}

type cityInput struct {
	Name *string  `json:"name"`
	Lat  *float64 `json:"lat"`
	Long *float64 `json:"long"`
}

// SearchCountries returns matching countries and matching cities as
// separate lists, each city annotated with its country name.
func (h *Handler) SearchCountries(c *gin.Context) {
	q := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if q == "" {
		q = strings.ToLower(strings.TrimSpace(c.Query("q")))
	}
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"countries": []models.Country{}, "cities": []gin.H{}})
		return
	}

	matched, err := h.db.SearchCountries(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	countries := []models.Country{}
	cities := []gin.H{}
	for _, country := range matched {
		if strings.Contains(strings.ToLower(country.Name), q) {
			countries = append(countries, country)
		}
		for _, city := range country.Cities {
			if strings.Contains(strings.ToLower(city.Name), q) {
				cities = append(cities, gin.H{
					"id":      city.ID,
					"name":    city.Name,
					"lat":     city.Lat,
					"long":    city.Long,
					"country": country.Name,
				})
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries, "cities": cities})
}

// ListCountries returns every country with its cities, for dropdowns.
func (h *Handler) ListCountries(c *gin.Context) {
	countries, err := h.db.ListCountries(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": countries, "count": len(countries)})
}

// GetCountryByID returns one country with its cities.
func (h *Handler) GetCountryByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	country, err := h.db.CountryByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// CreateCountry registers a new country. Names are unique.
func (h *Handler) CreateCountry(c *gin.Context) {
	var input countryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid country body", err))
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		h.respondError(c, apperr.New(apperr.Validation, "name is required"))
		return
	}

	country := &models.Country{
		Name: strings.TrimSpace(*input.Name),
		Lat:  input.Lat,
		Long: input.Long,
	}
	if err := h.db.CreateCountry(c.Request.Context(), country); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, country)
}

// UpdateCountry applies partial changes to a country.
func (h *Handler) UpdateCountry(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	country, err := h.db.CountryByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var input countryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid country body", err))
		return
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		country.Name = strings.TrimSpace(*input.Name)
	}
	if input.Lat != nil {
		country.Lat = input.Lat
	}
	if input.Long != nil {
		country.Long = input.Long
	}

	if err := h.db.UpdateCountry(c.Request.Context(), country); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// DeleteCountry removes a country; its cities go with it.
func (h *Handler) DeleteCountry(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.db.DeleteCountry(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Country deleted"})
}

// AddCity registers a city under a country.
func (h *Handler) AddCity(c *gin.Context) {
	countryID, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if _, err := h.db.CountryByID(c.Request.Context(), countryID); err != nil {
		h.respondError(c, err)
		return
	}

	var input cityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid city body", err))
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		h.respondError(c, apperr.New(apperr.Validation, "name is required"))
		return
	}
	if input.Lat == nil || input.Long == nil {
		h.respondError(c, apperr.New(apperr.Validation, "lat and long are required"))
		return
	}

	city := &models.City{
		CountryID: countryID,
		Name:      strings.TrimSpace(*input.Name),
		Lat:       *input.Lat,
		Long:      *input.Long,
	}
	if err := h.db.CreateCity(c.Request.Context(), city); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

// UpdateCity applies partial changes to a city within its country.
func (h *Handler) UpdateCity(c *gin.Context) {
	countryID, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	cityID, err := parseIDParam(c, "cityId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	city, err := h.db.CityByID(c.Request.Context(), countryID, cityID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var input cityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperr.Wrap(apperr.Validation, "invalid city body", err))
		return
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		city.Name = strings.TrimSpace(*input.Name)
	}
	if input.Lat != nil {
		city.Lat = *input.Lat
	}
	if input.Long != nil {
		city.Long = *input.Long
	}

	if err := h.db.UpdateCity(c.Request.Context(), city); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

// DeleteCity removes a city from its country.
func (h *Handler) DeleteCity(c *gin.Context) {
	countryID, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	cityID, err := parseIDParam(c, "cityId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.db.DeleteCity(c.Request.Context(), countryID, cityID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "City deleted"})
}

// Package location implements the country/city suggestion search.
package location

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"dgdorm/server/internal/models"
)

// Store is the slice of the persistent store the service needs.
type Store interface {
	SearchCountries(ctx context.Context, query string) ([]models.Country, error)
}

type Service struct {
	store  Store
	logger *logrus.Logger
}

func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Suggestion is a matched place tagged by type, carrying coordinates.
type Suggestion struct {
	Type    string   `json:"type"` // country or city
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat,omitempty"`
	Long    *float64 `json:"long,omitempty"`
	Country string   `json:"country,omitempty"`
}

// Search matches countries and their cities by case-insensitive substring
// and returns a deduplicated union. The dedup key is (name, type); the
// first occurrence wins. An empty query yields no suggestions.
func (s *Service) Search(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Suggestion{}, nil
	}

	countries, err := s.store.SearchCountries(ctx, query)
	if err != nil {
		return nil, err
	}

	type key struct {
		name string
		typ  string
	}
	seen := make(map[key]struct{})
	suggestions := []Suggestion{}

	add := func(sugg Suggestion) {
		k := key{name: sugg.Name, typ: sugg.Type}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		suggestions = append(suggestions, sugg)
	}

	for _, country := range countries {
		if strings.Contains(strings.ToLower(country.Name), query) {
			add(Suggestion{
				Type: "country",
				Name: country.Name,
				Lat:  country.Lat,
				Long: country.Long,
			})
		}
		for _, city := range country.Cities {
			if strings.Contains(strings.ToLower(city.Name), query) {
				lat, long := city.Lat, city.Long
				add(Suggestion{
					Type:    "city",
					Name:    city.Name,
					Lat:     &lat,
					Long:    &long,
					Country: country.Name,
				})
			}
		}
	}

	return suggestions, nil
}

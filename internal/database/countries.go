package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

func (d *Database) CreateCountry(ctx context.Context, country *models.Country) error {
	if err := d.db.WithContext(ctx).Create(country).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "23505") {
			return apperr.New(apperr.Duplicate, "country already exists")
		}
		return apperr.Wrap(apperr.Internal, "failed to create country", err)
	}
	return nil
}

func (d *Database) CountryByID(ctx context.Context, id uint) (*models.Country, error) {
	var country models.Country
	err := d.db.WithContext(ctx).Preload("Cities").First(&country, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "country not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load country", err)
	}
	return &country, nil
}

func (d *Database) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := d.db.WithContext(ctx).Preload("Cities").Order("name").Find(&countries).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list countries", err)
	}
	return countries, nil
}

func (d *Database) UpdateCountry(ctx context.Context, country *models.Country) error {
	if err := d.db.WithContext(ctx).Save(country).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "23505") {
			return apperr.New(apperr.Duplicate, "country already exists")
		}
		return apperr.Wrap(apperr.Internal, "failed to update country", err)
	}
	return nil
}

func (d *Database) DeleteCountry(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.Country{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete country", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "country not found")
	}
	return nil
}

func (d *Database) CreateCity(ctx context.Context, city *models.City) error {
	if err := d.db.WithContext(ctx).Create(city).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create city", err)
	}
	return nil
}

func (d *Database) CityByID(ctx context.Context, countryID, cityID uint) (*models.City, error) {
	var city models.City
	err := d.db.WithContext(ctx).
		Where("id = ? AND country_id = ?", cityID, countryID).
		First(&city).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "city not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load city", err)
	}
	return &city, nil
}

func (d *Database) UpdateCity(ctx context.Context, city *models.City) error {
	if err := d.db.WithContext(ctx).Save(city).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update city", err)
	}
	return nil
}

func (d *Database) DeleteCity(ctx context.Context, countryID, cityID uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND country_id = ?", cityID, countryID).
		Delete(&models.City{})
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete city", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "city not found")
	}
	return nil
}

// SearchCountries returns countries whose name, or any of whose city
// names, contains the query (case-insensitive). Cities come preloaded so
// the caller can do its own in-memory matching.
func (d *Database) SearchCountries(ctx context.Context, query string) ([]models.Country, error) {
	pattern := "%" + query + "%"
	var countries []models.Country
	err := d.db.WithContext(ctx).
		Preload("Cities").
		Where(`name ILIKE ? OR EXISTS (
			SELECT 1 FROM cities
			WHERE cities.country_id = countries.id AND cities.name ILIKE ?
		)`, pattern, pattern).
		Order("name").
		Find(&countries).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to search countries", err)
	}
	return countries, nil
}

// Package favorites maintains a user's bookmarked-property set.
package favorites

import (
	"context"

	"github.com/sirupsen/logrus"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/database"
)

// Store is the slice of the persistent store the manager needs.
type Store interface {
	UserExists(ctx context.Context, id uint) (bool, error)
	PropertyExists(ctx context.Context, id uint) (bool, error)
	FavoriteExists(ctx context.Context, userID, propertyID uint) (bool, error)
	AddFavorite(ctx context.Context, userID, propertyID uint) error
	FavoriteSummaries(ctx context.Context, userID uint) ([]database.FavoriteSummary, error)
}

type Manager struct {
	store  Store
	logger *logrus.Logger
}

func NewManager(store Store, logger *logrus.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Add bookmarks a property for a user. A repeat add fails with a
// Duplicate error rather than being silently ignored.
func (m *Manager) Add(ctx context.Context, userID, propertyID uint) error {
	exists, err := m.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.NotFound, "user not found")
	}

	exists, err = m.store.PropertyExists(ctx, propertyID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.NotFound, "property not found")
	}

	already, err := m.store.FavoriteExists(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if already {
		return apperr.New(apperr.Duplicate, "property already in favorites")
	}

	return m.store.AddFavorite(ctx, userID, propertyID)
}

// List resolves a user's bookmarks to summary projections. Favorites
// whose property no longer exists are omitted rather than failing the
// whole list.
func (m *Manager) List(ctx context.Context, userID uint) ([]database.FavoriteSummary, error) {
	exists, err := m.store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}

	summaries, err := m.store.FavoriteSummaries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []database.FavoriteSummary{}
	}
	return summaries, nil
}

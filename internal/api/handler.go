package api

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/favorites"
	"dgdorm/server/internal/location"
	"dgdorm/server/internal/models"
	"dgdorm/server/internal/moderation"
	"dgdorm/server/internal/query"
	"dgdorm/server/internal/uploads"
)

// Store is the slice of the persistent store the HTTP surface uses
// directly; list/filter reads and moderation go through their engines.
type Store interface {
	CreateProperty(ctx context.Context, property *models.Property) error
	PropertyByID(ctx context.Context, id uint) (*models.Property, error)
	UpdateProperty(ctx context.Context, property *models.Property) error
	DeleteProperty(ctx context.Context, id uint) error
	PropertiesByOwner(ctx context.Context, ownerID uint) ([]models.Property, error)
	PropertiesByStatus(ctx context.Context, status models.PropertyStatus) ([]models.Property, error)
	AllProperties(ctx context.Context) ([]models.Property, error)

	CategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	CountryByID(ctx context.Context, id uint) (*models.Country, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	CreateCountry(ctx context.Context, country *models.Country) error
	UpdateCountry(ctx context.Context, country *models.Country) error
	DeleteCountry(ctx context.Context, id uint) error
	CreateCity(ctx context.Context, city *models.City) error
	CityByID(ctx context.Context, countryID, cityID uint) (*models.City, error)
	UpdateCity(ctx context.Context, city *models.City) error
	DeleteCity(ctx context.Context, countryID, cityID uint) error
	SearchCountries(ctx context.Context, query string) ([]models.Country, error)

	UserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

type Handler struct {
	db         Store
	query      *query.Engine
	moderation *moderation.Machine
	favorites  *favorites.Manager
	locations  *location.Service
	uploads    *uploads.LocalStore
	logger     *logrus.Logger
}

func NewHandler(
	db Store,
	queryEngine *query.Engine,
	machine *moderation.Machine,
	favoritesManager *favorites.Manager,
	locationService *location.Service,
	uploadStore *uploads.LocalStore,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		db:         db,
		query:      queryEngine,
		moderation: machine,
		favorites:  favoritesManager,
		locations:  locationService,
		uploads:    uploadStore,
		logger:     logger,
	}
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Duplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates an error kind to its HTTP status. Internal
// errors are logged and masked; every other kind carries its message.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	message := err.Error()
	if kind == apperr.Internal {
		h.logger.WithError(err).Error("Unexpected failure")
		message = "Internal server error"
	}
	c.JSON(statusForKind(kind), gin.H{"error": message, "code": kind.String()})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Newf(apperr.Validation, "invalid %s", name)
	}
	return uint(id), nil
}

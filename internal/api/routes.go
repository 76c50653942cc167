package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"dgdorm/server/config"
	"dgdorm/server/internal/middleware"
)

// SetupRoutes wires the HTTP surface. Public reads need no token;
// favorites need authentication; listing mutation needs the owner role
// and moderation needs admin.
func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config, rdb *redis.Client) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/:id", handler.GetPropertyByID)
		api.POST("/properties/filter", handler.FilterProperties)

		api.GET("/categories", handler.ListCategories)
		api.GET("/categories/:id", handler.GetCategoryByID)

		api.GET("/countries", handler.ListCountries)
		api.GET("/countries/search", handler.SearchCountries)
		api.GET("/countries/:id", handler.GetCountryByID)

		api.GET("/locations/search", handler.SearchLocations)
	}

	api.POST("/properties",
		middleware.Authenticate(rdb, cfg.JWTSecret),
		middleware.RequireOwner(),
		handler.CreateProperty)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(rdb, cfg.JWTSecret))
	{
		authed.POST("/users/:id/favorites", handler.AddFavorite)
		authed.GET("/users/:id/favorites", handler.GetFavorites)

		authed.GET("/users/:id", handler.GetUserByID)
		authed.PUT("/users/:id", handler.UpdateUser)
	}

	owner := api.Group("/owner")
	owner.Use(middleware.Authenticate(rdb, cfg.JWTSecret), middleware.RequireOwner())
	{
		owner.GET("/properties", handler.GetOwnerProperties)
		owner.PUT("/properties/:id", handler.UpdateProperty)
		owner.DELETE("/properties/:id", handler.DeleteProperty)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Authenticate(rdb, cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/properties", handler.GetPropertiesByStatus)
		admin.GET("/all-properties", handler.GetAllProperties)
		admin.PUT("/properties/:id/approve", handler.ApproveProperty)
		admin.PUT("/properties/:id/reject", handler.RejectProperty)

		admin.PUT("/owners/:id/ban", handler.BanOwner)
		admin.GET("/owners", handler.GetAllOwners)

		admin.GET("/users", handler.GetAllUsers)
		admin.DELETE("/users/:id", handler.DeleteUser)

		admin.GET("/categories/name/:name", handler.GetCategoryByName)
		admin.POST("/categories", handler.CreateCategory)
		admin.PUT("/categories/:id", handler.UpdateCategory)
		admin.DELETE("/categories/:id", handler.DeleteCategory)

		admin.POST("/countries", handler.CreateCountry)
		admin.PUT("/countries/:id", handler.UpdateCountry)
		admin.DELETE("/countries/:id", handler.DeleteCountry)
		admin.POST("/countries/:id/cities", handler.AddCity)
		admin.PUT("/countries/:id/cities/:cityId", handler.UpdateCity)
		admin.DELETE("/countries/:id/cities/:cityId", handler.DeleteCity)
	}
}

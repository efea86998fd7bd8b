package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "city-weather/docs"
	"city-weather/internal/services/cities"
	"city-weather/pkg/logger"
)

type routes struct {
	service *cities.CityService
	l       *logger.Logger
}

// NewRouter registers the API. Fixed paths go first because the catalog routes
// capture any single path segment.
func NewRouter(
	app *fiber.App,
	cityService *cities.CityService,
	l *logger.Logger,
) {
	r := &routes{
		service: cityService,
		l:       l,
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/updateUserCities", r.handleUpdateUserCities)
	app.Get("/userCities", r.handleUserCities)
	app.Get("/localStorageCities", r.handleLocalStorageCities)
	app.Post("/addCity", r.handleAddCity)
	app.Get("/forecast/:cityName", r.handleForecast)

	app.Get("/:cityName", r.handleCatalogCity)
	app.Delete("/:cityName", r.handleDeleteCatalogCity)
}

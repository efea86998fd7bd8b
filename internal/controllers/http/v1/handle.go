package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"city-weather/internal/models"
)

var validate = validator.New()

// MessageResponse confirms an operation without payload.
type MessageResponse struct {
	Result  bool   `json:"result" example:"true"`
	Message string `json:"message" example:"All cities updated successfully"`
}

// CitiesResponse carries a user's tracked cities.
type CitiesResponse struct {
	Result bool                 `json:"result" example:"true"`
	Cities []models.CityWeather `json:"cities"`
}

// WeatherResponse carries one city's current weather.
type WeatherResponse struct {
	Result  bool               `json:"result" example:"true"`
	Weather models.CityWeather `json:"weather"`
}

// ForecastResponse carries the upstream forecast payload untouched.
type ForecastResponse struct {
	Result  bool            `json:"result" example:"true"`
	Weather json.RawMessage `json:"weather" swaggertype:"object"`
}

// CatalogResponse carries the catalog left after a delete.
type CatalogResponse struct {
	Result  bool                 `json:"result" example:"true"`
	Weather []models.CityWeather `json:"weather"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Result bool   `json:"result" example:"false"`
	Error  string `json:"error" example:"User not found"`
}

// locationRequest is the shared input of the lookup and add-city endpoints.
// Coordinates are json.Number so clients may send them as numbers or strings.
type locationRequest struct {
	Token    string      `json:"token" form:"token" query:"token"`
	CityName string      `json:"cityName" form:"cityName" query:"cityName"`
	Country  string      `json:"country" form:"country" query:"country"`
	Lat      json.Number `json:"lat" form:"lat" query:"lat" validate:"omitempty,latitude"`
	Lon      json.Number `json:"lon" form:"lon" query:"lon" validate:"omitempty,longitude"`
}

const invalidCoordinatesMessage = "Invalid lat/lon in request"

var errInvalidCoordinates = errors.New("invalid lat/lon in request")

func (req locationRequest) toLocation() (models.Location, error) {
	if err := validate.Struct(req); err != nil {
		return models.Location{}, errInvalidCoordinates
	}

	loc := models.Location{CityName: req.CityName, Country: req.Country}
	if req.Lat == "" || req.Lon == "" {
		return loc, nil
	}

	lat, err := req.Lat.Float64()
	if err != nil {
		return models.Location{}, errInvalidCoordinates
	}
	lon, err := req.Lon.Float64()
	if err != nil {
		return models.Location{}, errInvalidCoordinates
	}
	loc.Lat, loc.Lon = &lat, &lon

	return loc, nil
}

// HandleUpdateUserCities godoc
// @Summary Refresh all cities of a user
// @Description Re-fetches current weather for every tracked city. Cities whose refresh fails keep their previous values.
// @Tags Cities
// @Produce json
// @Param token query string true "User token"
// @Success 200 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /updateUserCities [get]
func (r *routes) handleUpdateUserCities(c *fiber.Ctx) error {
	token := c.Query("token")

	outcome, err := r.service.RefreshUserCities(c.UserContext(), token)
	if err != nil {
		return r.fail(c, err, "query")
	}

	if len(outcome.Failed) > 0 || len(outcome.Unmatched) > 0 {
		r.l.Warning("bulk refresh finished with skipped cities", map[string]any{
			"failed":    len(outcome.Failed),
			"unmatched": len(outcome.Unmatched),
		})
	}

	return c.JSON(MessageResponse{Result: true, Message: "All cities updated successfully"})
}

// HandleUserCities godoc
// @Summary List a user's cities
// @Tags Cities
// @Produce json
// @Param token query string true "User token"
// @Success 200 {object} CitiesResponse
// @Failure 500 {object} ErrorResponse
// @Router /userCities [get]
func (r *routes) handleUserCities(c *fiber.Ctx) error {
	list, err := r.service.UserCities(c.UserContext(), c.Query("token"))
	if err != nil {
		return r.fail(c, err, "query")
	}

	return c.JSON(CitiesResponse{Result: true, Cities: list})
}

// HandleLocalStorageCities godoc
// @Summary Current weather for a location
// @Description Looks up current weather by city name and country or by coordinates without storing it.
// @Tags Weather
// @Produce json
// @Param cityName query string false "City name"
// @Param country query string false "ISO country code"
// @Param lat query number false "Latitude" minimum(-90) maximum(90)
// @Param lon query number false "Longitude" minimum(-180) maximum(180)
// @Success 200 {object} WeatherResponse
// @Failure 500 {object} ErrorResponse
// @Router /localStorageCities [get]
func (r *routes) handleLocalStorageCities(c *fiber.Ctx) error {
	var req locationRequest
	if err := c.QueryParser(&req); err != nil {
		return c.JSON(ErrorResponse{Error: invalidCoordinatesMessage})
	}

	loc, err := req.toLocation()
	if err != nil {
		return c.JSON(ErrorResponse{Error: invalidCoordinatesMessage})
	}

	weather, err := r.service.LookupWeather(c.UserContext(), loc)
	if err != nil {
		return r.fail(c, err, "query")
	}

	return c.JSON(WeatherResponse{Result: true, Weather: weather})
}

// HandleAddCity godoc
// @Summary Add a city to a user's list
// @Description Fetches the city's weather and appends it unless the user already tracks it.
// @Tags Cities
// @Accept json
// @Produce json
// @Param request body locationRequest true "token plus cityName and country, or lat and lon"
// @Success 200 {object} CitiesResponse
// @Failure 500 {object} ErrorResponse
// @Router /addCity [post]
func (r *routes) handleAddCity(c *fiber.Ctx) error {
	var req locationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.JSON(ErrorResponse{Error: "Invalid request body"})
		}
	}
	if req.Token == "" {
		req.Token = c.Query("token")
	}

	loc, err := req.toLocation()
	if err != nil {
		return c.JSON(ErrorResponse{Error: invalidCoordinatesMessage})
	}

	list, err := r.service.AddCity(c.UserContext(), req.Token, loc)
	if err != nil {
		return r.fail(c, err, "body")
	}

	return c.JSON(CitiesResponse{Result: true, Cities: list})
}

// HandleForecast godoc
// @Summary Forecast for a city
// @Description Returns the upstream forecast payload as is.
// @Tags Weather
// @Produce json
// @Param cityName path string true "City name"
// @Success 200 {object} ForecastResponse
// @Failure 500 {object} ErrorResponse
// @Router /forecast/{cityName} [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	forecast, err := r.service.Forecast(c.UserContext(), c.Params("cityName"))
	if err != nil {
		return r.fail(c, err, "path")
	}

	return c.JSON(ForecastResponse{Result: true, Weather: forecast})
}

// HandleCatalogCity godoc
// @Summary Catalog city by name
// @Tags Catalog
// @Produce json
// @Param cityName path string true "City name, case-insensitive"
// @Success 200 {object} WeatherResponse
// @Failure 500 {object} ErrorResponse
// @Router /{cityName} [get]
func (r *routes) handleCatalogCity(c *fiber.Ctx) error {
	city, err := r.service.CatalogCity(c.UserContext(), c.Params("cityName"))
	if err != nil {
		return r.fail(c, err, "path")
	}

	return c.JSON(WeatherResponse{Result: true, Weather: city})
}

// HandleDeleteCatalogCity godoc
// @Summary Delete a catalog city by name
// @Description Deletes the first catalog city with that name, ignoring case, and returns the remaining catalog.
// @Tags Catalog
// @Produce json
// @Param cityName path string true "City name, case-insensitive"
// @Success 200 {object} CatalogResponse
// @Failure 500 {object} ErrorResponse
// @Router /{cityName} [delete]
func (r *routes) handleDeleteCatalogCity(c *fiber.Ctx) error {
	remaining, err := r.service.RemovePersisted(c.UserContext(), c.Params("cityName"))
	if err != nil {
		return r.fail(c, err, "path")
	}

	return c.JSON(CatalogResponse{Result: true, Weather: remaining})
}

// fail maps service errors onto the failure envelope. Known errors answer 200,
// anything else is logged and answers 500.
func (r *routes) fail(c *fiber.Ctx, err error, source string) error {
	var (
		notFound  *models.NotFoundError
		duplicate *models.DuplicateCityError
		missing   *models.MissingParametersError
		upstream  *models.UpstreamDataError
	)

	switch {
	case errors.As(err, &notFound):
		return c.JSON(ErrorResponse{Error: notFound.Error()})
	case errors.As(err, &duplicate):
		return c.JSON(ErrorResponse{Error: duplicate.Error()})
	case errors.As(err, &missing):
		return c.JSON(ErrorResponse{Error: "Missing cityName or lat/lon in request " + source})
	case errors.As(err, &upstream):
		r.l.Warning("upstream weather request failed", map[string]any{
			"path": c.Path(),
			"err":  err.Error(),
		})
		return c.JSON(ErrorResponse{Error: upstream.Message})
	}

	r.l.Error(err, map[string]any{
		"path":   c.Path(),
		"method": c.Method(),
	})

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal Server Error"})
}

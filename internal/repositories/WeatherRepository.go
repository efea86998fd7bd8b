package repositories

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"city-weather/config"
	"city-weather/internal/models"
	"city-weather/pkg/logger"
	"city-weather/pkg/observe"
)

// WeatherSource is the upstream weather API.
type WeatherSource interface {
	Name() string
	// FetchCurrent returns the normalized current weather for loc. It fails with
	// MissingParametersError before any network call when loc is incomplete.
	FetchCurrent(ctx context.Context, loc models.Location) (models.CityWeather, error)
	// FetchForecast returns the upstream forecast payload as is.
	FetchForecast(ctx context.Context, cityName string) (json.RawMessage, error)
}

// UserRepository persists user documents and the cities they own.
type UserRepository interface {
	FindByToken(ctx context.Context, token string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Tokens(ctx context.Context) ([]string, error)
}

// CatalogRepository is the standalone city collection addressed by name only.
type CatalogRepository interface {
	FindByName(ctx context.Context, cityName string) (models.CityWeather, error)
	DeleteByName(ctx context.Context, cityName string) (bool, error)
	All(ctx context.Context) ([]models.CityWeather, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func InitWeatherSource(cfg *config.Config, l *logger.Logger, metrics *observe.Metrics) (WeatherSource, error) {
	httpClient := &http.Client{Timeout: cfg.Weather.Timeout}

	return NewOpenWeatherMapRepository(cfg.Weather.APIKey, cfg.Weather.BaseURL, l, httpClient, metrics)
}

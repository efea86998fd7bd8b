package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"city-weather/internal/models"
	"city-weather/pkg/logger"
	"city-weather/pkg/observe"
)

const (
	OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"

	fetchFailedMessage = "An error occurred while fetching the weather data"
)

const (
	outcomeSuccess        = "success"
	outcomeUpstreamError  = "upstream_error"
	outcomeTransportError = "transport_error"
)

type OpenWeatherMapRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	metrics    *observe.Metrics
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(
	apiKey string,
	baseURL string,
	l *logger.Logger,
	httpClient HTTPClient,
	metrics *observe.Metrics,
) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = OpenWeatherMapBaseURL
	}

	return &OpenWeatherMapRepository{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		httpClient: httpClient,
		metrics:    metrics,
		l:          l,
	}, nil
}

func (o *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

func (o *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, loc models.Location) (models.CityWeather, error) {
	if err := loc.Validate(); err != nil {
		return models.CityWeather{}, err
	}

	params := url.Values{}
	if loc.ByName() {
		params.Set("q", loc.CityName+","+loc.Country)
	} else {
		params.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
	}

	o.l.Info("making openweathermap API request", map[string]any{
		"operation": "weather",
		"location":  loc.String(),
	})

	body, status, err := o.get(ctx, "weather", params)
	if err != nil {
		o.count("weather", outcomeTransportError)
		return models.CityWeather{}, err
	}

	var payload CurrentWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		o.count("weather", outcomeUpstreamError)
		return models.CityWeather{}, &models.UpstreamDataError{
			StatusCode: status,
			Message:    fetchFailedMessage,
			Err:        errors.Wrap(err, "failed to parse JSON response"),
		}
	}

	record, err := NormalizeCurrentWeather(payload)
	if err != nil {
		o.count("weather", outcomeUpstreamError)
		return models.CityWeather{}, err
	}

	o.count("weather", outcomeSuccess)

	return record, nil
}

// forecastHead holds the fields of a forecast answer needed to judge it.
type forecastHead struct {
	Cod     StatusCode      `json:"cod"`
	Message json.RawMessage `json:"message"`
}

func (o *OpenWeatherMapRepository) FetchForecast(ctx context.Context, cityName string) (json.RawMessage, error) {
	if strings.TrimSpace(cityName) == "" {
		return nil, &models.MissingParametersError{}
	}

	o.l.Info("making openweathermap API request", map[string]any{
		"operation": "forecast",
		"location":  cityName,
	})

	body, status, err := o.get(ctx, "forecast", url.Values{"q": {cityName}})
	if err != nil {
		o.count("forecast", outcomeTransportError)
		return nil, err
	}

	var head forecastHead
	if err := json.Unmarshal(body, &head); err != nil {
		o.count("forecast", outcomeUpstreamError)
		return nil, &models.UpstreamDataError{
			StatusCode: status,
			Message:    fetchFailedMessage,
			Err:        errors.Wrap(err, "failed to parse JSON response"),
		}
	}

	if !head.Cod.OK() {
		o.count("forecast", outcomeUpstreamError)
		return nil, &models.UpstreamDataError{
			StatusCode: int(head.Cod),
			Message:    upstreamMessage(head.Message, "Forecast unavailable"),
		}
	}

	o.count("forecast", outcomeSuccess)

	return json.RawMessage(body), nil
}

// get performs one request and returns the body whatever the HTTP status: the
// upstream reports failures inside the payload.
func (o *OpenWeatherMapRepository) get(ctx context.Context, endpoint string, params url.Values) ([]byte, int, error) {
	params.Set("appid", o.APIKey)
	params.Set("units", "metric")

	reqURL := fmt.Sprintf("%s/%s?%s", o.BaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, &models.UpstreamDataError{Message: fetchFailedMessage, Err: errors.Wrap(err, "failed to create request")}
	}

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	o.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, 0, &models.UpstreamDataError{Message: fetchFailedMessage, Err: errors.Wrap(err, "failed to do request")}
	}
	defer resp.Body.Close()

	o.l.Info("received openweathermap API response", map[string]any{
		"operation":  endpoint,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &models.UpstreamDataError{
			StatusCode: resp.StatusCode,
			Message:    fetchFailedMessage,
			Err:        errors.Wrap(err, "failed to read response body"),
		}
	}

	return body, resp.StatusCode, nil
}

func (o *OpenWeatherMapRepository) count(operation, outcome string) {
	o.metrics.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
}

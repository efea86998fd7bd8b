package repositories

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"city-weather/internal/models"
)

// StatusCode is the "cod" field of an OpenWeatherMap payload. Current weather answers carry it
// as a number on success and as a string on failure; forecasts always use a string.
type StatusCode int

func (c *StatusCode) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid cod %s: %w", data, err)
	}

	*c = StatusCode(n)
	return nil
}

func (c StatusCode) OK() bool {
	return int(c) == http.StatusOK
}

// CurrentWeatherPayload is the raw /weather answer. Optional blocks are pointers so that
// absence can be told apart from zero values.
type CurrentWeatherPayload struct {
	Cod      StatusCode          `json:"cod"`
	Message  json.RawMessage     `json:"message"`
	Name     string              `json:"name"`
	Timezone int64               `json:"timezone"`
	Coord    *coordBlock         `json:"coord"`
	Weather  []conditionBlock    `json:"weather"`
	Main     *mainBlock          `json:"main"`
	Wind     *windBlock          `json:"wind"`
	Clouds   *cloudsBlock        `json:"clouds"`
	Rain     *precipitationBlock `json:"rain"`
	Snow     *precipitationBlock `json:"snow"`
	Sys      *sysBlock           `json:"sys"`
}

type coordBlock struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type conditionBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  float64 `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

type cloudsBlock struct {
	All float64 `json:"all"`
}

type precipitationBlock struct {
	OneHour    float64 `json:"1h"`
	ThreeHours float64 `json:"3h"`
}

type sysBlock struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// lastHour is the 1h volume, or 0 when the block is absent.
func (p *precipitationBlock) lastHour() float64 {
	if p == nil {
		return 0
	}
	return p.OneHour
}

// NormalizeCurrentWeather maps a raw current-weather payload onto a CityWeather record.
// The country always comes from the payload: the upstream resolves and canonicalizes it.
func NormalizeCurrentWeather(p CurrentWeatherPayload) (models.CityWeather, error) {
	if !p.Cod.OK() {
		return models.CityWeather{}, &models.UpstreamDataError{
			StatusCode: int(p.Cod),
			Message:    upstreamMessage(p.Message, "Weather data unavailable"),
		}
	}

	if missing := p.missingFields(); len(missing) > 0 {
		return models.CityWeather{}, &models.UpstreamDataError{
			StatusCode: int(p.Cod),
			Message:    "Incomplete weather data",
			Err:        fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")),
		}
	}

	record := models.CityWeather{
		CityName:              p.Name,
		Country:               p.Sys.Country,
		Condition:             p.Weather[0].Main,
		Description:           p.Weather[0].Description,
		Icon:                  p.Weather[0].Icon,
		Temp:                  p.Main.Temp,
		FeelsLike:             p.Main.FeelsLike,
		TempMin:               p.Main.TempMin,
		TempMax:               p.Main.TempMax,
		Humidity:              p.Main.Humidity,
		RainLastHour:          p.Rain.lastHour(),
		SnowLastHour:          p.Snow.lastHour(),
		Sunrise:               p.Sys.Sunrise,
		Sunset:                p.Sys.Sunset,
		Latitude:              p.Coord.Lat,
		Longitude:             p.Coord.Lon,
		TimezoneOffsetSeconds: p.Timezone,
	}

	if p.Wind != nil {
		record.WindSpeed = p.Wind.Speed
	}
	if p.Clouds != nil {
		record.CloudsPercent = p.Clouds.All
	}

	return record, nil
}

func (p CurrentWeatherPayload) missingFields() []string {
	var missing []string

	if p.Name == "" {
		missing = append(missing, "name")
	}
	if len(p.Weather) == 0 {
		missing = append(missing, "weather")
	}
	if p.Main == nil {
		missing = append(missing, "main")
	}
	if p.Sys == nil || p.Sys.Country == "" {
		missing = append(missing, "sys.country")
	}
	if p.Coord == nil {
		missing = append(missing, "coord")
	}

	return missing
}

// upstreamMessage extracts the "message" field, which is a string on errors and a number
// on successful forecasts.
func upstreamMessage(raw json.RawMessage, fallback string) string {
	var msg string
	if len(raw) == 0 || json.Unmarshal(raw, &msg) != nil || msg == "" {
		return fallback
	}
	return msg
}

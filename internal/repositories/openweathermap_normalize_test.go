package repositories

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-weather/internal/models"
)

func decodePayload(t *testing.T, raw string) CurrentWeatherPayload {
	t.Helper()

	var p CurrentWeatherPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	return p
}

func TestStatusCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want StatusCode
		ok   bool
	}{
		{name: "number", raw: `{"cod": 200}`, want: 200, ok: true},
		{name: "string", raw: `{"cod": "200"}`, want: 200, ok: true},
		{name: "string error", raw: `{"cod": "404"}`, want: 404},
		{name: "absent", raw: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var head struct {
				Cod StatusCode `json:"cod"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &head))
			assert.Equal(t, tt.want, head.Cod)
			assert.Equal(t, tt.ok, head.Cod.OK())
		})
	}
}

func TestStatusCode_UnmarshalJSON_Invalid(t *testing.T) {
	var c StatusCode
	assert.Error(t, c.UnmarshalJSON([]byte(`"abc"`)))
}

func TestNormalizeCurrentWeather_FullPayload(t *testing.T) {
	record, err := NormalizeCurrentWeather(decodePayload(t, parisResponse))
	require.NoError(t, err)

	assert.Equal(t, models.CityWeather{
		CityName:              "Paris",
		Country:               "FR",
		Condition:             "Clouds",
		Description:           "broken clouds",
		Icon:                  "04d",
		Temp:                  15.2,
		FeelsLike:             14.6,
		TempMin:               13.9,
		TempMax:               16.1,
		Humidity:              72,
		WindSpeed:             4.1,
		CloudsPercent:         75,
		RainLastHour:          0.25,
		SnowLastHour:          0,
		Sunrise:               1729232400,
		Sunset:                1729270800,
		Latitude:              48.8534,
		Longitude:             2.3488,
		TimezoneOffsetSeconds: 7200,
	}, record)
}

func TestNormalizeCurrentWeather_PrecipitationDefaults(t *testing.T) {
	p := decodePayload(t, `{
		"cod": 200,
		"name": "Oslo",
		"coord": {"lat": 59.91, "lon": 10.75},
		"weather": [{"main": "Snow", "description": "light snow", "icon": "13n"}],
		"main": {"temp": -3.5, "feels_like": -7.9, "temp_min": -4, "temp_max": -3, "humidity": 86},
		"snow": {"1h": 0.6},
		"sys": {"country": "NO", "sunrise": 1, "sunset": 2},
		"timezone": 3600
	}`)

	record, err := NormalizeCurrentWeather(p)
	require.NoError(t, err)

	assert.Equal(t, 0.0, record.RainLastHour)
	assert.Equal(t, 0.6, record.SnowLastHour)
	assert.Equal(t, 0.0, record.WindSpeed)
	assert.Equal(t, 0.0, record.CloudsPercent)
}

func TestNormalizeCurrentWeather_OnlyThreeHourVolume(t *testing.T) {
	p := decodePayload(t, parisResponse)
	p.Rain = &precipitationBlock{ThreeHours: 2.5}

	record, err := NormalizeCurrentWeather(p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, record.RainLastHour)
}

func TestNormalizeCurrentWeather_UpstreamFailure(t *testing.T) {
	_, err := NormalizeCurrentWeather(decodePayload(t, `{"cod": "404", "message": "city not found"}`))

	var upstream *models.UpstreamDataError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 404, upstream.StatusCode)
	assert.Equal(t, "city not found", upstream.Message)
}

func TestNormalizeCurrentWeather_UpstreamFailureWithoutMessage(t *testing.T) {
	_, err := NormalizeCurrentWeather(decodePayload(t, `{"cod": "500"}`))

	var upstream *models.UpstreamDataError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Weather data unavailable", upstream.Message)
}

func TestNormalizeCurrentWeather_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *CurrentWeatherPayload)
	}{
		{name: "name", mutate: func(p *CurrentWeatherPayload) { p.Name = "" }},
		{name: "weather", mutate: func(p *CurrentWeatherPayload) { p.Weather = nil }},
		{name: "main", mutate: func(p *CurrentWeatherPayload) { p.Main = nil }},
		{name: "sys", mutate: func(p *CurrentWeatherPayload) { p.Sys = nil }},
		{name: "country", mutate: func(p *CurrentWeatherPayload) { p.Sys.Country = "" }},
		{name: "coord", mutate: func(p *CurrentWeatherPayload) { p.Coord = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodePayload(t, parisResponse)
			tt.mutate(&p)

			_, err := NormalizeCurrentWeather(p)

			var upstream *models.UpstreamDataError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, "Incomplete weather data", upstream.Message)
		})
	}
}

func TestUpstreamMessage(t *testing.T) {
	assert.Equal(t, "city not found", upstreamMessage(json.RawMessage(`"city not found"`), "fallback"))
	assert.Equal(t, "fallback", upstreamMessage(json.RawMessage(`0`), "fallback"))
	assert.Equal(t, "fallback", upstreamMessage(nil, "fallback"))
	assert.Equal(t, "fallback", upstreamMessage(json.RawMessage(`""`), "fallback"))
}

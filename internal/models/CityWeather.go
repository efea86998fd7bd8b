package models

import (
	"fmt"
	"strings"
)

// CityWeather is the stored snapshot of the current weather for one city.
// Field names on the wire and in the document store match the client's schema.
type CityWeather struct {
	CityName              string  `json:"cityName" bson:"cityName" example:"Paris"`
	Country               string  `json:"country" bson:"country" example:"FR"`
	Condition             string  `json:"main" bson:"main" example:"Clouds"`
	Description           string  `json:"description" bson:"description" example:"broken clouds"`
	Icon                  string  `json:"icon" bson:"icon" example:"04d"`
	Temp                  float64 `json:"temp" bson:"temp" example:"15.2"`
	FeelsLike             float64 `json:"feels_like" bson:"feels_like" example:"14.6"`
	TempMin               float64 `json:"tempMin" bson:"tempMin" example:"13.9"`
	TempMax               float64 `json:"tempMax" bson:"tempMax" example:"16.1"`
	Humidity              float64 `json:"humidity" bson:"humidity" example:"72"`
	WindSpeed             float64 `json:"wind" bson:"wind" example:"4.1"`
	CloudsPercent         float64 `json:"clouds" bson:"clouds" example:"75"`
	RainLastHour          float64 `json:"rain" bson:"rain" example:"0"`
	SnowLastHour          float64 `json:"snow" bson:"snow" example:"0"`
	Sunrise               int64   `json:"sunrise" bson:"sunrise" example:"1729232400"`
	Sunset                int64   `json:"sunset" bson:"sunset" example:"1729270800"`
	Latitude              float64 `json:"latitude" bson:"latitude" example:"48.8534"`
	Longitude             float64 `json:"longitude" bson:"longitude" example:"2.3488"`
	TimezoneOffsetSeconds int64   `json:"timezone" bson:"timezone" example:"7200"`
}

// Key returns the identity pair of the record.
func (c *CityWeather) Key() CityKey {
	return CityKey{CityName: c.CityName, Country: c.Country}
}

// ApplyWeather copies every weather field of src onto c, keeping c's identity pair.
func (c *CityWeather) ApplyWeather(src CityWeather) {
	key := c.Key()
	*c = src
	c.CityName, c.Country = key.CityName, key.Country
}

// CityKey identifies a city inside a user's list.
type CityKey struct {
	CityName string
	Country  string
}

func (k CityKey) String() string {
	return fmt.Sprintf("%s,%s", k.CityName, k.Country)
}

// EqualFold reports whether both keys name the same city, ignoring case.
func (k CityKey) EqualFold(other CityKey) bool {
	return strings.EqualFold(k.CityName, other.CityName) && strings.EqualFold(k.Country, other.Country)
}

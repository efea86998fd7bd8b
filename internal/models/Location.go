package models

import "fmt"

// Location selects a city either by name and country or by coordinates.
// Coordinates are pointers because 0 is a valid latitude and longitude.
type Location struct {
	CityName string
	Country  string
	Lat      *float64
	Lon      *float64
}

// ByName reports whether both the city name and the country are set.
func (l Location) ByName() bool {
	return l.CityName != "" && l.Country != ""
}

// ByCoordinates reports whether both coordinates are set.
func (l Location) ByCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Validate fails with MissingParametersError when neither pair is complete.
func (l Location) Validate() error {
	if l.ByName() || l.ByCoordinates() {
		return nil
	}
	return &MissingParametersError{}
}

func (l Location) String() string {
	switch {
	case l.ByName():
		return fmt.Sprintf("%s,%s", l.CityName, l.Country)
	case l.ByCoordinates():
		return fmt.Sprintf("lat: %.4f lon: %.4f", *l.Lat, *l.Lon)
	default:
		return "<empty location>"
	}
}

package cities

import "city-weather/internal/models"

// Exists reports whether list already tracks the city, comparing name and country
// without regard to case. The store has no uniqueness constraint, so every insert
// must check this first.
func Exists(list []models.CityWeather, cityName, country string) bool {
	return indexOf(list, cityName, country) >= 0
}

// indexOf returns the first case-insensitive match, or -1.
func indexOf(list []models.CityWeather, cityName, country string) int {
	key := models.CityKey{CityName: cityName, Country: country}
	for i := range list {
		if list[i].Key().EqualFold(key) {
			return i
		}
	}
	return -1
}

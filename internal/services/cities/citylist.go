package cities

import "city-weather/internal/models"

// FindMatching returns the user's record for the city, matched without regard to case.
func FindMatching(user *models.User, cityName, country string) (*models.CityWeather, bool) {
	i := indexOf(user.Cities, cityName, country)
	if i < 0 {
		return nil, false
	}
	return &user.Cities[i], true
}

// ApplyUpdate overwrites the weather fields of the record whose pair equals
// (cityName, country) exactly. It reports false, changing nothing, when no record matches.
func ApplyUpdate(user *models.User, cityName, country string, fields models.CityWeather) bool {
	for i := range user.Cities {
		if user.Cities[i].CityName == cityName && user.Cities[i].Country == country {
			user.Cities[i].ApplyWeather(fields)
			return true
		}
	}
	return false
}

// Append adds record at the end of the user's list unless the city is already tracked.
func Append(user *models.User, record models.CityWeather) error {
	if Exists(user.Cities, record.CityName, record.Country) {
		return &models.DuplicateCityError{CityName: record.CityName, Country: record.Country}
	}

	user.Cities = append(user.Cities, record)
	return nil
}

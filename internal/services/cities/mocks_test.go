package cities_test

import (
	"context"
	"sync"

	"github.com/goccy/go-json"

	"city-weather/internal/models"
)

// MockWeatherSource answers from a table keyed by "name,country". Unknown keys fail
// with an upstream error.
type MockWeatherSource struct {
	mu        sync.Mutex
	records   map[string]models.CityWeather
	failures  map[string]error
	forecast  json.RawMessage
	callCount int
}

func NewMockWeatherSource() *MockWeatherSource {
	return &MockWeatherSource{
		records:  make(map[string]models.CityWeather),
		failures: make(map[string]error),
	}
}

func (m *MockWeatherSource) Name() string {
	return "mock"
}

func (m *MockWeatherSource) FetchCurrent(ctx context.Context, loc models.Location) (models.CityWeather, error) {
	if err := loc.Validate(); err != nil {
		return models.CityWeather{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++

	if err, ok := m.failures[loc.String()]; ok {
		return models.CityWeather{}, err
	}
	if record, ok := m.records[loc.String()]; ok {
		return record, nil
	}

	return models.CityWeather{}, &models.UpstreamDataError{StatusCode: 404, Message: "city not found"}
}

func (m *MockWeatherSource) FetchForecast(ctx context.Context, cityName string) (json.RawMessage, error) {
	if cityName == "" {
		return nil, &models.MissingParametersError{}
	}
	return m.forecast, nil
}

func (m *MockWeatherSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MockUserRepository keeps users in memory and counts saves.
type MockUserRepository struct {
	mu        sync.Mutex
	users     map[string]*models.User
	saveErr   error
	saveCount int
}

func NewMockUserRepository(users ...*models.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.Token] = u
	}
	return m
}

func (m *MockUserRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[token]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	cp := *u
	cp.Cities = append([]models.CityWeather(nil), u.Cities...)
	return &cp, nil
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveCount++
	if m.saveErr != nil {
		return m.saveErr
	}

	cp := *user
	cp.Cities = append([]models.CityWeather(nil), user.Cities...)
	m.users[user.Token] = &cp
	return nil
}

func (m *MockUserRepository) Tokens(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tokens := make([]string, 0, len(m.users))
	for token := range m.users {
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (m *MockUserRepository) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCount
}

func (m *MockUserRepository) Stored(token string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[token]
}

// MockCatalogRepository is an in-memory catalog.
type MockCatalogRepository struct {
	cities []models.CityWeather
}

func (m *MockCatalogRepository) FindByName(ctx context.Context, cityName string) (models.CityWeather, error) {
	for _, c := range m.cities {
		if equalFold(c.CityName, cityName) {
			return c, nil
		}
	}
	return models.CityWeather{}, models.ErrCityNotFound
}

func (m *MockCatalogRepository) DeleteByName(ctx context.Context, cityName string) (bool, error) {
	for i, c := range m.cities {
		if equalFold(c.CityName, cityName) {
			m.cities = append(m.cities[:i], m.cities[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCatalogRepository) All(ctx context.Context) ([]models.CityWeather, error) {
	return append([]models.CityWeather{}, m.cities...), nil
}

func equalFold(a, b string) bool {
	return models.CityKey{CityName: a}.EqualFold(models.CityKey{CityName: b})
}

package cities_test

import (
	"context"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-weather/internal/models"
	"city-weather/internal/services/cities"
	"city-weather/pkg/logger"
	"city-weather/pkg/observe"
)

type serviceFixture struct {
	service *cities.CityService
	users   *MockUserRepository
	catalog *MockCatalogRepository
	source  *MockWeatherSource
	metrics *observe.Metrics
}

func newServiceFixture(users ...*models.User) *serviceFixture {
	f := &serviceFixture{
		users:   NewMockUserRepository(users...),
		catalog: &MockCatalogRepository{},
		source:  NewMockWeatherSource(),
		metrics: observe.NewMetricsForTesting(),
	}

	l := logger.NewNop()
	coordinator := cities.NewCoordinator(f.source, clockwork.NewFakeClock(), f.metrics, l)
	f.service = cities.NewCityService(f.users, f.catalog, f.source, coordinator, f.metrics, l)

	return f
}

func alice(list ...models.CityWeather) *models.User {
	return &models.User{Username: "alice", Token: "token-alice", Cities: list}
}

func TestCityService_RefreshUserCities(t *testing.T) {
	f := newServiceFixture(alice(
		models.CityWeather{CityName: "Paris", Country: "FR", Temp: 10},
		models.CityWeather{CityName: "Tokyo", Country: "JP", Temp: 12},
	))
	f.source.records["Paris,FR"] = models.CityWeather{CityName: "Paris", Country: "FR", Temp: 18}
	f.source.records["Tokyo,JP"] = models.CityWeather{CityName: "Tokyo", Country: "JP", Temp: 25}

	outcome, err := f.service.RefreshUserCities(context.Background(), "token-alice")
	require.NoError(t, err)

	assert.Len(t, outcome.Updated, 2)
	assert.Equal(t, 1, f.users.Saves())

	stored := f.users.Stored("token-alice")
	assert.Equal(t, 18.0, stored.Cities[0].Temp)
	assert.Equal(t, 25.0, stored.Cities[1].Temp)
}

func TestCityService_RefreshUserCities_FailedCitiesStillSaved(t *testing.T) {
	f := newServiceFixture(alice(
		models.CityWeather{CityName: "Paris", Country: "FR", Temp: 10},
		models.CityWeather{CityName: "Atlantis", Country: "XX", Temp: 12},
	))
	f.source.records["Paris,FR"] = models.CityWeather{CityName: "Paris", Country: "FR", Temp: 18}

	outcome, err := f.service.RefreshUserCities(context.Background(), "token-alice")
	require.NoError(t, err)

	assert.Len(t, outcome.Failed, 1)
	assert.Equal(t, 1, f.users.Saves())

	stored := f.users.Stored("token-alice")
	assert.Equal(t, 18.0, stored.Cities[0].Temp)
	assert.Equal(t, 12.0, stored.Cities[1].Temp)
}

func TestCityService_RefreshUserCities_UnknownUser(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.RefreshUserCities(context.Background(), "nobody")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Zero(t, f.users.Saves())
	assert.Zero(t, f.source.Calls())
}

func TestCityService_RefreshUserCities_SaveFailure(t *testing.T) {
	f := newServiceFixture(alice())
	f.users.saveErr = &models.InternalError{Op: "save user", Err: errors.New("connection reset")}

	_, err := f.service.RefreshUserCities(context.Background(), "token-alice")

	var internal *models.InternalError
	assert.True(t, errors.As(err, &internal))
}

func TestCityService_RefreshAllUsers(t *testing.T) {
	bob := &models.User{Username: "bob", Token: "token-bob", Cities: []models.CityWeather{{CityName: "Lima", Country: "PE"}}}
	f := newServiceFixture(alice(models.CityWeather{CityName: "Paris", Country: "FR"}), bob)
	f.source.records["Paris,FR"] = models.CityWeather{CityName: "Paris", Country: "FR", Temp: 18}
	f.source.records["Lima,PE"] = models.CityWeather{CityName: "Lima", Country: "PE", Temp: 22}

	require.NoError(t, f.service.RefreshAllUsers(context.Background()))

	assert.Equal(t, 2, f.users.Saves())
	assert.Equal(t, 18.0, f.users.Stored("token-alice").Cities[0].Temp)
	assert.Equal(t, 22.0, f.users.Stored("token-bob").Cities[0].Temp)
}

func TestCityService_UserCities(t *testing.T) {
	f := newServiceFixture(alice(models.CityWeather{CityName: "Paris", Country: "FR"}))

	list, err := f.service.UserCities(context.Background(), "token-alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.service.UserCities(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestCityService_UserCities_EmptyListIsNotNil(t *testing.T) {
	f := newServiceFixture(alice())

	list, err := f.service.UserCities(context.Background(), "token-alice")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCityService_LookupWeather(t *testing.T) {
	f := newServiceFixture()
	f.source.records["Paris,FR"] = models.CityWeather{CityName: "Paris", Country: "FR", Temp: 18}

	record, err := f.service.LookupWeather(context.Background(), models.Location{CityName: "Paris", Country: "FR"})
	require.NoError(t, err)
	assert.Equal(t, 18.0, record.Temp)
}

func TestCityService_AddCity(t *testing.T) {
	f := newServiceFixture(alice(models.CityWeather{CityName: "Paris", Country: "FR"}))
	f.source.records["Tokyo,JP"] = models.CityWeather{CityName: "Tokyo", Country: "JP", Temp: 25}

	list, err := f.service.AddCity(context.Background(), "token-alice", models.Location{CityName: "Tokyo", Country: "JP"})
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "Tokyo", list[1].CityName)
	assert.Equal(t, 1, f.users.Saves())
	assert.Len(t, f.users.Stored("token-alice").Cities, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CitiesAdded))
}

func TestCityService_AddCity_ByCoordinates(t *testing.T) {
	f := newServiceFixture(alice())
	lat, lon := 35.6895, 139.6917
	loc := models.Location{Lat: &lat, Lon: &lon}
	f.source.records[loc.String()] = models.CityWeather{CityName: "Tokyo", Country: "JP"}

	list, err := f.service.AddCity(context.Background(), "token-alice", loc)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "JP", list[0].Country)
}

func TestCityService_AddCity_MissingParameters(t *testing.T) {
	f := newServiceFixture(alice())

	_, err := f.service.AddCity(context.Background(), "token-alice", models.Location{CityName: "Tokyo"})

	var missing *models.MissingParametersError
	assert.True(t, errors.As(err, &missing))
	assert.Zero(t, f.source.Calls())
	assert.Zero(t, f.users.Saves())
}

func TestCityService_AddCity_UnknownUser(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.AddCity(context.Background(), "nobody", models.Location{CityName: "Tokyo", Country: "JP"})

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Zero(t, f.source.Calls())
}

func TestCityService_AddCity_Duplicate(t *testing.T) {
	f := newServiceFixture(alice(models.CityWeather{CityName: "Tokyo", Country: "JP", Temp: 12}))
	f.source.records["tokyo,jp"] = models.CityWeather{CityName: "Tokyo", Country: "JP", Temp: 25}

	_, err := f.service.AddCity(context.Background(), "token-alice", models.Location{CityName: "tokyo", Country: "jp"})

	var duplicate *models.DuplicateCityError
	require.True(t, errors.As(err, &duplicate))
	assert.Zero(t, f.users.Saves())
	assert.Len(t, f.users.Stored("token-alice").Cities, 1)
}

func TestCityService_AddCity_UpstreamFailure(t *testing.T) {
	f := newServiceFixture(alice())

	_, err := f.service.AddCity(context.Background(), "token-alice", models.Location{CityName: "Atlantis", Country: "XX"})

	var upstream *models.UpstreamDataError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, f.users.Saves())
}

func TestCityService_AddCity_ConcurrentSameCity(t *testing.T) {
	f := newServiceFixture(alice())
	f.source.records["Tokyo,JP"] = models.CityWeather{CityName: "Tokyo", Country: "JP"}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.AddCity(context.Background(), "token-alice", models.Location{CityName: "Tokyo", Country: "JP"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.users.Stored("token-alice").Cities, 1)
}

func TestCityService_Forecast(t *testing.T) {
	f := newServiceFixture()
	f.source.forecast = json.RawMessage(`{"cod":"200","list":[]}`)

	forecast, err := f.service.Forecast(context.Background(), "Paris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cod":"200","list":[]}`, string(forecast))
}

func TestCityService_CatalogCity(t *testing.T) {
	f := newServiceFixture()
	f.catalog.cities = []models.CityWeather{{CityName: "Berlin", Country: "DE"}}

	city, err := f.service.CatalogCity(context.Background(), "BERLIN")
	require.NoError(t, err)
	assert.Equal(t, "DE", city.Country)

	_, err = f.service.CatalogCity(context.Background(), "Paris")
	assert.ErrorIs(t, err, models.ErrCityNotFound)
}

func TestCityService_RemovePersisted(t *testing.T) {
	f := newServiceFixture()
	f.catalog.cities = []models.CityWeather{
		{CityName: "Berlin", Country: "DE"},
		{CityName: "Paris", Country: "FR"},
	}

	remaining, err := f.service.RemovePersisted(context.Background(), "paris")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Berlin", remaining[0].CityName)
}

func TestCityService_RemovePersisted_NotFound(t *testing.T) {
	f := newServiceFixture()
	f.catalog.cities = []models.CityWeather{{CityName: "Berlin", Country: "DE"}}

	_, err := f.service.RemovePersisted(context.Background(), "Paris")

	assert.ErrorIs(t, err, models.ErrCityNotFound)
	assert.Len(t, f.catalog.cities, 1)
}

package cities

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"city-weather/internal/models"
	"city-weather/internal/repositories"
	"city-weather/pkg/logger"
	"city-weather/pkg/observe"
)

// CityService implements the use cases behind the HTTP surface.
type CityService struct {
	users       repositories.UserRepository
	catalog     repositories.CatalogRepository
	source      repositories.WeatherSource
	coordinator *Coordinator
	locks       *userLocks
	metrics     *observe.Metrics
	l           *logger.Logger
}

func NewCityService(
	users repositories.UserRepository,
	catalog repositories.CatalogRepository,
	source repositories.WeatherSource,
	coordinator *Coordinator,
	metrics *observe.Metrics,
	l *logger.Logger,
) *CityService {
	return &CityService{
		users:       users,
		catalog:     catalog,
		source:      source,
		coordinator: coordinator,
		locks:       newUserLocks(),
		metrics:     metrics,
		l:           l,
	}
}

// RefreshUserCities refreshes every city tracked by the token's user and saves the user
// once. Per-city failures only show up in the outcome and the logs.
func (s *CityService) RefreshUserCities(ctx context.Context, token string) (RefreshOutcome, error) {
	unlock := s.locks.lock(token)
	defer unlock()

	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		return RefreshOutcome{}, err
	}

	outcome := s.coordinator.RefreshAll(ctx, user)

	if err := s.users.Save(ctx, user); err != nil {
		return outcome, errors.Wrap(err, "save refreshed cities")
	}

	return outcome, nil
}

// RefreshAllUsers runs RefreshUserCities for every known user, one user at a time.
func (s *CityService) RefreshAllUsers(ctx context.Context) error {
	tokens, err := s.users.Tokens(ctx)
	if err != nil {
		return errors.Wrap(err, "list users")
	}

	refreshed := 0
	for _, token := range tokens {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := s.RefreshUserCities(ctx, token); err != nil {
			s.l.Error(err, map[string]any{"step": "refresh all users"})
			continue
		}
		refreshed++
	}

	s.l.Info("refreshed all users", map[string]any{
		"users":     len(tokens),
		"refreshed": refreshed,
	})

	return nil
}

func (s *CityService) UserCities(ctx context.Context, token string) ([]models.CityWeather, error) {
	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if user.Cities == nil {
		return []models.CityWeather{}, nil
	}

	return user.Cities, nil
}

// LookupWeather returns the current weather for loc without storing anything.
func (s *CityService) LookupWeather(ctx context.Context, loc models.Location) (models.CityWeather, error) {
	return s.source.FetchCurrent(ctx, loc)
}

// AddCity fetches the city's weather and appends it to the user's list. The parameters are
// checked before the user is loaded so that an incomplete request never reaches upstream.
func (s *CityService) AddCity(ctx context.Context, token string, loc models.Location) ([]models.CityWeather, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(token)
	defer unlock()

	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	record, err := s.source.FetchCurrent(ctx, loc)
	if err != nil {
		return nil, err
	}

	if err := Append(user, record); err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, errors.Wrap(err, "save added city")
	}

	s.metrics.CitiesAdded.Inc()
	s.l.Info("city added", map[string]any{
		"user": user.Username,
		"city": record.Key().String(),
	})

	return user.Cities, nil
}

func (s *CityService) Forecast(ctx context.Context, cityName string) (json.RawMessage, error) {
	return s.source.FetchForecast(ctx, cityName)
}

// CatalogCity looks a city up in the catalog by name, ignoring case.
func (s *CityService) CatalogCity(ctx context.Context, cityName string) (models.CityWeather, error) {
	return s.catalog.FindByName(ctx, cityName)
}

// RemovePersisted deletes a catalog city by name, ignoring case, and returns what is left.
func (s *CityService) RemovePersisted(ctx context.Context, cityName string) ([]models.CityWeather, error) {
	deleted, err := s.catalog.DeleteByName(ctx, cityName)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, models.ErrCityNotFound
	}

	return s.catalog.All(ctx)
}

// userLocks serializes mutations of one user document within this process.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu      sync.Mutex
	waiters int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

func (u *userLocks) lock(token string) (unlock func()) {
	u.mu.Lock()
	ul, ok := u.locks[token]
	if !ok {
		ul = &userLock{}
		u.locks[token] = ul
	}
	ul.waiters++
	u.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		u.mu.Lock()
		ul.waiters--
		if ul.waiters == 0 {
			delete(u.locks, token)
		}
		u.mu.Unlock()
	}
}

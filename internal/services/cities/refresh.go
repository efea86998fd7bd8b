package cities

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"city-weather/internal/models"
	"city-weather/internal/repositories"
	"city-weather/pkg/logger"
	"city-weather/pkg/observe"
)

// RefreshOutcome reports what a bulk refresh did to each tracked city. Cities that failed
// upstream or matched no record keep their previous values.
type RefreshOutcome struct {
	Requested int
	Updated   []models.CityKey
	Failed    []models.CityKey
	Unmatched []models.CityKey
}

// Coordinator refreshes every city of a user concurrently.
type Coordinator struct {
	source  repositories.WeatherSource
	clock   clockwork.Clock
	metrics *observe.Metrics
	l       *logger.Logger
}

func NewCoordinator(source repositories.WeatherSource, clock clockwork.Clock, metrics *observe.Metrics, l *logger.Logger) *Coordinator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Coordinator{
		source:  source,
		clock:   clock,
		metrics: metrics,
		l:       l,
	}
}

type refreshResult struct {
	requested models.CityKey
	record    models.CityWeather
	err       error
}

// RefreshAll fetches current weather for every city in user.Cities and applies each
// successful answer to the record whose pair equals the answer's resolved pair. The user
// is modified in memory only; persisting it is the caller's job. A failing city never
// aborts the others.
func (c *Coordinator) RefreshAll(ctx context.Context, user *models.User) RefreshOutcome {
	start := c.clock.Now()

	keys := make([]models.CityKey, len(user.Cities))
	for i := range user.Cities {
		keys[i] = user.Cities[i].Key()
	}

	c.l.Info("starting bulk refresh", map[string]any{
		"user":   user.Username,
		"cities": len(keys),
	})

	// Every goroutine owns one slot, so results need no lock.
	results := make([]refreshResult, len(keys))

	wg := sync.WaitGroup{}
	for i, key := range keys {
		wg.Add(1)

		go func(i int, key models.CityKey) {
			defer wg.Done()

			record, err := c.source.FetchCurrent(ctx, models.Location{CityName: key.CityName, Country: key.Country})
			results[i] = refreshResult{requested: key, record: record, err: err}
		}(i, key)
	}

	wg.Wait()

	outcome := c.apply(user, results)

	c.metrics.RefreshDuration.Observe(c.clock.Since(start).Seconds())

	c.l.Info("completed bulk refresh", map[string]any{
		"user":      user.Username,
		"requested": outcome.Requested,
		"updated":   len(outcome.Updated),
		"failed":    len(outcome.Failed),
		"unmatched": len(outcome.Unmatched),
	})

	return outcome
}

// apply reduces the gathered results onto the user's list, keyed by identity pair and
// never by position.
func (c *Coordinator) apply(user *models.User, results []refreshResult) RefreshOutcome {
	outcome := RefreshOutcome{Requested: len(results)}

	for _, r := range results {
		if r.err != nil {
			c.l.Warning("failed to refresh city", map[string]any{
				"city": r.requested.String(),
				"err":  r.err.Error(),
			})
			outcome.Failed = append(outcome.Failed, r.requested)
			c.metrics.RefreshCities.WithLabelValues("failed").Inc()
			continue
		}

		resolved := r.record.Key()
		if !ApplyUpdate(user, resolved.CityName, resolved.Country, r.record) {
			c.l.Warning("no matching city for refreshed weather", map[string]any{
				"requested": r.requested.String(),
				"resolved":  resolved.String(),
			})
			outcome.Unmatched = append(outcome.Unmatched, r.requested)
			c.metrics.RefreshCities.WithLabelValues("unmatched").Inc()
			continue
		}

		outcome.Updated = append(outcome.Updated, resolved)
		c.metrics.RefreshCities.WithLabelValues("updated").Inc()
	}

	return outcome
}

package collector

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// DefaultFetchTimeout bounds each individual fetch
const DefaultFetchTimeout = 10 * time.Second

// Result holds the outcome of one collection cycle. Each record is only
// meaningful when its error is nil.
type Result struct {
	Observation    models.Observation
	ObservationErr error
	Forecast       models.Forecast
	ForecastErr    error
}

// OK reports whether both fetches succeeded
func (r Result) OK() bool {
	return r.ObservationErr == nil && r.ForecastErr == nil
}

// Option configures a DataCollector
type Option func(*DataCollector)

// WithFetchTimeout changes the timeout for each API request
func WithFetchTimeout(timeout time.Duration) Option {
	return func(dc *DataCollector) {
		dc.fetchTimeout = timeout
	}
}

// WithLogger sets the logger used to report fetch failures
func WithLogger(logger logrus.FieldLogger) Option {
	return func(dc *DataCollector) {
		dc.logger = logger
	}
}

// DataCollector runs the observation and forecast fetches of a cycle
type DataCollector struct {
	observations datasource.ObservationSource
	forecasts    datasource.ForecastSource
	fetchTimeout time.Duration
	logger       logrus.FieldLogger
}

// New creates a new data collector with the provided sources
func New(observations datasource.ObservationSource, forecasts datasource.ForecastSource, opts ...Option) *DataCollector {
	dc := &DataCollector{
		observations: observations,
		forecasts:    forecasts,
		fetchTimeout: DefaultFetchTimeout,
		logger:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(dc)
	}
	return dc
}

// Collect fetches current conditions and the forecast for location
// concurrently. Each fetch decodes into its own record, so a failure of one
// never affects the other. Collect returns once both have finished.
func (dc *DataCollector) Collect(ctx context.Context, location models.Location) Result {
	var (
		wg     sync.WaitGroup
		result Result
	)

	wg.Add(2)
	go func() {
		defer wg.Done()

		fetchCtx, cancel := context.WithTimeout(ctx, dc.fetchTimeout)
		defer cancel()

		result.Observation, result.ObservationErr = dc.observations.FetchObservation(fetchCtx, location)
		if result.ObservationErr != nil {
			dc.logger.WithError(result.ObservationErr).WithField("location", location.Geocode()).Warn("observation fetch failed")
		}
	}()
	go func() {
		defer wg.Done()

		fetchCtx, cancel := context.WithTimeout(ctx, dc.fetchTimeout)
		defer cancel()

		result.Forecast, result.ForecastErr = dc.forecasts.FetchForecast(fetchCtx, location)
		if result.ForecastErr != nil {
			dc.logger.WithError(result.ForecastErr).WithField("location", location.Geocode()).Warn("forecast fetch failed")
		}
	}()
	wg.Wait()

	return result
}

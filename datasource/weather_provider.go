package datasource

import (
	"context"

	"weather-dashboard/models"
)

// ObservationSource is an interface for services that can fetch current conditions
type ObservationSource interface {
	// FetchObservation fetches and decodes current conditions for a location
	FetchObservation(ctx context.Context, location models.Location) (models.Observation, error)
}

// ForecastSource is an interface for services that can fetch daily forecasts
type ForecastSource interface {
	// FetchForecast fetches and decodes the daily forecast for a location
	FetchForecast(ctx context.Context, location models.Location) (models.Forecast, error)
}

// LocationSearcher is an interface for services that can resolve a free-text
// query into candidate locations
type LocationSearcher interface {
	// SearchLocations returns the candidates for query, best match first
	SearchLocations(ctx context.Context, query string) ([]models.Location, error)
}

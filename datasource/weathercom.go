package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"weather-dashboard/decoder"
	"weather-dashboard/models"
)

// Defaults for the weather.com API
const (
	DefaultBaseURL  = "https://api.weather.com"
	DefaultUnits    = "m"
	DefaultLanguage = "en-AU"
)

// Resource paths relative to the base URL
const (
	observationPath    = "/v2/turbo/vt1observation"
	dailyForecastPath  = "/v2/turbo/vt1dailyForecast"
	locationSearchPath = "/v3/location/search"
)

// WeatherComProvider implements ObservationSource, ForecastSource and
// LocationSearcher against the weather.com API
type WeatherComProvider struct {
	fetcher  Fetcher
	baseURL  string
	apiKey   string
	units    string
	language string
}

// NewWeatherComProvider creates a new weather.com provider. Empty units or
// language select the defaults.
func NewWeatherComProvider(fetcher Fetcher, apiKey, units, language string) *WeatherComProvider {
	if units == "" {
		units = DefaultUnits
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &WeatherComProvider{
		fetcher:  fetcher,
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		units:    units,
		language: language,
	}
}

// SetBaseURL changes the API root, e.g. to point at a test server
func (p *WeatherComProvider) SetBaseURL(baseURL string) {
	p.baseURL = strings.TrimRight(baseURL, "/")
}

// Name returns the provider name
func (p *WeatherComProvider) Name() string {
	return "weather.com"
}

// ObservationURL builds the current-conditions request URL for a location
func (p *WeatherComProvider) ObservationURL(location models.Location) string {
	return p.turboURL(observationPath, location)
}

// ForecastURL builds the daily forecast request URL for a location
func (p *WeatherComProvider) ForecastURL(location models.Location) string {
	return p.turboURL(dailyForecastPath, location)
}

// SearchURL builds the location search request URL for a query
func (p *WeatherComProvider) SearchURL(query string) string {
	params := url.Values{}
	params.Add("apiKey", p.apiKey)
	params.Add("query", query)
	params.Add("locationType", "city")
	params.Add("language", p.language)
	params.Add("format", "json")

	return p.baseURL + locationSearchPath + "?" + params.Encode()
}

func (p *WeatherComProvider) turboURL(path string, location models.Location) string {
	params := url.Values{}
	params.Add("apiKey", p.apiKey)
	params.Add("geocode", location.Geocode())
	params.Add("units", p.units)
	params.Add("language", p.language)
	params.Add("format", "json")

	return p.baseURL + path + "?" + params.Encode()
}

// FetchObservation fetches current conditions for a location
func (p *WeatherComProvider) FetchObservation(ctx context.Context, location models.Location) (models.Observation, error) {
	body, err := p.fetcher.Fetch(ctx, p.ObservationURL(location))
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to fetch observation: %w", err)
	}

	observation, err := decoder.DecodeObservation(body)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to parse observation: %w", err)
	}

	return observation, nil
}

// FetchForecast fetches the daily forecast for a location
func (p *WeatherComProvider) FetchForecast(ctx context.Context, location models.Location) (models.Forecast, error) {
	body, err := p.fetcher.Fetch(ctx, p.ForecastURL(location))
	if err != nil {
		return models.Forecast{}, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	forecast, err := decoder.DecodeForecast(body)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("failed to parse forecast: %w", err)
	}

	return forecast, nil
}

// SearchLocations resolves a free-text query into candidate locations
func (p *WeatherComProvider) SearchLocations(ctx context.Context, query string) ([]models.Location, error) {
	body, err := p.fetcher.Fetch(ctx, p.SearchURL(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}

	locations, err := decoder.DecodeLocations(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location search: %w", err)
	}

	return locations, nil
}

// Ensure WeatherComProvider implements every source interface
var (
	_ ObservationSource = (*WeatherComProvider)(nil)
	_ ForecastSource    = (*WeatherComProvider)(nil)
	_ LocationSearcher  = (*WeatherComProvider)(nil)
)

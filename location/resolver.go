package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// ErrNoMatches is returned when a location search yields no candidates
var ErrNoMatches = errors.New("no matching locations")

// ErrInvalidGeocode is returned for coordinates that are not "lat,lon"
var ErrInvalidGeocode = errors.New("invalid geocode")

// Resolver turns the configured location into the Location used for the session
type Resolver interface {
	Resolve(ctx context.Context) (models.Location, error)
}

// Picker chooses one location out of the search candidates
type Picker interface {
	Pick(ctx context.Context, query string, candidates []models.Location) (models.Location, error)
}

// PickerFunc adapts a function to the Picker interface
type PickerFunc func(ctx context.Context, query string, candidates []models.Location) (models.Location, error)

// Pick calls f
func (f PickerFunc) Pick(ctx context.Context, query string, candidates []models.Location) (models.Location, error) {
	return f(ctx, query, candidates)
}

// FirstMatch picks the provider's best match
var FirstMatch = PickerFunc(func(_ context.Context, _ string, candidates []models.Location) (models.Location, error) {
	if len(candidates) == 0 {
		return models.Location{}, ErrNoMatches
	}
	return candidates[0], nil
})

// StaticLocation resolves fixed "lat,lon" coordinates
type StaticLocation struct {
	Geocode string
}

// Resolve parses the coordinates
func (s StaticLocation) Resolve(context.Context) (models.Location, error) {
	return ParseGeocode(s.Geocode)
}

// ParseGeocode parses "lat,lon" and checks both values are in range
func ParseGeocode(geocode string) (models.Location, error) {
	latText, lonText, ok := strings.Cut(geocode, ",")
	if !ok {
		return models.Location{}, fmt.Errorf("%w %q: expected lat,lon", ErrInvalidGeocode, geocode)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w %q: bad latitude", ErrInvalidGeocode, geocode)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w %q: bad longitude", ErrInvalidGeocode, geocode)
	}

	if lat < -90 || lat > 90 {
		return models.Location{}, fmt.Errorf("%w %q: latitude out of range", ErrInvalidGeocode, geocode)
	}
	if lon < -180 || lon > 180 {
		return models.Location{}, fmt.Errorf("%w %q: longitude out of range", ErrInvalidGeocode, geocode)
	}

	return models.Location{Latitude: lat, Longitude: lon}, nil
}

// SearchedLocation resolves a free-text query through the provider's
// location search and lets the Picker choose among the candidates.
type SearchedLocation struct {
	Query    string
	Searcher datasource.LocationSearcher
	Picker   Picker
}

// Resolve runs the search and returns the picked candidate
func (s SearchedLocation) Resolve(ctx context.Context) (models.Location, error) {
	candidates, err := s.Searcher.SearchLocations(ctx, s.Query)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to search for %q: %w", s.Query, err)
	}
	if len(candidates) == 0 {
		return models.Location{}, fmt.Errorf("%w for %q", ErrNoMatches, s.Query)
	}

	picker := s.Picker
	if picker == nil {
		picker = FirstMatch
	}

	return picker.Pick(ctx, s.Query, candidates)
}

var (
	_ Resolver = StaticLocation{}
	_ Resolver = SearchedLocation{}
)

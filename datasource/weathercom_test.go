package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/decoder"
	"weather-dashboard/models"
)

var melbourne = models.Location{Latitude: -37.8136, Longitude: 144.9631}

func TestWeatherComURLs(t *testing.T) {
	p := NewWeatherComProvider(nil, "key123", "", "")

	for _, raw := range []string{p.ObservationURL(melbourne), p.ForecastURL(melbourne)} {
		u, err := url.Parse(raw)
		require.NoError(t, err)

		q := u.Query()
		assert.Equal(t, "api.weather.com", u.Host)
		assert.Equal(t, "key123", q.Get("apiKey"))
		assert.Equal(t, "-37.8136,144.9631", q.Get("geocode"))
		assert.Equal(t, DefaultUnits, q.Get("units"))
		assert.Equal(t, DefaultLanguage, q.Get("language"))
		assert.Equal(t, "json", q.Get("format"))
	}

	obs, _ := url.Parse(p.ObservationURL(melbourne))
	fc, _ := url.Parse(p.ForecastURL(melbourne))
	assert.Equal(t, "/v2/turbo/vt1observation", obs.Path)
	assert.Equal(t, "/v2/turbo/vt1dailyForecast", fc.Path)

	search, err := url.Parse(p.SearchURL("Melbourne, VIC"))
	require.NoError(t, err)
	assert.Equal(t, "/v3/location/search", search.Path)
	assert.Equal(t, "Melbourne, VIC", search.Query().Get("query"))
	assert.Equal(t, "key123", search.Query().Get("apiKey"))
}

func TestWeatherComCustomUnitsAndLanguage(t *testing.T) {
	p := NewWeatherComProvider(nil, "k", "e", "en-US")
	u, err := url.Parse(p.ObservationURL(melbourne))
	require.NoError(t, err)
	assert.Equal(t, "e", u.Query().Get("units"))
	assert.Equal(t, "en-US", u.Query().Get("language"))
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *WeatherComProvider {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	p := NewWeatherComProvider(NewHTTPFetcher(time.Second, 0), "key", "", "")
	p.SetBaseURL(ts.URL + "/")
	return p
}

func TestWeatherComFetchObservation(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/turbo/vt1observation", r.URL.Path)
		w.Write([]byte(`{"vt1observation": {"phrase":"Sunny","temperature":22,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`))
	})

	o, err := p.FetchObservation(context.Background(), melbourne)
	require.NoError(t, err)
	assert.True(t, o.Ready)
	assert.Equal(t, "Sunny", o.Phrase)
}

func TestWeatherComFetchObservationDecodeError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"vt1observation": {"phrase": 3}}`))
	})

	o, err := p.FetchObservation(context.Background(), melbourne)
	assert.ErrorIs(t, err, decoder.ErrWrongType)
	assert.False(t, o.Ready)
}

func TestWeatherComFetchForecastTransportError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := p.FetchForecast(context.Background(), melbourne)
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
}

func TestWeatherComFetchForecast(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/turbo/vt1dailyForecast", r.URL.Path)
		w.Write([]byte(`{"vt1dailyForecast": {
			"validDate": ["2024-05-01T07:00:00+1000"], "dayOfWeek": ["Wednesday"],
			"sunrise": ["2024-05-01T07:05:00+1000"], "sunset": ["2024-05-01T17:35:00+1000"],
			"moonIcon": ["WNC"], "moonPhrase": ["Waning Crescent"],
			"moonrise": ["2024-05-01T02:00:00+1000"], "moonset": ["2024-05-01T14:00:00+1000"],
			"day": {"dayPartName": ["Today"], "precipPct": [20], "precipAmt": [0.4], "precipType": ["rain"], "temperature": [18], "uvIndex": [3], "uvDescription": ["Moderate"], "icon": [30], "iconExtended": [3000], "phrase": ["Partly Cloudy"], "narrative": ["Partly cloudy."], "cloudPct": [50], "windDirCompass": ["N"], "windDirDegrees": [0], "windSpeed": [15], "humidityPct": [60], "qualifier": [null], "snowRange": [""], "thunderEnum": [0], "thunderEnumPhrase": ["No thunder"]},
			"night": {"dayPartName": ["Tonight"], "precipPct": [10], "precipAmt": [0], "precipType": ["rain"], "temperature": [9], "uvIndex": [0], "uvDescription": ["Low"], "icon": [29], "iconExtended": [2900], "phrase": ["Clear"], "narrative": ["Clear skies."], "cloudPct": [5], "windDirCompass": ["NW"], "windDirDegrees": [315], "windSpeed": [10], "humidityPct": [80], "qualifier": [null], "snowRange": [""], "thunderEnum": [0], "thunderEnumPhrase": ["No thunder"]}
		}}`))
	})

	f, err := p.FetchForecast(context.Background(), melbourne)
	require.NoError(t, err)
	require.Len(t, f.Days, 1)
	assert.Equal(t, "Wednesday", f.Days[0].Weekday)
	assert.Equal(t, "Partly cloudy.", f.Days[0].Day.Narrative)
	assert.Equal(t, "Tonight", f.Days[0].Night.DayPartName)
}

func TestWeatherComSearchLocations(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/location/search", r.URL.Path)
		assert.Equal(t, "Hobart", r.URL.Query().Get("query"))
		w.Write([]byte(`{"location": {"address": ["Hobart, Tasmania, Australia"], "latitude": [-42.88], "longitude": [147.33], "placeId": ["h1"], "ianaTimeZone": ["Australia/Hobart"]}}`))
	})

	locations, err := p.SearchLocations(context.Background(), "Hobart")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Australia/Hobart", locations[0].TimeZone)
}

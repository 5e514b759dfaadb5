package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/models"
)

const sunnyObservation = `{"vt1observation": {"phrase":"Sunny","temperature":22,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`

func TestDecodeObservationSample(t *testing.T) {
	o, err := DecodeObservation([]byte(sunnyObservation))
	require.NoError(t, err)

	assert.Equal(t, models.Observation{
		Ready:                true,
		Phrase:               "Sunny",
		Temperature:          22,
		TemperatureMax:       25,
		FeelsLike:            21,
		Humidity:             40,
		WindDirectionCompass: "NE",
		WindDirectionDegrees: 45,
		WindSpeed:            10,
		Visibility:           10.0,
		UVIndex:              6,
		UVDescription:        "High",
	}, o)
	assert.True(t, o.IsReady())
}

func TestDecodeObservationReadsMinimumWhenPresent(t *testing.T) {
	payload := `{"vt1observation": {"phrase":"Cloudy","temperature":12,"temperatureMinSince7am":8,"temperatureMaxSince7am":14,"feelsLike":10,"humidity":80,"windDirCompass":"SW","windDirDegrees":225,"windSpeed":20,"visibility":9,"uvIndex":1,"uvDescription":"Low"}}`

	o, err := DecodeObservation([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 8, o.TemperatureMin)
	assert.Equal(t, 9.0, o.Visibility)
}

func TestDecodeObservationRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		target  error
	}{
		{"truncated", sunnyObservation[:len(sunnyObservation)/2], ErrMalformed},
		{"empty", ``, ErrMalformed},
		{"trailing data", sunnyObservation + `{}`, ErrMalformed},
		{"top level array", `[1,2,3]`, ErrWrongType},
		{"missing object", `{"other": {}}`, ErrMissing},
		{"object is a string", `{"vt1observation": "Sunny"}`, ErrWrongType},
		{"missing phrase", `{"vt1observation": {"temperature":22,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`, ErrMissing},
		{"missing uv description", `{"vt1observation": {"phrase":"Sunny","temperature":22,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6}}`, ErrMissing},
		{"temperature is a string", `{"vt1observation": {"phrase":"Sunny","temperature":"22","temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`, ErrWrongType},
		{"temperature has a fraction", `{"vt1observation": {"phrase":"Sunny","temperature":22.5,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`, ErrWrongType},
		{"phrase is null", `{"vt1observation": {"phrase":null,"temperature":22,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`, ErrWrongType},
		{"visibility is a string", `{"vt1observation": {"phrase":"Sunny","temperature":22,"temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":"10 km","uvIndex":6,"uvDescription":"High"}}`, ErrWrongType},
		{"minimum has the wrong type", `{"vt1observation": {"phrase":"Sunny","temperature":22,"temperatureMinSince7am":"cold","temperatureMaxSince7am":25,"feelsLike":21,"humidity":40,"windDirCompass":"NE","windDirDegrees":45,"windSpeed":10,"visibility":10.0,"uvIndex":6,"uvDescription":"High"}}`, ErrWrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := DecodeObservation([]byte(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))

			// Nothing partially decoded leaks out
			assert.Equal(t, models.Observation{}, o)
		})
	}
}

func TestDecodeObservationErrorNamesThePath(t *testing.T) {
	_, err := DecodeObservation([]byte(`{"vt1observation": {"phrase":"Sunny"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vt1observation.temperature")
}

func TestDecodeObservationKeepsPreviousOnFailure(t *testing.T) {
	current, err := DecodeObservation([]byte(sunnyObservation))
	require.NoError(t, err)
	before := current

	// The caller's pattern: only replace on success
	if o, err := DecodeObservation([]byte(`{"vt1observation": {"phrase":"Rain","temperature":"x"}}`)); err == nil {
		current = o
	}

	assert.Equal(t, before, current)
}

package models

// Observation represents a single current-conditions reading for a location.
// A zero Observation is "not ready" and must not be displayed as data.
type Observation struct {
	Ready                bool    `json:"ready"`
	Phrase               string  `json:"phrase"`      // provider-controlled condition text
	Temperature          int     `json:"temperature"` // in the requested units
	TemperatureMin       int     `json:"temperatureMin"`
	TemperatureMax       int     `json:"temperatureMax"`
	FeelsLike            int     `json:"feelsLike"`
	Humidity             int     `json:"humidity"` // percentage
	WindDirectionCompass string  `json:"windDirectionCompass"`
	WindDirectionDegrees int     `json:"windDirectionDegrees"`
	WindSpeed            int     `json:"windSpeed"`
	Visibility           float64 `json:"visibility"`
	UVIndex              int     `json:"uvIndex"`
	UVDescription        string  `json:"uvDescription"`
}

// IsReady reports whether the observation holds decoded data
func (o Observation) IsReady() bool {
	return o.Ready
}

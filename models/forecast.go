package models

import (
	"time"
)

// MaxForecastDays is the fixed capacity of a Forecast
const MaxForecastDays = 14

// ForecastPart represents one half-day (day or night) of a forecast day
type ForecastPart struct {
	Valid                bool    `json:"valid"`
	DayPartName          string  `json:"dayPartName"`
	PrecipChance         int     `json:"precipChance"` // percentage
	PrecipAmount         float64 `json:"precipAmount"`
	PrecipType           string  `json:"precipType"`
	Temperature          int     `json:"temperature"`
	UVIndex              int     `json:"uvIndex"`
	UVDescription        string  `json:"uvDescription"`
	Icon                 int     `json:"icon"`
	IconExtended         int     `json:"iconExtended"`
	Phrase               string  `json:"phrase"`
	Narrative            string  `json:"narrative"`
	Cloud                int     `json:"cloud"` // percentage
	WindDirectionCompass string  `json:"windDirectionCompass"`
	WindDirectionDegrees int     `json:"windDirectionDegrees"`
	WindSpeed            int     `json:"windSpeed"`
	Humidity             int     `json:"humidity"`
	Qualifier            string  `json:"qualifier"`
	SnowRange            string  `json:"snowRange"`
	ThunderEnum          int     `json:"thunderEnum"`
	ThunderEnumPhrase    string  `json:"thunderEnumPhrase"`
}

// ForecastDay represents one calendar day of the forecast window
type ForecastDay struct {
	ValidDate  time.Time    `json:"validDate"`
	Sunrise    time.Time    `json:"sunrise"`
	Sunset     time.Time    `json:"sunset"`
	Moonrise   time.Time    `json:"moonrise"`
	Moonset    time.Time    `json:"moonset"`
	MoonIcon   string       `json:"moonIcon"`
	MoonPhrase string       `json:"moonPhrase"`
	Weekday    string       `json:"weekday"`
	SnowQPF    float64      `json:"snowQpf"`
	Day        ForecastPart `json:"day"`
	Night      ForecastPart `json:"night"`
}

// Ready reports whether the day carries a validity date
func (d ForecastDay) Ready() bool {
	return !d.ValidDate.IsZero()
}

// Forecast represents up to MaxForecastDays days of day/night predictions.
// Days[0] is today. Days is never grown after decoding.
type Forecast struct {
	ID   string        `json:"id"`
	Days []ForecastDay `json:"days"`
}

// Day returns day i, or the zero ForecastDay when i is outside the decoded range
func (f Forecast) Day(i int) ForecastDay {
	if i < 0 || i >= len(f.Days) {
		return ForecastDay{}
	}
	return f.Days[i]
}

// Ready reports whether at least one day holds decoded data
func (f Forecast) Ready() bool {
	for _, d := range f.Days {
		if d.Ready() {
			return true
		}
	}
	return false
}

package decoder

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/models"
)

var (
	forecastDayKeys  = []string{"validDate", "dayOfWeek", "sunrise", "sunset", "moonIcon", "moonPhrase", "moonrise", "moonset", "snowQpf"}
	forecastPartKeys = []string{"dayPartName", "precipPct", "precipAmt", "precipType", "temperature", "uvIndex", "uvDescription", "icon", "iconExtended", "phrase", "narrative", "cloudPct", "windDirCompass", "windDirDegrees", "windSpeed", "humidityPct", "qualifier", "snowRange", "thunderEnum", "thunderEnumPhrase"}
)

// forecastPayload builds a well-formed vt1dailyForecast document with n days
func forecastPayload(n int) map[string]any {
	daily := map[string]any{}
	for _, key := range forecastDayKeys {
		daily[key] = dayValues(key, n)
	}
	daily["day"] = partPayload("Today", n)
	daily["night"] = partPayload("Tonight", n)

	return map[string]any{
		"id":               "-37.81,144.96",
		"vt1dailyForecast": daily,
	}
}

func dayValues(key string, n int) []any {
	values := make([]any, n)
	start := time.Date(2024, time.May, 1, 7, 0, 0, 0, time.FixedZone("", 10*3600))
	for i := range values {
		day := start.AddDate(0, 0, i)
		switch key {
		case "validDate", "sunrise", "sunset", "moonrise", "moonset":
			values[i] = day.Format(TimeLayout)
		case "snowQpf":
			values[i] = 0.5 * float64(i)
		default:
			values[i] = fmt.Sprintf("%s-%d", key, i)
		}
	}
	return values
}

func partPayload(name string, n int) map[string]any {
	part := map[string]any{}
	for _, key := range forecastPartKeys {
		values := make([]any, n)
		for i := range values {
			switch key {
			case "dayPartName", "precipType", "uvDescription", "phrase", "narrative", "windDirCompass", "qualifier", "snowRange", "thunderEnumPhrase":
				values[i] = fmt.Sprintf("%s %s %d", name, key, i)
			case "precipAmt":
				values[i] = 1.5 + float64(i)
			default:
				values[i] = 10 + i
			}
		}
		part[key] = values
	}
	return part
}

func daily(p map[string]any) map[string]any {
	return p["vt1dailyForecast"].(map[string]any)
}

func part(p map[string]any, name string) map[string]any {
	return daily(p)[name].(map[string]any)
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestDecodeForecastFullPayload(t *testing.T) {
	f, err := DecodeForecast(encode(t, forecastPayload(models.MaxForecastDays)))
	require.NoError(t, err)

	assert.Equal(t, "-37.81,144.96", f.ID)
	require.Len(t, f.Days, models.MaxForecastDays)
	assert.True(t, f.Ready())

	d := f.Day(3)
	assert.Equal(t, "dayOfWeek-3", d.Weekday)
	assert.Equal(t, "moonPhrase-3", d.MoonPhrase)
	assert.Equal(t, 1.5, d.SnowQPF)
	assert.Equal(t, time.Date(2024, time.May, 4, 7, 0, 0, 0, time.UTC).Add(-10*time.Hour).Unix(), d.ValidDate.Unix())
	_, offset := d.Sunrise.Zone()
	assert.Equal(t, 10*3600, offset)

	assert.True(t, d.Day.Valid)
	assert.Equal(t, "Today dayPartName 3", d.Day.DayPartName)
	assert.Equal(t, 13, d.Day.PrecipChance)
	assert.Equal(t, 4.5, d.Day.PrecipAmount)
	assert.Equal(t, "Today narrative 3", d.Day.Narrative)
	assert.Equal(t, 13, d.Day.ThunderEnum)
	assert.Equal(t, "Tonight windDirCompass 3", d.Night.WindDirectionCompass)
	assert.Equal(t, 13, d.Night.Humidity)
}

func TestDecodeForecastPositionalTransposition(t *testing.T) {
	p := forecastPayload(models.MaxForecastDays)
	daily(p)["moonPhrase"] = dayValues("moonPhrase", 5)
	part(p, "night")["temperature"] = []any{1, 2, 3, 4, 5, 6, 7, 8, 9}

	f, err := DecodeForecast(encode(t, p))
	require.NoError(t, err)

	for i := 0; i < models.MaxForecastDays; i++ {
		d := f.Day(i)
		if i < 5 {
			assert.Equal(t, fmt.Sprintf("moonPhrase-%d", i), d.MoonPhrase, "day %d", i)
		} else {
			assert.Empty(t, d.MoonPhrase, "day %d", i)
		}
		if i < 9 {
			assert.Equal(t, i+1, d.Night.Temperature, "day %d", i)
		} else {
			assert.Zero(t, d.Night.Temperature, "day %d", i)
		}
		// Other fields are not shifted by the shorter arrays
		assert.Equal(t, fmt.Sprintf("dayOfWeek-%d", i), d.Weekday, "day %d", i)
	}
}

func TestDecodeForecastSizesDaysByLongestArray(t *testing.T) {
	f, err := DecodeForecast(encode(t, forecastPayload(3)))
	require.NoError(t, err)

	assert.Len(t, f.Days, 3)
	for i := 3; i < models.MaxForecastDays; i++ {
		assert.Equal(t, models.ForecastDay{}, f.Day(i))
	}
	assert.Equal(t, models.ForecastDay{}, f.Day(-1))
}

func TestDecodeForecastSkipsWrongElements(t *testing.T) {
	p := forecastPayload(models.MaxForecastDays)
	phrases := dayValues("moonPhrase", models.MaxForecastDays)
	phrases[4] = 42
	daily(p)["moonPhrase"] = phrases

	dates := dayValues("validDate", models.MaxForecastDays)
	dates[2] = "yesterday"
	daily(p)["validDate"] = dates

	names := make([]any, models.MaxForecastDays)
	for i := range names {
		names[i] = fmt.Sprintf("Day %d", i)
	}
	names[0] = nil
	part(p, "day")["dayPartName"] = names

	precip := make([]any, models.MaxForecastDays)
	for i := range precip {
		precip[i] = 20
	}
	precip[7] = "lots"
	part(p, "day")["precipPct"] = precip

	f, err := DecodeForecast(encode(t, p))
	require.NoError(t, err)

	for i := 0; i < models.MaxForecastDays; i++ {
		d := f.Day(i)
		if i == 4 {
			assert.Empty(t, d.MoonPhrase)
		} else {
			assert.Equal(t, fmt.Sprintf("moonPhrase-%d", i), d.MoonPhrase)
		}
		assert.Equal(t, i != 2, d.Ready(), "day %d", i)
		assert.Equal(t, i != 0, d.Day.Valid, "day %d", i)
		if i == 7 {
			assert.Zero(t, d.Day.PrecipChance)
		} else {
			assert.Equal(t, 20, d.Day.PrecipChance)
		}
	}
}

func TestDecodeForecastMissingArrayAborts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]any)
		target error
		path   string
	}{
		{"day level array missing", func(p map[string]any) { delete(daily(p), "sunset") }, ErrMissing, "vt1dailyForecast.sunset"},
		{"day level not an array", func(p map[string]any) { daily(p)["moonIcon"] = "WXC" }, ErrWrongType, "vt1dailyForecast.moonIcon"},
		{"day level null", func(p map[string]any) { daily(p)["dayOfWeek"] = nil }, ErrWrongType, "vt1dailyForecast.dayOfWeek"},
		{"day part array missing", func(p map[string]any) { delete(part(p, "day"), "narrative") }, ErrMissing, "vt1dailyForecast.day.narrative"},
		{"night part not an array", func(p map[string]any) { part(p, "night")["thunderEnum"] = 0 }, ErrWrongType, "vt1dailyForecast.night.thunderEnum"},
		{"night missing", func(p map[string]any) { delete(daily(p), "night") }, ErrMissing, "vt1dailyForecast.night"},
		{"day not an object", func(p map[string]any) { daily(p)["day"] = []any{} }, ErrWrongType, "vt1dailyForecast.day"},
		{"forecast missing", func(p map[string]any) { delete(p, "vt1dailyForecast") }, ErrMissing, "vt1dailyForecast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := forecastPayload(models.MaxForecastDays)
			tt.mutate(p)

			f, err := DecodeForecast(encode(t, p))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.path)
			assert.Equal(t, models.Forecast{}, f)
		})
	}
}

func TestDecodeForecastOptionalSnowQPF(t *testing.T) {
	p := forecastPayload(2)
	delete(daily(p), "snowQpf")

	f, err := DecodeForecast(encode(t, p))
	require.NoError(t, err)
	assert.Len(t, f.Days, 2)
	assert.Zero(t, f.Day(1).SnowQPF)
}

func TestDecodeForecastClampsToCapacity(t *testing.T) {
	p := forecastPayload(20)

	f, err := DecodeForecast(encode(t, p))
	require.NoError(t, err)

	assert.Len(t, f.Days, models.MaxForecastDays)
	assert.Equal(t, models.MaxForecastDays, cap(f.Days))
	assert.Equal(t, "dayOfWeek-13", f.Day(13).Weekday)
	assert.Equal(t, models.ForecastDay{}, f.Day(14))
}

func TestDecodeForecastRejectsMalformedJSON(t *testing.T) {
	data := encode(t, forecastPayload(2))

	_, err := DecodeForecast(data[:len(data)-10])
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeForecast([]byte(`"vt1dailyForecast"`))
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestDecodeForecastEmptyArrays(t *testing.T) {
	f, err := DecodeForecast(encode(t, forecastPayload(0)))
	require.NoError(t, err)
	assert.Empty(t, f.Days)
	assert.False(t, f.Ready())
}

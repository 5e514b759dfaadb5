package decoder

import (
	"time"

	"weather-dashboard/models"
)

const keyDailyForecast = "vt1dailyForecast"

// dayColumns are the arrays directly under vt1dailyForecast
var dayColumns = []column[*models.ForecastDay]{
	timeColumn("validDate", func(d *models.ForecastDay, v time.Time) { d.ValidDate = v }),
	stringColumn("dayOfWeek", func(d *models.ForecastDay, v string) { d.Weekday = v }),
	timeColumn("sunrise", func(d *models.ForecastDay, v time.Time) { d.Sunrise = v }),
	timeColumn("sunset", func(d *models.ForecastDay, v time.Time) { d.Sunset = v }),
	stringColumn("moonIcon", func(d *models.ForecastDay, v string) { d.MoonIcon = v }),
	stringColumn("moonPhrase", func(d *models.ForecastDay, v string) { d.MoonPhrase = v }),
	timeColumn("moonrise", func(d *models.ForecastDay, v time.Time) { d.Moonrise = v }),
	timeColumn("moonset", func(d *models.ForecastDay, v time.Time) { d.Moonset = v }),
	optional(floatColumn("snowQpf", func(d *models.ForecastDay, v float64) { d.SnowQPF = v })),
}

// partColumns are the arrays under vt1dailyForecast.day and .night
var partColumns = []column[*models.ForecastPart]{
	stringColumn("dayPartName", func(p *models.ForecastPart, v string) {
		p.DayPartName = v
		p.Valid = true
	}),
	intColumn("precipPct", func(p *models.ForecastPart, v int) { p.PrecipChance = v }),
	floatColumn("precipAmt", func(p *models.ForecastPart, v float64) { p.PrecipAmount = v }),
	stringColumn("precipType", func(p *models.ForecastPart, v string) { p.PrecipType = v }),
	intColumn("temperature", func(p *models.ForecastPart, v int) { p.Temperature = v }),
	intColumn("uvIndex", func(p *models.ForecastPart, v int) { p.UVIndex = v }),
	stringColumn("uvDescription", func(p *models.ForecastPart, v string) { p.UVDescription = v }),
	intColumn("icon", func(p *models.ForecastPart, v int) { p.Icon = v }),
	intColumn("iconExtended", func(p *models.ForecastPart, v int) { p.IconExtended = v }),
	stringColumn("phrase", func(p *models.ForecastPart, v string) { p.Phrase = v }),
	stringColumn("narrative", func(p *models.ForecastPart, v string) { p.Narrative = v }),
	intColumn("cloudPct", func(p *models.ForecastPart, v int) { p.Cloud = v }),
	stringColumn("windDirCompass", func(p *models.ForecastPart, v string) { p.WindDirectionCompass = v }),
	intColumn("windDirDegrees", func(p *models.ForecastPart, v int) { p.WindDirectionDegrees = v }),
	intColumn("windSpeed", func(p *models.ForecastPart, v int) { p.WindSpeed = v }),
	intColumn("humidityPct", func(p *models.ForecastPart, v int) { p.Humidity = v }),
	stringColumn("qualifier", func(p *models.ForecastPart, v string) { p.Qualifier = v }),
	stringColumn("snowRange", func(p *models.ForecastPart, v string) { p.SnowRange = v }),
	intColumn("thunderEnum", func(p *models.ForecastPart, v int) { p.ThunderEnum = v }),
	stringColumn("thunderEnumPhrase", func(p *models.ForecastPart, v string) { p.ThunderEnumPhrase = v }),
}

// DecodeForecast decodes a daily forecast payload. The columnar arrays are
// zipped into at most models.MaxForecastDays days. A missing array fails the
// whole decode; a wrongly typed element only leaves that day's field unset.
func DecodeForecast(data []byte) (models.Forecast, error) {
	root, err := parseObject(data)
	if err != nil {
		return models.Forecast{}, err
	}

	daily, err := objectAt(root, "", keyDailyForecast)
	if err != nil {
		return models.Forecast{}, err
	}
	dayPart, err := objectAt(daily, keyDailyForecast, "day")
	if err != nil {
		return models.Forecast{}, err
	}
	nightPart, err := objectAt(daily, keyDailyForecast, "night")
	if err != nil {
		return models.Forecast{}, err
	}

	// Decode into a scratch slice; nothing escapes unless every array is present
	days := make([]models.ForecastDay, models.MaxForecastDays)

	used, err := readColumns(daily, keyDailyForecast, dayColumns, dayRows(days))
	if err != nil {
		return models.Forecast{}, err
	}

	n, err := readColumns(dayPart, keyDailyForecast+".day", partColumns,
		partRows(days, func(d *models.ForecastDay) *models.ForecastPart { return &d.Day }))
	if err != nil {
		return models.Forecast{}, err
	}
	used = max(used, n)

	n, err = readColumns(nightPart, keyDailyForecast+".night", partColumns,
		partRows(days, func(d *models.ForecastDay) *models.ForecastPart { return &d.Night }))
	if err != nil {
		return models.Forecast{}, err
	}
	used = max(used, n)

	f := models.Forecast{Days: days[:used:used]}
	if id, ok := root["id"].(string); ok {
		f.ID = id
	}

	return f, nil
}

func dayRows(days []models.ForecastDay) []*models.ForecastDay {
	rows := make([]*models.ForecastDay, len(days))
	for i := range days {
		rows[i] = &days[i]
	}
	return rows
}

func partRows(days []models.ForecastDay, part func(*models.ForecastDay) *models.ForecastPart) []*models.ForecastPart {
	rows := make([]*models.ForecastPart, len(days))
	for i := range days {
		rows[i] = part(&days[i])
	}
	return rows
}

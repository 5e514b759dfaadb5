package decoder

import (
	"weather-dashboard/models"
)

const keyObservation = "vt1observation"

// observationFields lists every value read from the vt1observation object
var observationFields = []column[*models.Observation]{
	stringColumn("phrase", func(o *models.Observation, v string) { o.Phrase = v }),
	integerColumn("temperature", func(o *models.Observation, v int) { o.Temperature = v }),
	optional(integerColumn("temperatureMinSince7am", func(o *models.Observation, v int) { o.TemperatureMin = v })),
	integerColumn("temperatureMaxSince7am", func(o *models.Observation, v int) { o.TemperatureMax = v }),
	integerColumn("feelsLike", func(o *models.Observation, v int) { o.FeelsLike = v }),
	integerColumn("humidity", func(o *models.Observation, v int) { o.Humidity = v }),
	stringColumn("windDirCompass", func(o *models.Observation, v string) { o.WindDirectionCompass = v }),
	integerColumn("windDirDegrees", func(o *models.Observation, v int) { o.WindDirectionDegrees = v }),
	integerColumn("windSpeed", func(o *models.Observation, v int) { o.WindSpeed = v }),
	floatColumn("visibility", func(o *models.Observation, v float64) { o.Visibility = v }),
	integerColumn("uvIndex", func(o *models.Observation, v int) { o.UVIndex = v }),
	stringColumn("uvDescription", func(o *models.Observation, v string) { o.UVDescription = v }),
}

// DecodeObservation decodes a current-conditions payload. Either every
// required field decodes and the returned Observation is ready, or an error
// is returned together with the zero Observation.
func DecodeObservation(data []byte) (models.Observation, error) {
	root, err := parseObject(data)
	if err != nil {
		return models.Observation{}, err
	}

	obj, err := objectAt(root, "", keyObservation)
	if err != nil {
		return models.Observation{}, err
	}

	var o models.Observation
	if err := readFields(obj, keyObservation, observationFields, &o); err != nil {
		return models.Observation{}, err
	}
	o.Ready = true

	return o, nil
}

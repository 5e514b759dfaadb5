package decoder

import (
	"weather-dashboard/models"
)

const keyLocation = "location"

// MaxLocations caps the number of search candidates kept
const MaxLocations = 10

var locationColumns = []column[*models.Location]{
	stringColumn("placeId", func(l *models.Location, v string) { l.ID = v }),
	stringColumn("address", func(l *models.Location, v string) { l.Address = v }),
	floatColumn("latitude", func(l *models.Location, v float64) { l.Latitude = v }),
	floatColumn("longitude", func(l *models.Location, v float64) { l.Longitude = v }),
	optional(stringColumn("ianaTimeZone", func(l *models.Location, v string) { l.TimeZone = v })),
}

// DecodeLocations decodes a location search payload into candidates, in the
// provider's order. Rows without a place id are dropped.
func DecodeLocations(data []byte) ([]models.Location, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	obj, err := objectAt(root, "", keyLocation)
	if err != nil {
		return nil, err
	}

	scratch := make([]models.Location, MaxLocations)
	rows := make([]*models.Location, len(scratch))
	for i := range scratch {
		rows[i] = &scratch[i]
	}

	used, err := readColumns(obj, keyLocation, locationColumns, rows)
	if err != nil {
		return nil, err
	}

	locations := make([]models.Location, 0, used)
	for _, l := range scratch[:used] {
		if l.ID == "" {
			continue
		}
		locations = append(locations, l)
	}
	return locations, nil
}

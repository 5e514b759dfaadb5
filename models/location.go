package models

import (
	"strconv"
)

// Location is the place selected for the active session
type Location struct {
	ID        string  `json:"id"`      // provider place id, empty for static coordinates
	Address   string  `json:"address"` // display address
	TimeZone  string  `json:"timeZone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocode formats the coordinates as the "lat,lon" string the provider expects
func (l Location) Geocode() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}

// DisplayName returns the address, falling back to the coordinates
func (l Location) DisplayName() string {
	if l.Address != "" {
		return l.Address
	}
	return l.Geocode()
}

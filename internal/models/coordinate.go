package models

import (
	"errors"
	"fmt"
)

// ErrNoLocation is returned when no coordinate has been provided yet.
// Callers degrade to a "prayer times unavailable" state rather than failing.
var ErrNoLocation = errors.New("location unavailable")

type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c GeoCoordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Longitude)
	}
	return nil
}

package astro

import (
	"math"

	"mihrab/internal/models"
)

// The Kaaba, the fixed reference point for the qibla.
var kaaba = models.GeoCoordinate{Latitude: 21.4225, Longitude: 39.826181}

const earthRadiusKm = 6371.0

// QiblaResult is the great-circle bearing and distance to the Kaaba.
type QiblaResult struct {
	Bearing    float64 `json:"bearing"`     // degrees clockwise from true north, [0, 360)
	DistanceKm float64 `json:"distance_km"` // great-circle distance
}

// Qibla computes the bearing and distance from a coordinate to the Kaaba.
func Qibla(coord models.GeoCoordinate) (QiblaResult, error) {
	if err := coord.Validate(); err != nil {
		return QiblaResult{}, err
	}

	lat1 := coord.Latitude * math.Pi / 180
	lat2 := kaaba.Latitude * math.Pi / 180
	dLon := (kaaba.Longitude - coord.Longitude) * math.Pi / 180

	bearing := math.Atan2(
		math.Sin(dLon),
		math.Cos(lat1)*math.Tan(lat2)-math.Sin(lat1)*math.Cos(dLon),
	) * 180 / math.Pi

	return QiblaResult{
		Bearing:    fixAngle(bearing),
		DistanceKm: haversineKm(coord, kaaba),
	}, nil
}

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(a, b models.GeoCoordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

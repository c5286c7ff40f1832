package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mihrab/internal/models"
)

func TestQibla_KnownCities(t *testing.T) {
	cases := []struct {
		name     string
		coord    models.GeoCoordinate
		bearing  float64
		distance float64
	}{
		{"london", london, 118.99, 4793.8},
		{"new york", nyc, 58.48, 10306.3},
		{"jakarta", models.GeoCoordinate{Latitude: -6.2088, Longitude: 106.8456}, 295.15, 7920.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Qibla(tc.coord)
			require.NoError(t, err)
			assert.InDelta(t, tc.bearing, res.Bearing, 0.01)
			assert.InDelta(t, tc.distance, res.DistanceKm, 0.5)
		})
	}
}

func TestQibla_AtKaaba(t *testing.T) {
	res, err := Qibla(kaaba)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Bearing, 0.001)
	assert.InDelta(t, 0, res.DistanceKm, 0.001)
}

func TestQibla_BearingRange(t *testing.T) {
	coords := []models.GeoCoordinate{
		{Latitude: 64.1466, Longitude: -21.9426},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 35.6762, Longitude: 139.6503},
		{Latitude: 0, Longitude: 0},
	}
	for _, c := range coords {
		res, err := Qibla(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Bearing, 0.0)
		assert.Less(t, res.Bearing, 360.0)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := models.GeoCoordinate{Latitude: 51.5074, Longitude: -0.1278}
	b := models.GeoCoordinate{Latitude: -6.2088, Longitude: 106.8456}
	assert.InDelta(t, haversineKm(a, b), haversineKm(b, a), 1e-9)
}

func TestQibla_InvalidCoordinate(t *testing.T) {
	_, err := Qibla(models.GeoCoordinate{Latitude: 0, Longitude: 181})
	assert.Error(t, err)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"mihrab/internal/astro"
)

func newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the qibla bearing and distance",
		RunE:  runQibla,
	}
}

func runQibla(cmd *cobra.Command, args []string) error {
	coord, err := coordFromFlags(cmd)
	if err != nil {
		return err
	}
	res, err := astro.Qibla(coord)
	if err != nil {
		return err
	}
	fmt.Printf("bearing  %.2f° (%s)\n", res.Bearing, compassPoint(res.Bearing))
	fmt.Printf("distance %.0f km\n", res.DistanceKm)
	return nil
}

func compassPoint(bearing float64) string {
	points := []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	idx := int((bearing+11.25)/22.5) % 16
	return points[idx]
}

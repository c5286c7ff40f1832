package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"mihrab/internal/astro"
	"mihrab/internal/models"
)

// Global flags shared across the one-shot subcommands. The serve command
// reads everything from its config file instead.
var (
	flagLatitude  float64
	flagLongitude float64
	flagMethod    string
	flagMadhab    string
	flagTimezone  string
	flagDate      string
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mihrab",
		Short:         "Prayer times, qibla, and practice tracking",
		Long:          "Astronomical prayer time calculation, qibla direction, and streak tracking.\nRun one-shot queries from the command line or start the daemon with serve.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&flagLatitude, "latitude", 0, "Observer latitude in degrees")
	pf.Float64Var(&flagLongitude, "longitude", 0, "Observer longitude in degrees")
	pf.StringVar(&flagMethod, "method", "mwl", "Calculation method (mwl, isna, egypt, ummalqura, karachi, tehran, jafari)")
	pf.StringVar(&flagMadhab, "madhab", "shafi", "Asr madhab: shafi or hanafi")
	pf.StringVar(&flagTimezone, "timezone", "", "IANA timezone for display (default: system local)")
	pf.StringVar(&flagDate, "date", "", "Calendar date YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTimesCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newQiblaCmd())

	return rootCmd
}

// coordFromFlags requires an explicit coordinate; the one-shot commands have
// no config file to fall back on.
func coordFromFlags(cmd *cobra.Command) (models.GeoCoordinate, error) {
	root := cmd.Root().PersistentFlags()
	if !root.Lookup("latitude").Changed || !root.Lookup("longitude").Changed {
		return models.GeoCoordinate{}, fmt.Errorf("--latitude and --longitude are required")
	}
	coord := models.GeoCoordinate{Latitude: flagLatitude, Longitude: flagLongitude}
	if err := coord.Validate(); err != nil {
		return models.GeoCoordinate{}, err
	}
	return coord, nil
}

func calculatorFromFlags() (*astro.Calculator, error) {
	method, err := astro.ParseMethod(flagMethod)
	if err != nil {
		return nil, err
	}
	madhab, err := astro.ParseMadhab(flagMadhab)
	if err != nil {
		return nil, err
	}
	return astro.NewCalculator(method, madhab)
}

func displayLocation() (*time.Location, error) {
	if flagTimezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(flagTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", flagTimezone, err)
	}
	return loc, nil
}

func dateFromFlags(loc *time.Location) (time.Time, error) {
	if flagDate == "" {
		return time.Now().In(loc), nil
	}
	return time.ParseInLocation(models.DateLayout, flagDate, loc)
}

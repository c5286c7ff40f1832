package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"mihrab/internal/astro"
	"mihrab/internal/models"
)

var (
	flagWatch    bool
	flagInterval time.Duration
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the upcoming prayer and the time remaining.\nWith --watch the countdown refreshes until interrupted.",
		RunE:  runNext,
	}

	cmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Refresh the countdown continuously")
	cmd.Flags().DurationVar(&flagInterval, "interval", 30*time.Second, "Refresh interval for --watch")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	coord, err := coordFromFlags(cmd)
	if err != nil {
		return err
	}
	calc, err := calculatorFromFlags()
	if err != nil {
		return err
	}
	loc, err := displayLocation()
	if err != nil {
		return err
	}

	print := func(now time.Time) error {
		next, at, err := nextInstant(calc, coord, now, loc)
		if err != nil {
			return err
		}
		remaining := at.Sub(now).Round(time.Second)
		fmt.Printf("%s at %s (in %s)\n", next, at.In(loc).Format("15:04"), remaining)
		return nil
	}

	if err := print(time.Now()); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
			if err := print(time.Now()); err != nil {
				return err
			}
		}
	}
}

// nextInstant finds the first prayer instant after now, rolling over to a
// freshly calculated set for tomorrow once Isha has passed.
func nextInstant(calc *astro.Calculator, coord models.GeoCoordinate, now time.Time, loc *time.Location) (models.Prayer, time.Time, error) {
	set, _, err := calc.Times(coord, now.In(loc))
	if err != nil {
		return 0, time.Time{}, err
	}
	for _, p := range models.Prayers() {
		if at := set.At(p); at.After(now) {
			return p, at, nil
		}
	}

	tomorrow, _, err := calc.Times(coord, now.In(loc).AddDate(0, 0, 1))
	if err != nil {
		return 0, time.Time{}, err
	}
	return models.Fajr, tomorrow.Fajr, nil
}

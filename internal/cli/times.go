package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"mihrab/internal/models"
)

func newTimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "times",
		Short: "Show the prayer times for a date",
		Long:  "Calculate and print the six daily instants for the given coordinate and date.\nEvents resolved by the high-latitude fallback are marked with an asterisk.",
		RunE:  runTimes,
	}
}

func runTimes(cmd *cobra.Command, args []string) error {
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
	date, err := dateFromFlags(loc)
	if err != nil {
		return err
	}

	set, adjusted, err := calc.Times(coord, date)
	if err != nil {
		return err
	}

	marked := make(map[models.Prayer]bool, len(adjusted))
	for _, p := range adjusted {
		marked[p] = true
	}

	fmt.Printf("%s (%s, %s)\n", set.Date, calc.Method(), calc.Madhab())
	for _, p := range models.AllEvents() {
		mark := ""
		if marked[p] {
			mark = " *"
		}
		fmt.Printf("%-8s %s%s\n", p, set.At(p).In(loc).Format("15:04"), mark)
	}
	return nil
}

package providers

import (
	"fmt"
	"time"

	"github.com/gookit/validate"
	"mihrab/internal/astro"
	"mihrab/internal/models"
	"mihrab/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the tag-based rules first, then the domain checks the tags
// cannot express (method and madhab names, timezone, clock windows).
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}

	conf := cv.conf

	if conf.Location.Provided() {
		coord := models.GeoCoordinate{
			Latitude:  *conf.Location.Latitude,
			Longitude: *conf.Location.Longitude,
		}
		if err := coord.Validate(); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}

	if _, err := astro.ParseMethod(conf.Calculation.Method); err != nil {
		return fmt.Errorf("calculation: %w", err)
	}
	if _, err := astro.ParseMadhab(conf.Calculation.Madhab); err != nil {
		return fmt.Errorf("calculation: %w", err)
	}
	if _, err := time.LoadLocation(conf.Calculation.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", conf.Calculation.Timezone, err)
	}

	categories := []struct {
		name string
		c    structures.ReminderCategoryConfig
	}{
		{"prayer", conf.Reminders.Prayer},
		{"habit", conf.Reminders.Habit},
		{"reflection", conf.Reminders.Reflection},
	}
	for _, rc := range categories {
		if rc.c.LeadMinutes < 0 {
			return fmt.Errorf("reminders.%s.leadMinutes must not be negative", rc.name)
		}
		if _, err := models.ParseQuietHours(rc.c.QuietHours.Start, rc.c.QuietHours.End); err != nil {
			return fmt.Errorf("reminders.%s: %w", rc.name, err)
		}
		if rc.name != "prayer" && rc.c.Enabled {
			if _, err := models.ParseClock(rc.c.At); err != nil {
				return fmt.Errorf("reminders.%s.at: %w", rc.name, err)
			}
		}
	}

	if conf.Reminders.Digest.Enabled {
		if _, err := models.ParseWeekday(conf.Reminders.Digest.Weekday); err != nil {
			return fmt.Errorf("reminders.digest: %w", err)
		}
		if _, err := models.ParseClock(conf.Reminders.Digest.At); err != nil {
			return fmt.Errorf("reminders.digest.at: %w", err)
		}
	}

	return nil
}

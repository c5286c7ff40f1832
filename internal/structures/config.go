package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// LocationConfig holds the observer coordinate. Latitude and longitude are
// pointers so an absent location can be told apart from a genuine (0, 0).
type LocationConfig struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

// Provided reports whether a coordinate has been configured at all.
func (l LocationConfig) Provided() bool {
	return l.Latitude != nil && l.Longitude != nil
}

type OffsetsConfig struct {
	Fajr    int `yaml:"fajr"`
	Sunrise int `yaml:"sunrise"`
	Dhuhr   int `yaml:"dhuhr"`
	Asr     int `yaml:"asr"`
	Maghrib int `yaml:"maghrib"`
	Isha    int `yaml:"isha"`
}

type CalculationConfig struct {
	Method   string        `yaml:"method" validate:"required"`
	Madhab   string        `yaml:"madhab" validate:"required|in:shafi,hanafi"`
	Timezone string        `yaml:"timezone" validate:"required"`
	Offsets  OffsetsConfig `yaml:"offsets"`
}

type QuietHoursConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// ReminderCategoryConfig governs one reminder category. At is the daily
// governing instant ("HH:mm" local) for clock-driven categories; the prayer
// category derives its instants from the calculator and ignores it.
type ReminderCategoryConfig struct {
	Enabled     bool             `yaml:"enabled"`
	At          string           `yaml:"at"`
	LeadMinutes int              `yaml:"leadMinutes"`
	QuietHours  QuietHoursConfig `yaml:"quietHours"`
}

type DigestConfig struct {
	Enabled bool   `yaml:"enabled"`
	Weekday string `yaml:"weekday"`
	At      string `yaml:"at"`
}

type RemindersConfig struct {
	Prayer     ReminderCategoryConfig `yaml:"prayer"`
	Habit      ReminderCategoryConfig `yaml:"habit"`
	Reflection ReminderCategoryConfig `yaml:"reflection"`
	Digest     DigestConfig           `yaml:"digest"`
}

type SchedulerConfig struct {
	ReplanInterval time.Duration `yaml:"replanInterval" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Location    LocationConfig    `yaml:"location"`
	Calculation CalculationConfig `yaml:"calculation"`
	Reminders   RemindersConfig   `yaml:"reminders"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	WebServer   Server            `yaml:"webServer"`
	Persistence Persistence       `yaml:"persistence"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

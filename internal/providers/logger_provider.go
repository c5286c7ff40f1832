package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"mihrab/internal/structures"
)

// TypeEnum tags log lines with the engine concern they belong to.
type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeCalc
	TypeSched
	TypeStreak
	TypeHttp
)

var typeNames = map[TypeEnum]string{
	TypeApp:    "app",
	TypeCalc:   "calc",
	TypeSched:  "sched",
	TypeStreak: "streak",
	TypeHttp:   "http",
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	logger zerolog.Logger
	file   *os.File
}

// NewLogProvider builds the zerolog-backed logger writing to
// <dir>/mihrab.log, with console output added in debug mode.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	path := filepath.Join(conf.Logger.Dir, "mihrab.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	var logger zerolog.Logger
	if conf.Debug {
		multi := zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		logger = zerolog.New(multi)
	} else {
		logger = zerolog.New(file)
	}
	logger = logger.Level(level).With().Timestamp().Logger()

	return &LogProvider{logger: logger, file: file}, nil
}

func (l *LogProvider) event(e *zerolog.Event, t TypeEnum, format string, args ...interface{}) {
	e.Str("type", typeNames[t]).Msgf(format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Error(), t, format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Warn(), t, format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Debug(), t, format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Info(), t, format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Fatal(), t, format, args...)
}

func (l *LogProvider) Close() {
	_ = l.file.Close()
}

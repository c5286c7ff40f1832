package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"mihrab/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "MIHRAB_LOG_LEVEL")
	viper.BindEnv("location.latitude", "MIHRAB_LATITUDE")
	viper.BindEnv("location.longitude", "MIHRAB_LONGITUDE")
	viper.BindEnv("calculation.method", "MIHRAB_METHOD")
	viper.BindEnv("calculation.madhab", "MIHRAB_MADHAB")
	viper.BindEnv("calculation.timezone", "MIHRAB_TIMEZONE")
	viper.BindEnv("scheduler.replanInterval", "MIHRAB_REPLAN_INTERVAL")
	viper.BindEnv("persistence.saveInterval", "MIHRAB_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "MIHRAB_CACHE_ENABLED")
	viper.BindEnv("cache.size", "MIHRAB_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Mihrab"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func setConfigDefaults() {
	viper.SetDefault("MAP_FILE", "./data/export.json")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("ANALYZER_WORKERS", 4)
	viper.SetDefault("ANALYZER_SEED", 1)
	viper.SetDefault("ANALYZER_MAX_SOURCES", 200)

	viper.SetDefault("SNAP_RADIUS_KM", 0.05)
	viper.SetDefault("SNAP_MAX_RADIUS_KM", 2.0)
	viper.SetDefault("ROUTE_CACHE_SIZE", 4096)
}

// ReadConfig loads config.yaml from ./data/ (and configDir when given). A missing config file is not an
// error: the defaults and OPTIROTA_* environment variables still apply.
func ReadConfig(configDir string) error {
	setConfigDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}
	viper.AddConfigPath("./data/")

	viper.SetEnvPrefix("OPTIROTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// Package config resolves settings from flags, environment, .env and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "EPICQUEST"
	configName = ".epicquest"

	DefaultTickInterval    = time.Second
	DefaultOverlayDuration = 3 * time.Second
	DefaultLogLevel        = "info"
)

// Keys shared with the cobra flag bindings.
const (
	KeyCatalog         = "catalog"
	KeyDB              = "db"
	KeyTickInterval    = "tick_interval"
	KeyOverlayDuration = "overlay_duration"
	KeyLogFile         = "log.file"
	KeyLogLevel        = "log.level"
	KeyVerbose         = "verbose"
)

type Config struct {
	Catalog         string
	DB              string
	TickInterval    time.Duration
	OverlayDuration time.Duration
	LogFile         string
	LogLevel        string
	Verbose         bool
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCatalog, "")
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyTickInterval, DefaultTickInterval)
	v.SetDefault(KeyOverlayDuration, DefaultOverlayDuration)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyVerbose, false)
}

// Init wires env lookups and reads the config file. An explicit cfgFile must
// exist; otherwise a missing file is fine and defaults apply.
func Init(v *viper.Viper, cfgFile string) error {
	// .env is optional.
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load snapshots the resolved settings and validates them.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Catalog:         strings.TrimSpace(v.GetString(KeyCatalog)),
		DB:              strings.TrimSpace(v.GetString(KeyDB)),
		TickInterval:    v.GetDuration(KeyTickInterval),
		OverlayDuration: v.GetDuration(KeyOverlayDuration),
		LogFile:         strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Verbose:         v.GetBool(KeyVerbose),
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", KeyTickInterval, cfg.TickInterval)
	}
	if cfg.OverlayDuration <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", KeyOverlayDuration, cfg.OverlayDuration)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Verbose && cfg.LogLevel == DefaultLogLevel {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

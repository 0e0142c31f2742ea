package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/robalobadob/bridge/internal/bridge"
	"github.com/robalobadob/bridge/internal/daily"
	"github.com/robalobadob/bridge/internal/random"
)

// EnvPrefix is prepended to every environment key, e.g. BRIDGE_LOG_LEVEL.
const EnvPrefix = "BRIDGE"

// Config is the runtime configuration shared by the play and serve commands.
type Config struct {
	// LogLevel is a zerolog level name (default: "info")
	LogLevel string `mapstructure:"log_level"`
	// LogFormat selects "console" (human, default) or "json" output on stderr
	LogFormat string `mapstructure:"log_format"`
	// Generator selects the bridge source: "random" (default) or "daily"
	Generator string `mapstructure:"generator"`
	// DailySalt keys the daily bridge
	DailySalt string `mapstructure:"daily_salt"`
	// DailyDate pins the daily bridge to YYYY-MM-DD; empty means today (UTC)
	DailyDate string `mapstructure:"daily_date"`
	// Reprompt asks the same question again after invalid console input
	Reprompt bool `mapstructure:"reprompt"`
	// Color styles O/X cells when stdout is a terminal
	Color bool `mapstructure:"color"`
	// HTTPAddr is the listen address for the serve command
	HTTPAddr string `mapstructure:"http_addr"`
}

// SetDefaults registers defaults on v. Every key needs one so that
// AutomaticEnv overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("generator", "random")
	v.SetDefault("daily_salt", "bridge")
	v.SetDefault("daily_date", "")
	v.SetDefault("reprompt", false)
	v.SetDefault("color", true)
	v.SetDefault("http_addr", ":5175")
}

// Load reads defaults and BRIDGE_* environment variables into a Config.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: log_format must be console or json, got %q", c.LogFormat)
	}
	switch c.Generator {
	case "random":
	case "daily":
		if c.DailyDate != "" {
			if _, err := daily.ParseDateKey(c.DailyDate); err != nil {
				return fmt.Errorf("config: daily_date: %w", err)
			}
		}
	default:
		return fmt.Errorf("config: generator must be random or daily, got %q", c.Generator)
	}
	return nil
}

// Source returns a factory producing a fresh generator per bridge.
// now supplies the date when DailyDate is empty.
func (c Config) Source(now func() time.Time) func() bridge.NumberGenerator {
	if c.Generator != "daily" {
		return func() bridge.NumberGenerator { return random.Generator{} }
	}
	return func() bridge.NumberGenerator {
		date := now()
		if c.DailyDate != "" {
			date, _ = daily.ParseDateKey(c.DailyDate)
		}
		return daily.NewGenerator(date, c.DailySalt)
	}
}

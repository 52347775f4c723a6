package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "BALLOTBOX"

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string

	LogLevel  string
	LogFormat string

	MetricsNamespace string

	OutputFormat string
	OutputColor  bool

	RequireResetConfirmation bool
}

// Load reads the optional YAML file at path, then applies BALLOTBOX_* env
// overrides on top of defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_name", "ballotbox")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.namespace", "ballotbox")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.color", true)
	v.SetDefault("session.require_reset_confirmation", true)

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	cfg := Config{
		ServiceName:              strings.TrimSpace(v.GetString("service_name")),
		LogLevel:                 strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		LogFormat:                strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		MetricsNamespace:         strings.TrimSpace(v.GetString("metrics.namespace")),
		OutputFormat:             strings.ToLower(strings.TrimSpace(v.GetString("output.format"))),
		OutputColor:              envBool(EnvPrefix+"_OUTPUT_COLOR", v.GetBool("output.color")),
		RequireResetConfirmation: envBool(EnvPrefix+"_SESSION_REQUIRE_RESET_CONFIRMATION", v.GetBool("session.require_reset_confirmation")),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "ballotbox"
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("unsupported log format %q", c.LogFormat)
	}
	switch c.OutputFormat {
	case "table", "json":
	default:
		return errors.Errorf("unsupported output format %q", c.OutputFormat)
	}
	return nil
}

// envBool accepts the loose spellings viper's bool cast rejects ("yes", "on").
func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration with viper.
// CLI flags > environment > config file > defaults precedence; flag
// overrides are applied by the commands themselves after Load.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults matching Default()
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.query_timeout", "5s")
	v.SetDefault("filters.spec_dir", "")
	v.SetDefault("filters.builtin_enabled", true)

	// Bind environment variables with FS_ prefix
	v.SetEnvPrefix("FS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:    v.GetString("store.database_url"),
		SpecDir:        v.GetString("filters.spec_dir"),
		BuiltinEnabled: v.GetBool("filters.builtin_enabled"),
		QueryTimeout:   v.GetDuration("store.query_timeout"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks value ranges that viper cannot express.
func validate(cfg *Config) error {
	if cfg.QueryTimeout <= 0 {
		return fmt.Errorf("store.query_timeout must be positive, got %v", cfg.QueryTimeout)
	}
	return nil
}

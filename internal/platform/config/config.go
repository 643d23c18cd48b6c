package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the full application configuration. Values come from an optional
// YAML file plus MEMBERS_* environment overrides.
type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr string `mapstructure:"addr"`
		// AdminToken guards the report endpoints; empty disables the check.
		AdminToken string `mapstructure:"admin_token"`
	} `mapstructure:"http"`

	Storage struct {
		// Backend selects the persistence adapter: "memory" or "postgres".
		Backend string `mapstructure:"backend"`
	} `mapstructure:"storage"`

	Postgres struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
}

// Load reads configuration from path (optional; a missing file is not an
// error) with env overrides and defaults applied.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEMBERS")
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("metrics.enabled", true)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Storage.Backend != "memory" && c.Storage.Backend != "postgres" {
		return Config{}, fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "postgres" && c.Postgres.DSN == "" {
		return Config{}, errors.New("postgres backend requires postgres.dsn")
	}
	return c, nil
}

// Package config loads the host's runtime configuration with viper,
// grounded on VictorVVedtion-perp-dex's viper-backed config loading
// (app.toml/config.toml) — scaled down to the handful of settings a single
// engine host needs.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full set of settings the fenrirengine host reads at
// startup.
type Config struct {
	Address     string `mapstructure:"address"`
	Port        int    `mapstructure:"port"`
	Pair        string `mapstructure:"pair"`
	Workers     int    `mapstructure:"workers"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

// Defaults returns the configuration used when no file or flags override it.
func Defaults() Config {
	return Config{
		Address:     "0.0.0.0",
		Port:        9001,
		Pair:        "ETH/USDT",
		Workers:     10,
		MetricsPort: 2112,
	}
}

// Load reads configuration from path (if non-empty) layered over Defaults,
// with environment variables of the form FENRIR_<KEY> taking precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	def := Defaults()
	v.SetDefault("address", def.Address)
	v.SetDefault("port", def.Port)
	v.SetDefault("pair", def.Pair)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("metrics_port", def.MetricsPort)

	v.SetEnvPrefix("fenrir")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

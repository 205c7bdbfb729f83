// Package config loads bookstock settings from defaults, an optional
// bookstock.yaml file and BOOKSTOCK_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix      = "BOOKSTOCK"
	minSecretBytes = 32
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Operators OperatorsConfig `mapstructure:"operators"`
	Inventory InventoryConfig `mapstructure:"inventory"`
}

type HTTPConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	LoginLimitPerMin  int           `mapstructure:"login_limit_per_min"`
}

type LogConfig struct {
	Level string `mapstructure:"level"` // debug | info | warn | error
}

type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

// OperatorsConfig describes where stock manager accounts live. With an
// empty DatabaseURL they are kept in memory.
type OperatorsConfig struct {
	DatabaseURL    string `mapstructure:"database_url"`
	BootstrapEmail string `mapstructure:"bootstrap_email"`
	BootstrapPass  string `mapstructure:"bootstrap_password"`
}

type InventoryConfig struct {
	// PickSeed seeds the editor pick sampler; 0 seeds from the clock.
	PickSeed int64 `mapstructure:"pick_seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_header_timeout", 5*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.login_limit_per_min", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.token_ttl", 15*time.Minute)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.token", "")
	v.SetDefault("operators.database_url", "")
	v.SetDefault("operators.bootstrap_email", "")
	v.SetDefault("operators.bootstrap_password", "")
	v.SetDefault("inventory.pick_seed", 0)
}

// Load reads the configuration. paths are searched for bookstock.yaml; a
// missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("bookstock")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// BOOKSTOCK_JWT_SECRET -> jwt.secret
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWT.Secret) < minSecretBytes {
		return fmt.Errorf("jwt.secret is required and must be at least %d chars", minSecretBytes)
	}
	if c.JWT.TokenTTL <= 0 {
		return errors.New("jwt.token_ttl must be positive")
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.LoginLimitPerMin <= 0 {
		return errors.New("http.login_limit_per_min must be positive")
	}
	if (c.Operators.BootstrapEmail == "") != (c.Operators.BootstrapPass == "") {
		return errors.New("operators.bootstrap_email and operators.bootstrap_password go together")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DataSource DataSourceConfig `mapstructure:"datasource"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DataSourceConfig selects the database to read sales from. When Registry is
// set, Profile is looked up there and overrides Driver and Path.
type DataSourceConfig struct {
	Profile  string `mapstructure:"profile"`
	Registry string `mapstructure:"registry"`
	Driver   string `mapstructure:"driver" validate:"required,oneof=sqlite duckdb"`
	Path     string `mapstructure:"path" validate:"required"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" validate:"min=1"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("datasource.profile", "default")
	v.SetDefault("datasource.registry", "")
	v.SetDefault("datasource.driver", "sqlite")
	v.SetDefault("datasource.path", "northwind.db")
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load reads configuration from the optional file at path and from ATLAS_*
// environment variables, e.g. ATLAS_SERVER_PORT=9000.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(errs...)
}

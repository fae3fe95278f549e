package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Web    WebConfig    `mapstructure:",squash"`
	DB     DBConfig     `mapstructure:",squash"`
	SNMP   SNMPConfig   `mapstructure:",squash"`
	Logger LoggerConfig `mapstructure:",squash"`
}

type WebConfig struct {
	Host      string `mapstructure:"web_host"`
	Port      string `mapstructure:"web_port"`
	BodyLimit int    `mapstructure:"body_limit"`
}

func (c WebConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DBConfig struct {
	Driver string `mapstructure:"db_driver"`
	DSN    string `mapstructure:"db_dsn"`
}

type SNMPConfig struct {
	// PollInterval in seconds; 0 disables background polling.
	PollInterval int `mapstructure:"poll_interval"`
	Timeout      int `mapstructure:"snmp_timeout"`
	Retries      int `mapstructure:"snmp_retries"`
}

func (c SNMPConfig) Interval() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

func (c SNMPConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type LoggerConfig struct {
	Mode       string `mapstructure:"log_mode"`
	Level      string `mapstructure:"log_level"`
	Path       string `mapstructure:"log_path"`
	MaxSize    int    `mapstructure:"log_max_size"`
	MaxBackups int    `mapstructure:"log_max_backups"`
	MaxAge     int    `mapstructure:"log_max_age"`
	Compress   bool   `mapstructure:"log_compress"`
}

var defaults = map[string]any{
	"web_host":        "0.0.0.0",
	"web_port":        "8080",
	"body_limit":      4 * 1024 * 1024,
	"db_driver":       "sqlite",
	"db_dsn":          "/tmp/ipconf.db",
	"poll_interval":   600,
	"snmp_timeout":    2,
	"snmp_retries":    1,
	"log_mode":        "dev",
	"log_level":       "info",
	"log_path":        "",
	"log_max_size":    10,
	"log_max_backups": 3,
	"log_max_age":     28,
	"log_compress":    false,
}

// Load reads defaults, an optional ipconf.yaml in the working directory and
// environment overrides (WEB_PORT, DB_DSN, ...).
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigName("ipconf")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported db_driver %q", cfg.DB.Driver)
	}

	return &cfg, nil
}

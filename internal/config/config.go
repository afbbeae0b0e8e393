package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/2beens/gymcoach/internal/training/engine"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis; when RedisHost is empty an in-process cache is used and rate limiting is off
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// api
	AllowedOrigins         []string `toml:"allowed_origins"`
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	MCPEnabled             bool     `toml:"mcp_enabled"`
	LocalCacheSizeMB       int      `toml:"local_cache_size_mb"`

	// engine thresholds, [<env>.fatigue], [<env>.deload] etc.
	engine.Config

	// secrets, taken from the environment
	SentryDSN     string `toml:"-"`
	RedisPassword string `toml:"-"`
	DBPassword    string `toml:"-"`
	APIToken      string `toml:"-"`
}

type Toml struct {
	Development Config
	Production  Config
}

// defaults are applied before decoding, so the TOML file only needs the keys it overrides.
func defaults() Config {
	return Config{
		Host:                   "localhost",
		Port:                   8080,
		LogLevel:               "info",
		PostgresHost:           "localhost",
		PostgresPort:           "5432",
		PostgresDBName:         "gymcoach",
		PostgresUser:           "postgres",
		PrometheusMetricsHost:  "localhost",
		PrometheusMetricsPort:  "2112",
		RateLimitAllowedPerMin: 120,
		LocalCacheSizeMB:       16,
		Config:                 engine.DefaultConfig(),
	}
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return &t.Development, nil
	case "prod", "production":
		return &t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file and returns the section of the given env,
// with the secrets filled in from the environment.
func Load(env, path string) (*Config, error) {
	t := Toml{
		Development: defaults(),
		Production:  defaults(),
	}
	t.Development.Environment = "development"
	t.Production.Environment = "production"

	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.SentryDSN = os.Getenv("SENTRY_DSN")
	cfg.RedisPassword = os.Getenv("GYMCOACH_REDIS_PASS")
	cfg.DBPassword = os.Getenv("GYMCOACH_DB_PASS")
	cfg.APIToken = os.Getenv("GYMCOACH_API_TOKEN")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 {
		err = multierr.Append(err, errors.New("port must be greater than 0"))
	}
	if c.RateLimitAllowedPerMin < 0 {
		err = multierr.Append(err, errors.New("rate_limit_allowed_per_min cannot be negative"))
	}
	if c.RedisHost == "" && c.LocalCacheSizeMB <= 0 {
		err = multierr.Append(err, errors.New("local_cache_size_mb must be greater than 0 without redis"))
	}
	return multierr.Append(err, c.Config.Validate())
}

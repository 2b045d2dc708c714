package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"blogd/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Name     string         `mapstructure:"name" yaml:"name"`
	Age      int            `mapstructure:"age" yaml:"age"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig represents the HTTP listener configuration
type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxInFlight     int           `mapstructure:"max_in_flight" yaml:"max_in_flight"`
	QueueTimeout    time.Duration `mapstructure:"queue_timeout" yaml:"queue_timeout"`
}

// DatabaseConfig represents the store and connection pool configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" yaml:"driver"`
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Name: DefaultName,
		Age:  DefaultAge,
	}

	cfg.Server.Address = DefaultAddress
	cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	cfg.Server.MaxInFlight = DefaultMaxInFlight
	cfg.Server.QueueTimeout = DefaultQueueTimeout

	cfg.Database.Driver = DriverSQLite
	cfg.Database.DSN = DefaultDSN
	cfg.Database.MaxOpenConns = DefaultMaxOpenConns
	cfg.Database.MaxIdleConns = DefaultMaxIdleConns
	cfg.Database.ConnMaxLifetime = DefaultConnMaxLifetime

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	return cfg
}

// Load reads the configuration once at startup. An empty path falls back to blogd.yaml
// in the working directory, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	v := newViper()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		v.SetConfigType(configType(path))

		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// newViper creates a viper instance seeded with defaults so every key can be overridden from the environment
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("age", defaults.Age)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("server.max_in_flight", defaults.Server.MaxInFlight)
	v.SetDefault("server.queue_timeout", defaults.Server.QueueTimeout)
	v.SetDefault("database.driver", defaults.Database.Driver)
	v.SetDefault("database.dsn", defaults.Database.DSN)
	v.SetDefault("database.max_open_conns", defaults.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaults.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", defaults.Database.ConnMaxLifetime)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	return v
}

// loadEnvFile exports variables from the env file without overriding the process environment
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToLoadEnvFile, err)
	}

	return nil
}

// configType derives the viper config type from the file extension
func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// normalize trims and lowercases enumerated values
func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Age < 0 || c.Age > MaxAge {
		return errors.ErrInvalidAge
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateDatabase()
}

// validateServer validates listener settings
func (c *Config) validateServer() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.ErrInvalidServerAddress
	}

	if c.Server.ShutdownTimeout < 0 {
		return errors.ErrInvalidShutdownTimeout
	}

	if c.Server.MaxInFlight <= 0 {
		return errors.ErrInvalidMaxInFlight
	}

	if c.Server.QueueTimeout < 0 {
		return errors.ErrInvalidQueueTimeout
	}

	return nil
}

// validateDatabase validates store and pool settings
func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.DSN == "" {
			return errors.ErrDatabaseDSNRequired
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: '%s' (must be 'sqlite' or 'memory')", errors.ErrInvalidDatabaseDriver, c.Database.Driver)
	}

	if c.Database.MaxOpenConns <= 0 {
		return errors.ErrInvalidMaxOpenConns
	}

	if c.Database.MaxIdleConns < 0 {
		return errors.ErrInvalidMaxIdleConns
	}

	return nil
}

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported persistence backends.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	HTTPPort            int
	CORSOrigins         []string
	LogLevel            string
	LogFormat           string
	HealthCheckSchedule string // cron spec for the store health monitor
	Database            Database
}

// Database holds connection and pool settings for the birthday store.
type Database struct {
	Driver   string
	Path     string // SQLite file
	User     string
	Password string
	Name     string
	Host     string
	Port     int

	PoolSize    int
	MaxOverflow int
	PoolTimeout time.Duration
	PoolRecycle time.Duration
}

// MaxOpenConns is the pool ceiling: the steady pool plus its overflow.
func (d Database) MaxOpenConns() int { return d.PoolSize + d.MaxOverflow }

// Load loads configuration from .env files and BDB_* environment variables,
// falling back to defaults.
func Load() (*Config, error) {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.SetEnvPrefix("BDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		HTTPPort:            v.GetInt("http_port"),
		CORSOrigins:         splitList(v.GetString("cors_origins")),
		LogLevel:            v.GetString("loglevel"),
		LogFormat:           strings.ToLower(v.GetString("log_format")),
		HealthCheckSchedule: v.GetString("healthcheck_schedule"),
		Database: Database{
			Driver:      strings.ToLower(v.GetString("db_driver")),
			Path:        v.GetString("db_path"),
			User:        v.GetString("db_user"),
			Password:    v.GetString("db_pass"),
			Name:        v.GetString("db_name"),
			Host:        v.GetString("db_host"),
			Port:        v.GetInt("db_port"),
			PoolSize:    v.GetInt("pool_size"),
			MaxOverflow: v.GetInt("pool_max_overflow"),
			PoolTimeout: time.Duration(v.GetInt("pool_timeout")) * time.Second,
			PoolRecycle: time.Duration(v.GetInt("pool_recycle")) * time.Second,
		},
	}

	if cfg.Database.Port == 0 {
		switch cfg.Database.Driver {
		case DriverMySQL:
			cfg.Database.Port = 3306
		case DriverPostgres:
			cfg.Database.Port = 5432
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", 8080)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("loglevel", "WARNING")
	v.SetDefault("log_format", "console")
	v.SetDefault("healthcheck_schedule", "@every 1m")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_path", "./birthdays.db")
	v.SetDefault("pool_size", 5)
	v.SetDefault("pool_max_overflow", 2)
	v.SetDefault("pool_timeout", 30)
	v.SetDefault("pool_recycle", 1800)
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid BDB_HTTP_PORT %d", c.HTTPPort)
	}

	db := c.Database
	switch db.Driver {
	case DriverSQLite:
		if db.Path == "" {
			return fmt.Errorf("BDB_DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL, DriverPostgres:
		var missing []string
		for key, val := range map[string]string{"BDB_DB_USER": db.User, "BDB_DB_NAME": db.Name, "BDB_DB_HOST": db.Host} {
			if val == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return fmt.Errorf("missing database environment for %s driver: %s", db.Driver, strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unsupported BDB_DB_DRIVER %q", db.Driver)
	}

	if db.PoolSize <= 0 {
		return fmt.Errorf("BDB_POOL_SIZE must be positive, got %d", db.PoolSize)
	}
	if db.MaxOverflow < 0 {
		return fmt.Errorf("BDB_POOL_MAX_OVERFLOW must not be negative, got %d", db.MaxOverflow)
	}
	if db.PoolTimeout <= 0 {
		return fmt.Errorf("BDB_POOL_TIMEOUT must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

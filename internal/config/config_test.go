package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // keep a developer's .env out of the test

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "WARNING", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "@every 1m", cfg.HealthCheckSchedule)

	db := cfg.Database
	assert.Equal(t, DriverSQLite, db.Driver)
	assert.Equal(t, "./birthdays.db", db.Path)
	assert.Equal(t, 5, db.PoolSize)
	assert.Equal(t, 2, db.MaxOverflow)
	assert.Equal(t, 7, db.MaxOpenConns())
	assert.Equal(t, 30*time.Second, db.PoolTimeout)
	assert.Equal(t, 30*time.Minute, db.PoolRecycle)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BDB_HTTP_PORT", "9090")
	t.Setenv("BDB_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("BDB_LOGLEVEL", "DEBUG")
	t.Setenv("BDB_DB_DRIVER", "MySQL")
	t.Setenv("BDB_DB_USER", "bday")
	t.Setenv("BDB_DB_PASS", "secret")
	t.Setenv("BDB_DB_NAME", "birthdays")
	t.Setenv("BDB_DB_HOST", "db.internal")
	t.Setenv("BDB_POOL_SIZE", "10")
	t.Setenv("BDB_POOL_MAX_OVERFLOW", "0")
	t.Setenv("BDB_POOL_TIMEOUT", "5")
	t.Setenv("BDB_POOL_RECYCLE", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "DEBUG", cfg.LogLevel)

	db := cfg.Database
	assert.Equal(t, DriverMySQL, db.Driver)
	assert.Equal(t, "bday", db.User)
	assert.Equal(t, "secret", db.Password)
	assert.Equal(t, "birthdays", db.Name)
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t, 3306, db.Port)
	assert.Equal(t, 10, db.MaxOpenConns())
	assert.Equal(t, 5*time.Second, db.PoolTimeout)
	assert.Equal(t, time.Minute, db.PoolRecycle)
}

func TestLoad_PostgresDefaultPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BDB_DB_DRIVER", "postgres")
	t.Setenv("BDB_DB_USER", "bday")
	t.Setenv("BDB_DB_NAME", "birthdays")
	t.Setenv("BDB_DB_HOST", "localhost")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"BDB_DB_DRIVER": "oracle"}, "unsupported BDB_DB_DRIVER"},
		{"missing network settings", map[string]string{"BDB_DB_DRIVER": "mysql", "BDB_DB_USER": "bday"}, "BDB_DB_HOST, BDB_DB_NAME"},
		{"zero pool", map[string]string{"BDB_POOL_SIZE": "0"}, "BDB_POOL_SIZE"},
		{"negative overflow", map[string]string{"BDB_POOL_MAX_OVERFLOW": "-1"}, "BDB_POOL_MAX_OVERFLOW"},
		{"bad port", map[string]string{"BDB_HTTP_PORT": "70000"}, "BDB_HTTP_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"COMMUNITY_APP_NAME":                os.Getenv("COMMUNITY_APP_NAME"),
		"COMMUNITY_APP_ENV":                 os.Getenv("COMMUNITY_APP_ENV"),
		"COMMUNITY_APP_PORT":                os.Getenv("COMMUNITY_APP_PORT"),
		"COMMUNITY_DATABASE_HOST":           os.Getenv("COMMUNITY_DATABASE_HOST"),
		"COMMUNITY_DATABASE_PORT":           os.Getenv("COMMUNITY_DATABASE_PORT"),
		"COMMUNITY_DATABASE_USER":           os.Getenv("COMMUNITY_DATABASE_USER"),
		"COMMUNITY_DATABASE_PASSWORD":       os.Getenv("COMMUNITY_DATABASE_PASSWORD"),
		"COMMUNITY_DATABASE_DBNAME":         os.Getenv("COMMUNITY_DATABASE_DBNAME"),
		"COMMUNITY_DATABASE_SSLMODE":        os.Getenv("COMMUNITY_DATABASE_SSLMODE"),
		"COMMUNITY_DATABASE_MAX_OPEN_CONNS": os.Getenv("COMMUNITY_DATABASE_MAX_OPEN_CONNS"),
		"COMMUNITY_DATABASE_MAX_IDLE_CONNS": os.Getenv("COMMUNITY_DATABASE_MAX_IDLE_CONNS"),
		"COMMUNITY_JWT_SECRET":              os.Getenv("COMMUNITY_JWT_SECRET"),
		"COMMUNITY_SWEEP_ENABLED":           os.Getenv("COMMUNITY_SWEEP_ENABLED"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "community-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "community", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.True(t, cfg.Sweep.Enabled)
	})

	t.Run("loads values from environment variables with COMMUNITY prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMMUNITY_APP_NAME", "test-app")
		os.Setenv("COMMUNITY_APP_PORT", "9000")
		os.Setenv("COMMUNITY_DATABASE_HOST", "testdb.local")
		os.Setenv("COMMUNITY_DATABASE_PORT", "5433")
		os.Setenv("COMMUNITY_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("sweeps can be disabled explicitly", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMMUNITY_SWEEP_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Sweep.Enabled)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMMUNITY_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("COMMUNITY_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"COMMUNITY_APP_ENV":           os.Getenv("COMMUNITY_APP_ENV"),
		"COMMUNITY_JWT_SECRET":        os.Getenv("COMMUNITY_JWT_SECRET"),
		"COMMUNITY_DATABASE_PASSWORD": os.Getenv("COMMUNITY_DATABASE_PASSWORD"),
		"COMMUNITY_DATABASE_SSLMODE":  os.Getenv("COMMUNITY_DATABASE_SSLMODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMMUNITY_APP_ENV", "production")
		os.Setenv("COMMUNITY_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COMMUNITY_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMMUNITY_APP_ENV", "production")
		os.Setenv("COMMUNITY_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("COMMUNITY_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COMMUNITY_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMMUNITY_APP_ENV", "production")
		os.Setenv("COMMUNITY_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("COMMUNITY_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COMMUNITY_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}

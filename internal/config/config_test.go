package config

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const testSecret = "test-secret-key-with-sufficient-length"

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			env: map[string]string{
				"DATABASE_URL": "postgres://localhost/blog",
				"JWT_SECRET":   testSecret,
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "postgres://localhost/blog", cfg.DatabaseURL)
				assert.Equal(t, testSecret, cfg.JWTSecret)
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
				assert.Equal(t, int32(10), cfg.DBMaxConns)
				assert.True(t, cfg.HSTS)
				assert.Empty(t, cfg.ExpectedHost)
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"DATABASE_URL":  "postgres://db/blog",
				"JWT_SECRET":    testSecret,
				"BACKEND_PORT":  "9000",
				"LOG_LEVEL":     "debug",
				"DB_MAX_CONNS":  "25",
				"EXPECTED_HOST": "api.example.com, example.com",
				"HSTS":          "false",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "9000", cfg.Port)
				assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
				assert.Equal(t, int32(25), cfg.DBMaxConns)
				assert.Equal(t, []string{"api.example.com", "example.com"}, cfg.ExpectedHost)
				assert.False(t, cfg.HSTS)
			},
		},
		{
			name:    "missing database url",
			env:     map[string]string{"JWT_SECRET": testSecret},
			wantErr: ErrDatabaseURLNotSet,
		},
		{
			name:    "missing jwt secret",
			env:     map[string]string{"DATABASE_URL": "postgres://localhost/blog"},
			wantErr: ErrJWTSecretNotSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "BACKEND_PORT", "LOG_LEVEL", "DB_MAX_CONNS", "EXPECTED_HOST", "HSTS"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := Load(New())
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "Load() error = %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadDatabaseURL_IgnoresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "  postgres://localhost/blog ")
	t.Setenv("JWT_SECRET", "")

	dsn, err := LoadDatabaseURL(New())
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/blog", dsn)

	_, err = Load(New())
	assert.ErrorIs(t, err, ErrJWTSecretNotSet)
}

func TestLoadDatabaseURL_Missing(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadDatabaseURL(New())
	assert.ErrorIs(t, err, ErrDatabaseURLNotSet)
}

func TestLoadJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	secret, err := LoadJWTSecret(New())
	require.NoError(t, err)
	assert.Equal(t, testSecret, secret)

	t.Setenv("JWT_SECRET", "")
	_, err = LoadJWTSecret(New())
	assert.ErrorIs(t, err, ErrJWTSecretNotSet)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("JWT_SECRET", testSecret)

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		t.Setenv("DB_MAX_CONNS", "")
		_, err := Load(New())
		assert.Error(t, err)
	})

	t.Run("non-positive pool size", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DB_MAX_CONNS", "0")
		_, err := Load(New())
		assert.Error(t, err)
	})
}

func TestBindFlags_FlagWinsOverEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("BACKEND_PORT", "9000")

	v := New()
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse([]string{"--backend-port", "7000", "--expected-host", "a.example.com,b.example.com"}))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.ExpectedHost)
}

func TestWeakSecret(t *testing.T) {
	assert.True(t, Config{JWTSecret: "short"}.WeakSecret())
	assert.False(t, Config{JWTSecret: testSecret}.WeakSecret())
}

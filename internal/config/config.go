// Package config loads process-wide settings from flags and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/auth"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Keys double as flag names; viper maps them to upper-case env vars
// with "-" replaced by "_" (db-max-conns -> DB_MAX_CONNS).
const (
	KeyDatabaseURL  = "database-url"
	KeyJWTSecret    = "jwt-secret"
	KeyPort         = "backend-port"
	KeyExpectedHost = "expected-host"
	KeyLogLevel     = "log-level"
	KeyDBMaxConns   = "db-max-conns"
	KeyHSTS         = "hsts"
)

var (
	ErrDatabaseURLNotSet = errors.New("DATABASE_URL environment variable is not set")
	ErrJWTSecretNotSet   = errors.New("JWT_SECRET environment variable is not set")
)

// Config holds everything the server needs at construction time.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	Port         string
	ExpectedHost []string
	LogLevel     zapcore.Level
	DBMaxConns   int32
	HSTS         bool
}

// New returns a viper instance reading settings from the environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDBMaxConns, 10)
	v.SetDefault(KeyHSTS, true)
	return v
}

// BindFlags registers the server flags on fs and binds them to v so that a
// flag set on the command line wins over the environment.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyPort, "8080", "port to listen on")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	fs.StringSlice(KeyExpectedHost, nil, "allowed Host header values (empty allows any)")
	fs.Int32(KeyDBMaxConns, 10, "maximum database connections in the pool")
	fs.Bool(KeyHSTS, true, "send Strict-Transport-Security")

	for _, key := range []string{KeyPort, KeyLogLevel, KeyExpectedHost, KeyDBMaxConns, KeyHSTS} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// LoadDatabaseURL returns the database DSN alone, for tools that never
// touch credentials.
func LoadDatabaseURL(v *viper.Viper) (string, error) {
	dsn := strings.TrimSpace(v.GetString(KeyDatabaseURL))
	if dsn == "" {
		return "", ErrDatabaseURLNotSet
	}
	return dsn, nil
}

// LoadJWTSecret returns the signing secret alone.
func LoadJWTSecret(v *viper.Viper) (string, error) {
	secret := v.GetString(KeyJWTSecret)
	if secret == "" {
		return "", ErrJWTSecretNotSet
	}
	return secret, nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	dsn, err := LoadDatabaseURL(v)
	if err != nil {
		return Config{}, err
	}
	secret, err := LoadJWTSecret(v)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DatabaseURL:  dsn,
		JWTSecret:    secret,
		Port:         v.GetString(KeyPort),
		ExpectedHost: splitHosts(v.GetStringSlice(KeyExpectedHost)),
		DBMaxConns:   v.GetInt32(KeyDBMaxConns),
		HSTS:         v.GetBool(KeyHSTS),
	}

	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", KeyDBMaxConns, cfg.DBMaxConns)
	}

	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// WeakSecret reports whether the JWT secret is below the recommended length.
func (c Config) WeakSecret() bool {
	return errors.Is(auth.ValidateSecret(c.JWTSecret), auth.ErrSecretTooShort)
}

// env vars arrive as a single comma separated string
func splitHosts(values []string) []string {
	var hosts []string
	for _, v := range values {
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
	}
	return hosts
}

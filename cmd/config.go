package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stepping_debug/internal/logger"
	"stepping_debug/internal/server"
	"stepping_debug/internal/service"
	"stepping_debug/internal/warehouse"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "STEPPING"

// Query backends selectable with warehouse.backend.
const (
	backendSQLite   = "sqlite"
	backendBigQuery = "bigquery"
)

// appConfig is everything main needs, resolved from file, .env and environment.
type appConfig struct {
	Server    server.Config
	Log       logger.Options
	DBPath    string
	Auth      service.AuthConfig
	Backend   string
	Warehouse warehouse.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.format", logger.FormatConsole)
	v.SetDefault("db.path", "app.db")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("warehouse.backend", backendSQLite)
	v.SetDefault("warehouse.endpoint", warehouse.DefaultEndpoint)
	v.SetDefault("warehouse.timeout", 30*time.Second)
}

// loadConfig reads configs/config.yml (optional) after loading .env files into the environment.
// STEPPING_* variables override file values, e.g. STEPPING_WAREHOUSE_BACKEND=bigquery.
func loadConfig(v *viper.Viper, configPaths []string, envFiles ...string) (appConfig, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(envFiles...)

	setDefaults(v)
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := appConfig{
		Server: server.Config{
			Port:         v.GetString("port"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
		},
		Log: logger.Options{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DBPath: v.GetString("db.path"),
		Auth: service.AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Backend: strings.ToLower(strings.TrimSpace(v.GetString("warehouse.backend"))),
		Warehouse: warehouse.Config{
			Endpoint:  v.GetString("warehouse.endpoint"),
			ProjectID: v.GetString("warehouse.project_id"),
			APIKey:    v.GetString("warehouse.api_key"),
			Token:     v.GetString("warehouse.token"),
			Timeout:   v.GetDuration("warehouse.timeout"),
		},
	}
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signing_key is required (or %s_AUTH_SIGNING_KEY)", envPrefix)
	}
	switch c.Backend {
	case backendSQLite:
	case backendBigQuery:
		if c.Warehouse.ProjectID == "" {
			return fmt.Errorf("warehouse.project_id is required for the %s backend", backendBigQuery)
		}
	default:
		return fmt.Errorf("unknown warehouse.backend %q (want %s or %s)", c.Backend, backendSQLite, backendBigQuery)
	}
	return nil
}

// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
var validDBDrivers = []string{"sqlite", "postgres"}

type Host struct {
	Port        int
	Domain      string
	CORSOrigins []string
	SSLEnabled  bool
}

type Security struct {
	// JWTSecret signs every token the service hands out. Rotating it
	// invalidates all outstanding sessions and confirmation links
	JWTSecret   string
	RateLimit   int
	SessionTTL  time.Duration
	TokenMaxAge time.Duration
}

type DB struct {
	Driver string
	DSN    string
}

type Mail struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	SubjectPrefix string
}

// Config is built once at startup and passed into constructors. Nothing
// outside this package reads viper directly
type Config struct {
	LogLevel string
	Host     Host
	Security Security
	DB       DB
	Mail     Mail
}

// Load prepares everything config-related so that the app can start
// working. It returns an error if something is critically wrong and the
// application can't run because of that
func Load() (*Config, error) {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("security.jwt_secret", "security_jwt_secret")
	v.BindEnv("security.rate_limit", "security_rate_limit")
	v.BindEnv("security.session_ttl_minutes", "security_session_ttl_minutes")
	v.BindEnv("security.token_max_age_seconds", "security_token_max_age_seconds")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.username", "mail_username")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.from", "mail_from")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("security.rate_limit", 10)
	v.SetDefault("security.session_ttl_minutes", 60)
	v.SetDefault("security.token_max_age_seconds", 3600)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.subject_prefix", "[Procurement App]")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return nil, errors.New("config.toml file is missing")
		}

		return nil, fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return nil, errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return nil, errors.New("invalid port provided")
	}

	if v.GetString("security.jwt_secret") == "" {
		return nil, errors.New("no jwt secret provided")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return nil, errors.New("rate limit must be bigger than 0")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return nil, errors.New("invalid db driver provided")
	}

	if v.GetString("mail.host") == "" {
		return nil, errors.New("no mail host provided")
	}

	if v.GetString("mail.from") == "" {
		return nil, errors.New("no mail sender address provided")
	}

	return &Config{
		LogLevel: v.GetString("app.log_level"),
		Host: Host{
			Port:        v.GetInt("host.port"),
			Domain:      v.GetString("host.domain"),
			CORSOrigins: v.GetStringSlice("host.cors_origins"),
			SSLEnabled:  v.GetBool("host.ssl.enabled"),
		},
		Security: Security{
			JWTSecret:   v.GetString("security.jwt_secret"),
			RateLimit:   v.GetInt("security.rate_limit"),
			SessionTTL:  time.Duration(v.GetInt("security.session_ttl_minutes")) * time.Minute,
			TokenMaxAge: time.Duration(v.GetInt("security.token_max_age_seconds")) * time.Second,
		},
		DB: DB{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		Mail: Mail{
			Host:          v.GetString("mail.host"),
			Port:          v.GetInt("mail.port"),
			Username:      v.GetString("mail.username"),
			Password:      v.GetString("mail.password"),
			From:          v.GetString("mail.from"),
			SubjectPrefix: v.GetString("mail.subject_prefix"),
		},
	}, nil
}

// BaseURL is the externally visible address confirmation links point at
func (h Host) BaseURL() string {
	scheme := "http"
	if h.SSLEnabled {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, h.Domain)
}

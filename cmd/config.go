package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// Config is read once at startup and never changed afterwards.
type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTAccessSecret   string
	JWTAccessExpires  time.Duration
	JWTRefreshSecret  string
	JWTRefreshExpires time.Duration
	JWTIssuer         string
	BcryptCost        int

	SuperAdminEmail    string
	SuperAdminPassword string

	StatusLogAttribution parcel.Attribution
	StatusReportSchedule string

	LogLevel     slog.Level
	LogFormat    string
	CookieSecure bool
}

// LoadConfig reads every key through getenv, applies defaults and validates the result.
// All problems are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var problems []error
	required := func(key string) string {
		v := get(key, "")
		if v == "" {
			problems = append(problems, errs.NewValueIsRequiredError(key))
		}
		return v
	}

	cfg := Config{
		AppEnv:   get("APP_ENV", "production"),
		HTTPPort: get("HTTP_PORT", "8080"),

		DBHost:     required("DB_HOST"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     required("DB_USER"),
		DBPassword: get("DB_PASSWORD", ""),
		DBName:     required("DB_NAME"),
		DBSslMode:  get("DB_SSLMODE", "disable"),

		JWTAccessSecret:  required("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: required("JWT_REFRESH_SECRET"),
		JWTIssuer:        get("JWT_ISSUER", "parceltrack"),

		SuperAdminEmail:    get("SUPER_ADMIN_EMAIL", ""),
		SuperAdminPassword: get("SUPER_ADMIN_PASSWORD", ""),

		StatusReportSchedule: get("STATUS_REPORT_SCHEDULE", ""),
		LogFormat:            strings.ToLower(get("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.JWTAccessExpires, err = parseDuration(get("JWT_ACCESS_EXPIRES", "1h")); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("JWT_ACCESS_EXPIRES", err))
	}
	if cfg.JWTRefreshExpires, err = parseDuration(get("JWT_REFRESH_EXPIRES", "30d")); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("JWT_REFRESH_EXPIRES", err))
	}
	if cfg.BcryptCost, err = strconv.Atoi(get("BCRYPT_SALT_ROUND", strconv.Itoa(bcrypt.DefaultCost))); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("BCRYPT_SALT_ROUND", err))
	} else if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, errs.NewValueIsOutOfRangeError("BCRYPT_SALT_ROUND", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if cfg.StatusLogAttribution, err = parcel.ParseAttribution(strings.ToLower(get("STATUS_LOG_ATTRIBUTION", ""))); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STATUS_LOG_ATTRIBUTION", err))
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}
	if cfg.CookieSecure, err = strconv.ParseBool(get("COOKIE_SECURE", "false")); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("COOKIE_SECURE", err))
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_FORMAT", fmt.Errorf("%q is neither json nor text", cfg.LogFormat)))
	}
	if cfg.JWTAccessSecret != "" && cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("JWT_REFRESH_SECRET", errors.New("must differ from JWT_ACCESS_SECRET")))
	}
	if (cfg.SuperAdminEmail == "") != (cfg.SuperAdminPassword == "") {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("SUPER_ADMIN_EMAIL", errors.New("set both SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD or neither")))
	}

	if len(problems) > 0 {
		return Config{}, errors.Join(problems...)
	}
	return cfg, nil
}

// Development reports whether error details may be sent to clients.
func (c Config) Development() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// parseDuration accepts time.ParseDuration syntax plus a whole number of days such as "30d".
func parseDuration(s string) (time.Duration, error) {
	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

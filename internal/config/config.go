// Package config reads the configuration of the account book from the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

type Config struct {
	// HTTP server
	APIURL           *url.URL
	Port             string
	GinMode          string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Database
	DBDriver string
	DBDSN    string
	DataDir  string

	// Logging
	LogFormat string
	LogLevel  zerolog.Level

	// Reports
	CurrencyLocale language.Tag

	// AMQP change events. Publishing is disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	problems []string
}

// LoadDotEnv reads environment variables from the files, ".env" by default.
// Variables that are already set are not overwritten. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

// Load reads the configuration from the environment. Values that cannot be
// parsed are reported by Validate.
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    os.Getenv("DB_DSN"),
		DataDir:  getEnv("DATA_DIR", "data"),

		LogFormat: os.Getenv("LOG_FORMAT"),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "family-account-book"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger-changes"),
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		cfg.problems = append(cfg.problems, "environment variable API_URL must be set")
	} else if u, err := url.Parse(apiURL); err != nil {
		cfg.problems = append(cfg.problems, fmt.Sprintf("invalid API_URL '%s': %v", apiURL, err))
	} else {
		cfg.APIURL = u
	}

	cfg.LogLevel = zerolog.InfoLevel
	if cfg.GinMode == "debug" {
		cfg.LogLevel = zerolog.DebugLevel
	}
	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		l, err := zerolog.ParseLevel(level)
		if err != nil {
			cfg.problems = append(cfg.problems, fmt.Sprintf("invalid LOG_LEVEL '%s': %v", level, err))
		} else {
			cfg.LogLevel = l
		}
	}

	locale := getEnv("CURRENCY_LOCALE", "zh-CN")
	tag, err := language.Parse(locale)
	if err != nil {
		cfg.problems = append(cfg.problems, fmt.Sprintf("invalid CURRENCY_LOCALE '%s': %v", locale, err))
	}
	cfg.CurrencyLocale = tag

	return cfg
}

// HumanLogs reports if logs are written for humans instead of as JSON.
// This is the default in debug mode.
func (c *Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}

	return c.LogFormat == "human"
}

// Validate validates the configuration and returns an error listing all problems
func (c *Config) Validate() error {
	problems := append([]string{}, c.problems...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be 'human' or 'json'", c.LogFormat))
	}

	switch c.DBDriver {
	case "sqlite":
		if c.DBDSN == "" && c.DataDir == "" {
			problems = append(problems, "DATA_DIR cannot be empty when using the sqlite driver without DB_DSN")
		}
	case "mysql":
		if c.DBDSN == "" {
			problems = append(problems, "DB_DSN is required when using the mysql driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be 'sqlite' or 'mysql'", c.DBDriver))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

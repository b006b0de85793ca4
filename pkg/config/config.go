// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config is the configuration of the service.
type Config struct {
	GinMode          string        // GIN_MODE, "release" if unset
	LogFormat        string        // LOG_FORMAT, "human" or "json"
	CORSAllowOrigins []string      // CORS_ALLOW_ORIGINS, separated by whitespace
	EnablePprof      bool          // ENABLE_PPROF
	APIURL           *url.URL      // API_URL, the external URL of the API
	DatabasePath     string        // DATABASE_PATH
	JWTSecret        []byte        // JWT_SECRET
	RequestTimeout   time.Duration // REQUEST_TIMEOUT
	CacheTTL         time.Duration // CACHE_TTL, 0 disables the cache
	CacheSize        int           // CACHE_SIZE
	Locale           language.Tag  // LOCALE
	Port             string        // PORT
}

// Load reads the configuration from the environment. Variables from the
// env files are added first. Missing env files are ignored, without files
// ".env" is read if it exists.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error reading env file: %w", err)
	}

	var errs []error
	c := Config{
		GinMode:          getEnv("GIN_MODE", "release"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
		DatabasePath:     getEnv("DATABASE_PATH", "data/finance.db"),
		JWTSecret:        []byte(os.Getenv("JWT_SECRET")),
		Port:             getEnv("PORT", "8080"),
	}

	// Human readable logs are the default for debugging only
	c.LogFormat = getEnv("LOG_FORMAT", "json")
	if _, ok := os.LookupEnv("LOG_FORMAT"); !ok && c.GinMode == "debug" {
		c.LogFormat = "human"
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		errs = append(errs, errors.New("environment variable API_URL must be set"))
	} else if u, err := url.Parse(apiURL); err != nil {
		errs = append(errs, fmt.Errorf("API_URL is not a valid URL: %w", err))
	} else {
		c.APIURL = u
	}

	var err error
	if c.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}

	if c.CacheTTL, err = getDuration("CACHE_TTL", 30*time.Second); err != nil {
		errs = append(errs, err)
	}

	if c.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1000")); err != nil {
		errs = append(errs, fmt.Errorf("CACHE_SIZE is not a number: %w", err))
	}

	if c.Locale, err = language.Parse(getEnv("LOCALE", "pt-BR")); err != nil {
		errs = append(errs, fmt.Errorf("LOCALE is not a valid language tag: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return c, c.Validate()
}

// Validate checks values that cannot be checked while parsing.
func (c Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes long"))
	}

	if c.LogFormat != "human" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be human or json, not %q", c.LogFormat))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, not %q", c.Port))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}

	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL cannot be negative"))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH cannot be empty"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}

	return d, nil
}

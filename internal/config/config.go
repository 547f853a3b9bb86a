package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	APIBaseURL   string
	SessionPath  string
	TaxonomyPath string
	Port         int
	Timeout      time.Duration
	ProxyURL     string
	Insecure     bool

	// Basic auth for the local API; empty disables it.
	WebUsername string
	WebPassword string
}

const (
	defaultAPIBaseURL = "http://localhost:8080"
	defaultPort       = 8090
	defaultTimeout    = 30 * time.Second
)

// Load reads .env (if present) and then the JOBBOARD_* environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] ignoring .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for unset
// or malformed values.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		APIBaseURL:   getenv("JOBBOARD_API_URL"),
		SessionPath:  getenv("JOBBOARD_SESSION"),
		TaxonomyPath: getenv("JOBBOARD_TAXONOMY"),
		ProxyURL:     getenv("JOBBOARD_PROXY"),
		WebUsername:  getenv("JOBBOARD_WEB_USERNAME"),
		WebPassword:  getenv("JOBBOARD_WEB_PASSWORD"),
		Port:         defaultPort,
		Timeout:      defaultTimeout,
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.SessionPath == "" {
		cfg.SessionPath = defaultSessionPath()
	}
	if v := getenv("JOBBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		} else {
			log.Printf("[config] invalid JOBBOARD_PORT %q, using %d", v, defaultPort)
		}
	}
	if v := getenv("JOBBOARD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			log.Printf("[config] invalid JOBBOARD_TIMEOUT %q, using %s", v, defaultTimeout)
		}
	}
	if v := getenv("JOBBOARD_INSECURE"); v != "" {
		cfg.Insecure, _ = strconv.ParseBool(v)
	}
	return cfg
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home, _ = os.Getwd()
	}
	return filepath.Join(home, ".jobboard", "session.json")
}

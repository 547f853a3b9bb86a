package config

import (
	"strings"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(env(nil))
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Port != defaultPort || cfg.Timeout != defaultTimeout || cfg.Insecure {
		t.Errorf("cfg = %+v", cfg)
	}
	if !strings.HasSuffix(cfg.SessionPath, "session.json") {
		t.Errorf("SessionPath = %q", cfg.SessionPath)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(env(map[string]string{
		"JOBBOARD_API_URL":  "https://api.example.com",
		"JOBBOARD_SESSION":  "/tmp/s.json",
		"JOBBOARD_TAXONOMY": "tax.yaml",
		"JOBBOARD_PORT":     "9000",
		"JOBBOARD_TIMEOUT":  "5s",
		"JOBBOARD_PROXY":    "http://proxy:3128",
		"JOBBOARD_INSECURE": "true",

		"JOBBOARD_WEB_USERNAME": "admin",
		"JOBBOARD_WEB_PASSWORD": "pw",
	}))

	want := Config{
		APIBaseURL:   "https://api.example.com",
		SessionPath:  "/tmp/s.json",
		TaxonomyPath: "tax.yaml",
		Port:         9000,
		Timeout:      5 * time.Second,
		ProxyURL:     "http://proxy:3128",
		Insecure:     true,
		WebUsername:  "admin",
		WebPassword:  "pw",
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestFromEnvMalformedValues(t *testing.T) {
	cfg := FromEnv(env(map[string]string{
		"JOBBOARD_PORT":    "http",
		"JOBBOARD_TIMEOUT": "-1s",
	}))
	if cfg.Port != defaultPort || cfg.Timeout != defaultTimeout {
		t.Errorf("cfg = %+v", cfg)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"TRACKPASS_API_URL", "TRACKPASS_HTTP_TIMEOUT", "GOOGLE_API_KEY", "VITE_GOOGLE_API_KEY",
		"DASHBOARD_ADDR", "DASHBOARD_DB_PATH", "ROUTES_POLL_INTERVAL", "MANAGER_ROLE", "SNOWFLAKE_NODE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIURL != DefaultAPIURL || cfg.Addr != DefaultAddr || cfg.DBPath != DefaultDBPath {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.PollInterval != 15*time.Second || cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("unexpected durations: poll=%s timeout=%s", cfg.PollInterval, cfg.HTTPTimeout)
	}
	if cfg.ManagerRole != "GESTOR" || cfg.NodeID != 1 {
		t.Errorf("unexpected role/node: %q %d", cfg.ManagerRole, cfg.NodeID)
	}
}

func TestLoadGoogleKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("VITE_GOOGLE_API_KEY", "vite-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GoogleAPIKey != "vite-key" {
		t.Errorf("GoogleAPIKey = %q, want vite-key", cfg.GoogleAPIKey)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ROUTES_POLL_INTERVAL", "soon"},
		{"TRACKPASS_HTTP_TIMEOUT", "-1s"},
		{"SNOWFLAKE_NODE", "4096"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	t.Setenv("TRACKPASS_API_URL", "https://api.trackpass.example/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "https://api.trackpass.example" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIURL       = "http://localhost:8080"
	DefaultHTTPTimeout  = 15 * time.Second
	DefaultAddr         = ":7070"
	DefaultDBPath       = "dashboard.db"
	DefaultPollInterval = 15 * time.Second
	DefaultManagerRole  = "GESTOR"
)

type Config struct {
	APIURL       string
	HTTPTimeout  time.Duration
	GoogleAPIKey string
	Addr         string
	DBPath       string
	PollInterval time.Duration
	ManagerRole  string
	NodeID       int64
}

// Load reads the configuration from the environment, which by then holds
// either the .env file or the production parameters.
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:       strings.TrimRight(getEnv("TRACKPASS_API_URL", DefaultAPIURL), "/"),
		GoogleAPIKey: getEnv("GOOGLE_API_KEY", os.Getenv("VITE_GOOGLE_API_KEY")),
		Addr:         getEnv("DASHBOARD_ADDR", DefaultAddr),
		DBPath:       getEnv("DASHBOARD_DB_PATH", DefaultDBPath),
		ManagerRole:  strings.ToUpper(getEnv("MANAGER_ROLE", DefaultManagerRole)),
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("TRACKPASS_HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getDuration("ROUTES_POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}

	node := getEnv("SNOWFLAKE_NODE", "1")
	cfg.NodeID, err = strconv.ParseInt(node, 10, 64)
	if err != nil || cfg.NodeID < 0 || cfg.NodeID > 1023 {
		return nil, fmt.Errorf("SNOWFLAKE_NODE must be between 0 and 1023, got %q", node)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as 15s, got %q", key, raw)
	}
	return d, nil
}

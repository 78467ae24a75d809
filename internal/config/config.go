package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"

	"activitylog/internal/log"
)

// Data backends.
const (
	BackendCSV    = "csv"
	BackendSheets = "sheets"
)

type Config struct {
	// HTTP Server
	Port string `env:"PORT" envDefault:"8081"`

	// Input
	DataBackend string `env:"DATA_BACKEND" envDefault:"csv"`
	CSVPath     string `env:"ACTIVITY_CSV_PATH" envDefault:"dataset/SELMA_Activity Log.csv"`

	// Google Sheets
	GoogleSpreadsheetID      string `env:"GOOGLE_SPREADSHEET_ID"`
	GoogleSheetRange         string `env:"GOOGLE_SHEET_RANGE" envDefault:"Activity Log"`
	GoogleServiceAccountFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`

	// Aggregation
	PositiveMoods     []string `env:"POSITIVE_MOODS" envSeparator:"," envDefault:"Excited,Happy,Refreshed,Overjoyed,Chill,Satisfied,Great,Productive"`
	CategoryRulesFile string   `env:"CATEGORY_RULES_FILE"`

	// Dashboard
	ReportCacheTTL        time.Duration `env:"REPORT_CACHE_TTL" envDefault:"1m"`
	ReportRefreshInterval time.Duration `env:"REPORT_REFRESH_INTERVAL" envDefault:"0s"`
	ChartAssetsHost       string        `env:"CHART_ASSETS_HOST" envDefault:"https://go-echarts.github.io/go-echarts-assets/assets/"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	moods := c.PositiveMoods[:0]
	for _, m := range c.PositiveMoods {
		if m = strings.TrimSpace(m); m != "" {
			moods = append(moods, m)
		}
	}
	c.PositiveMoods = moods
	c.DataBackend = strings.ToLower(strings.TrimSpace(c.DataBackend))
}

// Level returns the parsed log level; Validate reports bad values.
func (c *Config) Level() slog.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendCSV:
		if strings.TrimSpace(c.CSVPath) == "" {
			errors = append(errors, "activity CSV path cannot be empty when using csv backend")
		}
	case BackendSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetRange == "" {
			errors = append(errors, "Google sheet range is required when using sheets backend")
		}
		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]", c.DataBackend, BackendCSV, BackendSheets))
	}

	if len(c.PositiveMoods) == 0 {
		errors = append(errors, "positive mood list cannot be empty")
	}

	if c.CategoryRulesFile != "" {
		if _, err := os.Stat(c.CategoryRulesFile); err != nil {
			errors = append(errors, fmt.Sprintf("category rules file is not readable: %v", err))
		}
	}

	if c.ReportCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must not be negative", c.ReportCacheTTL))
	} else if c.ReportCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must be at most 24 hours", c.ReportCacheTTL))
	}

	if c.ReportRefreshInterval < 0 {
		errors = append(errors, fmt.Sprintf("invalid report refresh interval %v: must not be negative", c.ReportRefreshInterval))
	} else if c.ReportRefreshInterval > 0 && c.ReportRefreshInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid report refresh interval %v: must be at least 1s", c.ReportRefreshInterval))
	}

	if c.RateLimitPerMinute < 0 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must not be negative", c.RateLimitPerMinute))
	}

	if u, err := url.Parse(c.ChartAssetsHost); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid chart assets host '%s': must be an absolute URL", c.ChartAssetsHost))
	} else if !strings.HasSuffix(u.Path, "/") {
		errors = append(errors, fmt.Sprintf("invalid chart assets host '%s': must end with '/'", c.ChartAssetsHost))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

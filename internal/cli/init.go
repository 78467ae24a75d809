// Package cli wires configuration, logging and the activity source into
// the serve and summary commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"activitylog/internal/config"
	"activitylog/internal/core"
	"activitylog/internal/log"
	"activitylog/internal/sources"
	"activitylog/internal/sources/csvfile"
	"activitylog/internal/sources/google"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// runtime is what every command needs once configuration is accepted.
type runtime struct {
	cfg     *config.Config
	logger  *log.Logger
	source  sources.RecordReader
	summary core.SummaryOptions
}

// setup loads and validates configuration, applies flag overrides and
// opens the configured source. Logs go to the command's stderr.
func setup(cmd *cobra.Command, override func(*config.Config)) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := SetupLogger(cfg, cmd.ErrOrStderr())

	opts, err := SummaryOptions(cfg)
	if err != nil {
		logger.LogError(cmd.Context(), "Category rules rejected", err, log.OpValidate, nil)
		return nil, err
	}

	source, err := NewSource(cmd.Context(), cfg)
	if err != nil {
		logger.LogError(cmd.Context(), "Failed to initialize activity source", err, log.OpStartup, nil)
		return nil, err
	}
	logger.DebugContext(cmd.Context(), "Activity source ready", log.FieldSource, cfg.DataBackend)

	return &runtime{cfg: cfg, logger: logger, source: source, summary: opts}, nil
}

// SetupLogger builds the application logger at the configured level and
// makes it the slog default.
func SetupLogger(cfg *config.Config, out io.Writer) *log.Logger {
	logger := log.New(log.Config{
		Level:     cfg.Level(),
		Component: log.ComponentApp,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// NewSource opens the backend named by DATA_BACKEND.
func NewSource(ctx context.Context, cfg *config.Config) (sources.RecordReader, error) {
	switch cfg.DataBackend {
	case config.BackendSheets:
		client, err := google.New(ctx, google.Options{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			ReadRange:       cfg.GoogleSheetRange,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("google sheets source: %w", err)
		}
		return client, nil
	case config.BackendCSV:
		return csvfile.New(cfg.CSVPath), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// SummaryOptions turns configuration into aggregation options, reading
// the category rules file when one is set.
func SummaryOptions(cfg *config.Config) (core.SummaryOptions, error) {
	opts := core.DefaultSummaryOptions()
	if len(cfg.PositiveMoods) > 0 {
		opts.PositiveMoods = cfg.PositiveMoods
	}
	if cfg.CategoryRulesFile == "" {
		return opts, nil
	}

	f, err := os.Open(cfg.CategoryRulesFile)
	if err != nil {
		return core.SummaryOptions{}, fmt.Errorf("open category rules: %w", err)
	}
	defer f.Close()

	rules, err := core.LoadCategoryRules(f)
	if err != nil {
		return core.SummaryOptions{}, fmt.Errorf("category rules %s: %w", cfg.CategoryRulesFile, err)
	}
	opts.Rules = rules
	return opts, nil
}

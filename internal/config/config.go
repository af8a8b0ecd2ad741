// Package config holds the command-line surface and logger setup.
package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI is the full flag and environment surface, parsed by kong.
type CLI struct {
	DB          string `help:"Path to the field boundary database." env:"CROP_TERMINAL_DB"`
	AnalysisURL string `help:"Base URL of the field analysis service." env:"CROP_TERMINAL_ANALYSIS_URL" default:"https://analysis.croplens.io"`
	GeocodeURL  string `help:"Base URL of the Nominatim search endpoint." env:"CROP_TERMINAL_GEOCODE_URL"`
	Address     string `help:"Open the map centered on this address."`
	Debug       bool   `help:"Write debug logs to the log file." env:"CROP_TERMINAL_DEBUG"`
	LogFile     string `help:"Debug log destination." env:"CROP_TERMINAL_LOG" default:"crop-terminal.log"`
}

// InitLogger installs the global zap logger. The TUI owns the
// terminal, so logs go to a file; without --debug they are dropped.
func InitLogger(debug bool, path string) error {
	if !debug {
		zap.ReplaceGlobals(zap.NewNop())
		return nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

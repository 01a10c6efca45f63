package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}
	validLogFormats = []string{"console", "json"}
)

// validateConfig performs validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	l := config.Layout
	if l.MinWeightPercent <= 0 || l.MinWeightPercent >= 50 {
		validationErrors = append(validationErrors, "layout.min_weight_percent must be between 0 and 50 (exclusive)")
	}
	if l.HandleSize < 0 {
		validationErrors = append(validationErrors, "layout.handle_size must be non-negative")
	}
	if l.HoverThrottleMs < 0 {
		validationErrors = append(validationErrors, "layout.hover_throttle_ms must be non-negative")
	}
	if l.ResizeThrottleMs < 0 {
		validationErrors = append(validationErrors, "layout.resize_throttle_ms must be non-negative")
	}
	if l.HoverExitDebounceMs < 0 {
		validationErrors = append(validationErrors, "layout.hover_exit_debounce_ms must be non-negative")
	}
	if l.MagnifiedInsetPercent < 0 || l.MagnifiedInsetPercent > 45 {
		validationErrors = append(validationErrors, "layout.magnified_inset_percent must be between 0 and 45")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !slices.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: %s", strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: %s", strings.Join(validLogFormats, ", ")))
	}
	return validationErrors
}

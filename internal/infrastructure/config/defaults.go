package config

// Default configuration constants
const (
	// Layout defaults
	defaultMinWeightPercent      = 10.0 // percent of the container
	defaultHandleSize            = 6.0  // pixels
	defaultHoverThrottleMs       = 30
	defaultResizeThrottleMs      = 10
	defaultHoverExitDebounceMs   = 50
	defaultMagnifiedInsetPercent = 0.0

	// Logging defaults
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			MinWeightPercent:      defaultMinWeightPercent,
			HandleSize:            defaultHandleSize,
			HoverThrottleMs:       defaultHoverThrottleMs,
			ResizeThrottleMs:      defaultResizeThrottleMs,
			HoverExitDebounceMs:   defaultHoverExitDebounceMs,
			MagnifiedInsetPercent: defaultMagnifiedInsetPercent,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

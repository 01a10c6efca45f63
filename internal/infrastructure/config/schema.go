package config

// Config represents the complete tiler configuration.
type Config struct {
	Layout  LayoutConfig  `mapstructure:"layout" toml:"layout" json:"layout" jsonschema:"description=Layout engine tuning"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging" jsonschema:"description=Logging output"`
}

// LayoutConfig tunes the layout model: resize limits, handle geometry and
// the pacing of pointer-driven updates.
type LayoutConfig struct {
	// Smallest share of a container a sibling can be resized to, in percent.
	MinWeightPercent float64 `mapstructure:"min_weight_percent" toml:"min_weight_percent" json:"min_weight_percent" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=50,default=10"`
	// Thickness of resize handles in pixels.
	HandleSize float64 `mapstructure:"handle_size" toml:"handle_size" json:"handle_size" jsonschema:"minimum=0,default=6"`
	// Minimum interval between drag-hover updates.
	HoverThrottleMs int `mapstructure:"hover_throttle_ms" toml:"hover_throttle_ms" json:"hover_throttle_ms" jsonschema:"minimum=0,default=30"`
	// Minimum interval between resize updates.
	ResizeThrottleMs int `mapstructure:"resize_throttle_ms" toml:"resize_throttle_ms" json:"resize_throttle_ms" jsonschema:"minimum=0,default=10"`
	// Delay before a drag leaving every target clears the pending move.
	HoverExitDebounceMs int `mapstructure:"hover_exit_debounce_ms" toml:"hover_exit_debounce_ms" json:"hover_exit_debounce_ms" jsonschema:"minimum=0,default=50"`
	// Margin kept around a magnified leaf on each side, in percent of the container.
	MagnifiedInsetPercent float64 `mapstructure:"magnified_inset_percent" toml:"magnified_inset_percent" json:"magnified_inset_percent" jsonschema:"minimum=0,maximum=45,default=0"`
}

// LoggingConfig holds logging output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled,default=info"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
}

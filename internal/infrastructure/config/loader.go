package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	explicit  bool
}

// NewManager creates a manager that looks for config.toml in the XDG config
// directory, then in the working directory.
func NewManager() (*Manager, error) {
	v := newViper()
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	if err := bindEnv(v); err != nil {
		return nil, err
	}
	return &Manager{viper: v}, nil
}

// NewManagerForFile creates a manager reading the given file.
// A missing file is not an error; defaults apply.
func NewManagerForFile(path string) (*Manager, error) {
	if path == "" {
		return NewManager()
	}
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := bindEnv(v); err != nil {
		return nil, err
	}
	return &Manager{viper: v, explicit: true}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TILER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindEnv adds the short logging variables shared with logging.NewFromEnv.
// Everything else maps automatically, e.g. TILER_LAYOUT_HANDLE_SIZE.
func bindEnv(v *viper.Viper) error {
	if err := v.BindEnv("logging.level", "TILER_LOGGING_LEVEL", "TILER_LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind TILER_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TILER_LOGGING_FORMAT", "TILER_LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind TILER_LOG_FORMAT: %w", err)
	}
	return nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()
	if err := m.readConfigFile(); err != nil {
		return err
	}
	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || (m.explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configFile, _ = GetConfigFile()
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	normalizeConfig(config)
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used,
// empty when running on defaults.
func (m *Manager) GetConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.explicit {
		if _, err := os.Stat(m.viper.ConfigFileUsed()); err != nil {
			return ""
		}
	}
	return m.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("layout.min_weight_percent", defaults.Layout.MinWeightPercent)
	m.viper.SetDefault("layout.handle_size", defaults.Layout.HandleSize)
	m.viper.SetDefault("layout.hover_throttle_ms", defaults.Layout.HoverThrottleMs)
	m.viper.SetDefault("layout.resize_throttle_ms", defaults.Layout.ResizeThrottleMs)
	m.viper.SetDefault("layout.hover_exit_debounce_ms", defaults.Layout.HoverExitDebounceMs)
	m.viper.SetDefault("layout.magnified_inset_percent", defaults.Layout.MagnifiedInsetPercent)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// WriteDefault writes the default configuration to path unless a file
// already exists there.
func WriteDefault(path string) error {
	if path == "" {
		var err error
		if path, err = GetConfigFile(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}

	m := &Manager{viper: viper.New()}
	m.setDefaults()
	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Chmod(path, filePerm)
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   LoggerConfig   `toml:"logger"`
	Editor   EditorConfig   `toml:"editor"`
	Analysis AnalysisConfig `toml:"analysis"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	LogLevel    string `toml:"log_level"`
	LogFilePath string `toml:"log_file"` // empty means DefaultLogFileName in the working dir
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// AnalysisConfig holds analysis-service settings.
type AnalysisConfig struct {
	BaseURL         string `toml:"base_url"`
	DebounceMs      int    `toml:"debounce_ms"`
	RequestTimeoutS int    `toml:"timeout_s"`
	DetectAI        bool   `toml:"detect_ai"` // also run the AI detector alongside grammar checks
}

// Debounce returns the configured debounce window.
func (a AnalysisConfig) Debounce() time.Duration {
	return time.Duration(a.DebounceMs) * time.Millisecond
}

// RequestTimeout returns the configured per-request timeout.
func (a AnalysisConfig) RequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeoutS) * time.Second
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			LogLevel: "info",
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: DefaultSystemClipboard,
		},
		Analysis: AnalysisConfig{
			BaseURL:         DefaultAnalysisBaseURL,
			DebounceMs:      DefaultDebounceMs,
			RequestTimeoutS: DefaultRequestTimeoutS,
			DetectAI:        false,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file. A missing
// file is not an error; defaults apply. The returned config is seeded with
// defaults so fields the file omits (booleans in particular) keep their
// default values.
func loadFromFile(filePath string) (*Config, error) {
	cfg := NewDefaultConfig()
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if _, err := toml.DecodeFile(filePath, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // 0 is allowed
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Analysis.BaseURL == "" {
		c.Analysis.BaseURL = defaults.Analysis.BaseURL
	}
	if c.Analysis.DebounceMs <= 0 {
		c.Analysis.DebounceMs = defaults.Analysis.DebounceMs
	}
	if c.Analysis.RequestTimeoutS <= 0 {
		c.Analysis.RequestTimeoutS = defaults.Analysis.RequestTimeoutS
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. Called once from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			if configDir, err := os.UserConfigDir(); err == nil {
				effectivePath = filepath.Join(configDir, AppName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				cfg.merge(fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// merge copies set values from a file config over the defaults.
func (c *Config) merge(fileCfg *Config) {
	if fileCfg.Logger.LogLevel != "" {
		c.Logger.LogLevel = fileCfg.Logger.LogLevel
	}
	if fileCfg.Logger.LogFilePath != "" {
		c.Logger.LogFilePath = fileCfg.Logger.LogFilePath
	}
	if fileCfg.Editor.TabWidth > 0 {
		c.Editor.TabWidth = fileCfg.Editor.TabWidth
	}
	if fileCfg.Editor.ScrollOff >= 0 {
		c.Editor.ScrollOff = fileCfg.Editor.ScrollOff
	}
	c.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
	if fileCfg.Analysis.BaseURL != "" {
		c.Analysis.BaseURL = fileCfg.Analysis.BaseURL
	}
	if fileCfg.Analysis.DebounceMs > 0 {
		c.Analysis.DebounceMs = fileCfg.Analysis.DebounceMs
	}
	if fileCfg.Analysis.RequestTimeoutS > 0 {
		c.Analysis.RequestTimeoutS = fileCfg.Analysis.RequestTimeoutS
	}
	c.Analysis.DetectAI = fileCfg.Analysis.DetectAI
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called; that is a programming error in main.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

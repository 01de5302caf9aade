// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	ScrollOff      *int
	BaseURL        *string
	DebounceMs     *int
	DetectAI       *bool
	NoClipboard    *bool
}

// DefineFlags sets up the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file - Overrides config file")
	f.TabWidth = flag.Int("tabwidth", 0, "Number of spaces per tab - Overrides config file")
	f.ScrollOff = flag.Int("scrolloff", -1, "Lines of context above/below cursor - Overrides config file")
	f.BaseURL = flag.String("service", "", "Base URL of the analysis service - Overrides config file")
	f.DebounceMs = flag.Int("debounce", 0, "Analysis debounce in milliseconds - Overrides config file")
	f.DetectAI = flag.Bool("detect-ai", false, "Also run AI-likelihood detection - Overrides config file")
	f.NoClipboard = flag.Bool("no-clipboard", false, "Disable system clipboard integration")
}

// ParseFlags parses the defined command-line flags.
// It returns the remaining non-flag arguments (the file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they
// were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil && *f.LogFilePath != "" {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "tabwidth":
			if f.TabWidth != nil && *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if f.ScrollOff != nil && *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "service":
			if f.BaseURL != nil && *f.BaseURL != "" {
				cfg.Analysis.BaseURL = *f.BaseURL
			}
		case "debounce":
			if f.DebounceMs != nil && *f.DebounceMs > 0 {
				cfg.Analysis.DebounceMs = *f.DebounceMs
			}
		case "detect-ai":
			if f.DetectAI != nil {
				cfg.Analysis.DetectAI = *f.DetectAI
			}
		case "no-clipboard":
			if f.NoClipboard != nil && *f.NoClipboard {
				cfg.Editor.SystemClipboard = false
			}
		}
	})
}

package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/calperm/calperm/internal/layout"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/termcap"
)

// Config represents the entire user configuration file.
type Config struct {
	Version  int           `yaml:"version"`
	Exchange ExchangePrefs `yaml:"exchange"`
	UI       UIPrefs       `yaml:"ui"`
	Logging  LoggingPrefs  `yaml:"logging"`
}

// ExchangePrefs configures the admin API client.
type ExchangePrefs struct {
	Endpoint       string `yaml:"endpoint,omitempty"`        // Admin API host; empty uses the public cloud
	Tenant         string `yaml:"tenant,omitempty"`          // Tenant domain or ID; empty derives it from the admin UPN
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"` // Per-request timeout
	MaxRetries     int    `yaml:"max_retries"`               // Retries for read-only cmdlets
}

// UIPrefs configures the console.
type UIPrefs struct {
	ColorMode         string `yaml:"color_mode"`                   // auto, none, native, 4bit, 8bit
	Border            string `yaml:"border"`                       // normal, rounded, double, thick, ascii
	DefaultForeground string `yaml:"default_foreground,omitempty"` // Replaces unknown colors
	AppName           string `yaml:"app_name,omitempty"`           // Window title prefix
}

// LoggingPrefs configures diagnostics and the audit log.
type LoggingPrefs struct {
	Level       string `yaml:"level,omitempty"`     // debug, info, warn, error; empty is silent
	Directory   string `yaml:"directory,omitempty"` // Audit log directory; empty uses <config dir>/logs
	File        string `yaml:"file"`                // Audit log name, ".log" appended when bare
	Retries     int    `yaml:"retries"`             // Write attempts per audit line
	Timestamp   bool   `yaml:"timestamp"`           // Prefix audit lines with the time
	DebugToFile bool   `yaml:"debug_to_file"`       // Send diagnostics to <directory>/calperm-debug.log
}

const (
	// DefaultTimeoutSeconds is the admin API request timeout
	DefaultTimeoutSeconds = 60
	// DefaultMaxRetries matches the client's retry default
	DefaultMaxRetries = 2
	// DefaultAuditFile is the audit log name
	DefaultAuditFile = "calendar-permissions"
	// DebugLogFile is the diagnostic log name used with debug_to_file
	DebugLogFile = "calperm-debug.log"
)

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Exchange: ExchangePrefs{
			TimeoutSeconds: DefaultTimeoutSeconds,
			MaxRetries:     DefaultMaxRetries,
		},
		UI: UIPrefs{
			ColorMode:         "auto",
			Border:            "double",
			DefaultForeground: style.DefaultForeground,
			AppName:           opstate.DefaultAppName,
		},
		Logging: LoggingPrefs{
			File:      DefaultAuditFile,
			Retries:   style.DefaultLogRetries,
			Timestamp: true,
		},
	}
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	d := NewConfig()
	if c.Exchange.TimeoutSeconds <= 0 {
		c.Exchange.TimeoutSeconds = d.Exchange.TimeoutSeconds
	}
	if c.Exchange.MaxRetries < 0 {
		c.Exchange.MaxRetries = 0
	}
	if c.UI.ColorMode == "" {
		c.UI.ColorMode = d.UI.ColorMode
	}
	if c.UI.Border == "" {
		c.UI.Border = d.UI.Border
	}
	if c.UI.DefaultForeground == "" {
		c.UI.DefaultForeground = d.UI.DefaultForeground
	}
	if c.UI.AppName == "" {
		c.UI.AppName = d.UI.AppName
	}
	if c.Logging.File == "" {
		c.Logging.File = d.Logging.File
	}
	if c.Logging.Retries <= 0 {
		c.Logging.Retries = d.Logging.Retries
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Exchange.TimeoutSeconds) * time.Second
}

// ColorMode returns the forced mode. ok is false for "auto".
func (c *Config) ColorMode() (mode termcap.Mode, ok bool) {
	return termcap.ParseMode(c.UI.ColorMode)
}

// Border returns the box style.
func (c *Config) Border() layout.BorderStyle {
	return layout.ParseBorderStyle(c.UI.Border)
}

// LogDir returns the audit log directory, defaulting under configDir.
func (c *Config) LogDir(configDir string) string {
	if c.Logging.Directory != "" {
		return expandHome(c.Logging.Directory)
	}
	return filepath.Join(configDir, "logs")
}

// AuditLog returns the renderer log options for audit lines.
func (c *Config) AuditLog(level string) *style.LogOptions {
	return &style.LogOptions{
		File:    c.Logging.File,
		Time:    c.Logging.Timestamp,
		Level:   strings.ToUpper(level),
		Retries: c.Logging.Retries,
	}
}

// Package config provides configuration management for the leapgate CLI.
//
// Settings are layered with koanf: built-in defaults, then the project
// config file, then LEAPGATE_* environment variables, then explicitly set
// command-line flags.
package config

import (
	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Root       string            `koanf:"root"`
	Extension  string            `koanf:"extension"`
	Rules      []string          `koanf:"rules"`
	Disable    []string          `koanf:"disable"`
	Severity   map[string]string `koanf:"severity"`
	Reporters  []string          `koanf:"reporters"`
	OutputFile string            `koanf:"output_file"`
	Ignore     []string          `koanf:"ignore"`
	Workers    int               `koanf:"workers"`
	MaxDepth   int               `koanf:"max_depth"`
	HistoryDB  string            `koanf:"history_db"`
	Strict     bool              `koanf:"strict"`
	Progress   bool              `koanf:"progress"`
	Verbose    bool              `koanf:"verbose"`
	LogFormat  string            `koanf:"log_format"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found. Not loaded from config.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultRoot       = "."
	DefaultExtension  = ".ts"
	DefaultReporter   = "console"
	DefaultOutputFile = "violations.json"
	DefaultMaxDepth   = 64
	DefaultHistoryDB  = ".leapgate/history.db"
	DefaultLogFormat  = "text"
)

// DefaultIgnore is the ignore list used when none is configured.
var DefaultIgnore = []string{"**/node_modules/**"}

// ConfigFileNames lists the file names searched for, in priority order.
// .analyzerrc is the legacy JSON config; JSON parses as YAML.
var ConfigFileNames = []string{".leapgate.yaml", ".leapgate.yml", ".analyzerrc"}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Root:       DefaultRoot,
		Extension:  DefaultExtension,
		Reporters:  []string{DefaultReporter},
		OutputFile: DefaultOutputFile,
		Ignore:     append([]string(nil), DefaultIgnore...),
		MaxDepth:   DefaultMaxDepth,
		HistoryDB:  DefaultHistoryDB,
		LogFormat:  DefaultLogFormat,
	}
}

// LintConfig converts the rule selection into the engine's configuration.
// Severity values must already have passed Validate.
func (c *Config) LintConfig() *lint.Config {
	lc := lint.NewConfig(c.Rules...)
	for _, name := range c.Disable {
		lc.Disable(name)
	}
	for name, value := range c.Severity {
		if sev, ok := lint.ParseSeverity(value); ok {
			lc.SetSeverity(name, sev)
		}
	}
	return lc
}

// HasReporter reports whether the named reporter is selected.
func (c *Config) HasReporter(name string) bool {
	for _, r := range c.Reporters {
		if r == name {
			return true
		}
	}
	return false
}

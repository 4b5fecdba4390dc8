package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix is the prefix of environment variables read as config.
const envPrefix = "LEAPGATE_"

// legacyKeys maps camelCase keys of the legacy .analyzerrc to config keys.
var legacyKeys = map[string]string{
	"outputFile": "output_file",
}

// pathKeys are resolved against the project root unless given as flags.
var pathKeys = []string{"root", "output_file", "history_db"}

var (
	k              = koanf.New(".")
	configFileUsed string
)

// configIn returns the first config file present in dir, or "".
func configIn(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || path == ":memory:" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// relativeToWorkDir rewrites a resolved path relative to cwd when the
// configured value was relative, so reported file paths stay short.
func relativeToWorkDir(resolved, configured, cwd string) string {
	if configured == "" || filepath.IsAbs(configured) || resolved == configured {
		return resolved
	}
	if rel, err := filepath.Rel(cwd, resolved); err == nil {
		return rel
	}
	return resolved
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"root":        d.Root,
		"extension":   d.Extension,
		"reporters":   d.Reporters,
		"output_file": d.OutputFile,
		"ignore":      d.Ignore,
		"workers":     0,
		"max_depth":   d.MaxDepth,
		"history_db":  d.HistoryDB,
		"strict":      false,
		"progress":    false,
		"verbose":     false,
		"log_format":  d.LogFormat,
	}
}

// loadFile reads a config file into its own koanf instance so legacy keys
// can be renamed before merging.
func loadFile(path string) (*koanf.Koanf, error) {
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	for legacy, key := range legacyKeys {
		if !fk.Exists(legacy) {
			continue
		}
		if !fk.Exists(key) {
			if err := fk.Set(key, fk.Get(legacy)); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", path, err)
			}
		}
		fk.Delete(legacy)
	}
	return fk, nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// cfgFile names an explicit config file; when empty the working directory
// and its parents are searched. Relative paths from the file, the
// environment or the defaults are anchored at the directory holding the
// config file; relative paths given as flags stay relative to the working
// directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile != "" {
		configFileUsed = cfgFile
	} else {
		configFileUsed = findConfigUpward(cwd)
	}
	projectRoot := cwd
	if configFileUsed != "" {
		fk, err := loadFile(configFileUsed)
		if err != nil {
			return nil, err
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Environment variables: LEAPGATE_OUTPUT_FILE -> output_file
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	flagPaths := make(map[string]bool)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// kebab-case flags map to snake_case keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			flagPaths[key] = true
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve relative paths
	cfg.ProjectRoot = projectRoot
	if projectRoot != cwd {
		for _, key := range pathKeys {
			if flagPaths[key] {
				continue
			}
			p := cfg.pathField(key)
			*p = relativeToWorkDir(resolvePathRelativeTo(*p, projectRoot), *p, cwd)
		}
	}

	return &cfg, nil
}

// pathField returns a pointer to the field holding the given path key.
func (c *Config) pathField(key string) *string {
	switch key {
	case "root":
		return &c.Root
	case "output_file":
		return &c.OutputFile
	default:
		return &c.HistoryDB
	}
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
